package bootstrap

import (
	"context"
	"fmt"

	"ai-notes-be/internal/config"
	"ai-notes-be/internal/controller"
	"ai-notes-be/internal/pkg/logger"
	"ai-notes-be/internal/pkg/serverutils"
	"ai-notes-be/internal/pkg/token"
	"ai-notes-be/internal/repository/memory"
	"ai-notes-be/internal/repository/rediscache"
	"ai-notes-be/internal/repository/unitofwork"
	"ai-notes-be/internal/service"
	pktNats "ai-notes-be/pkg/nats"
	"ai-notes-be/pkg/summarizer"
	"ai-notes-be/pkg/summarizer/huggingface"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const eventsTopic = "notes.events"

type Container struct {
	// Controllers
	AuthController   controller.IAuthController
	NoteController   controller.INoteController
	SystemController controller.ISystemController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	pubSub  *gochannel.GoChannel
	natsPub *pktNats.Publisher
	rdb     *redis.Client
	log     logger.ILogger
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *Container {
	c := &Container{log: sysLogger}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	tokens := token.NewService(cfg.Auth.JwtSecret, cfg.Auth.TokenTTL)
	authMiddleware := serverutils.NewJwtMiddleware(tokens)

	// 2. Event Bus
	c.pubSub = gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)

	if cfg.Infra.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.Infra.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "NATS unavailable, events stay in-process", map[string]interface{}{"error": err})
		} else {
			c.natsPub = natsPub
		}
	}

	var sink service.EventSink
	if c.natsPub != nil {
		sink = c.natsPub
	}

	publisherService := service.NewPublisherService(eventsTopic, c.pubSub)
	c.ConsumerService = service.NewConsumerService(c.pubSub, eventsTopic, sink, sysLogger)

	// 3. Summarization
	hfClient := huggingface.NewClient(huggingface.Config{
		APIKey:    cfg.Summarizer.APIKey,
		URL:       cfg.Summarizer.URL,
		MinLength: cfg.Summarizer.MinLength,
		MaxLength: cfg.Summarizer.MaxLength,
		Timeout:   cfg.Summarizer.Timeout,
	})
	summaryCache := c.newSummaryCache(ctx, cfg)
	namespace := fmt.Sprintf("%s|%d|%d", cfg.Summarizer.URL, cfg.Summarizer.MinLength, cfg.Summarizer.MaxLength)
	cachedSummarizer := summarizer.NewCachedSummarizer(hfClient, summaryCache, namespace,
		summarizer.WithCacheErrorHandler(func(op string, err error) {
			sysLogger.Warn("SummaryCache", "Cache "+op+" failed", map[string]interface{}{"error": err})
		}),
	)

	// 4. Services
	authService := service.NewAuthService(uowFactory, tokens, publisherService, sysLogger)
	noteService := service.NewNoteService(uowFactory, cachedSummarizer, publisherService, sysLogger)

	// 5. Controllers
	c.AuthController = controller.NewAuthController(authService)
	c.NoteController = controller.NewNoteController(noteService, authMiddleware)
	c.SystemController = controller.NewSystemController(authMiddleware)

	return c
}

// newSummaryCache prefers Redis and falls back to an in-process cache.
func (c *Container) newSummaryCache(ctx context.Context, cfg *config.Config) summarizer.Cache {
	if cfg.Infra.RedisURL != "" {
		rdb, err := rediscache.NewClient(ctx, cfg.Infra.RedisURL)
		if err == nil {
			c.rdb = rdb
			c.log.Info("Bootstrap", "Summary cache backed by Redis", nil)
			return rediscache.NewSummaryCache(rdb, cfg.Summarizer.CacheTTL)
		}
		c.log.Warn("Bootstrap", "Redis unavailable, using in-memory summary cache", map[string]interface{}{"error": err})
	}
	return memory.NewSummaryCache(cfg.Summarizer.CacheTTL)
}

// Close releases the event bus and external connections.
func (c *Container) Close() {
	if err := c.pubSub.Close(); err != nil {
		c.log.Warn("Bootstrap", "Failed to close event bus", map[string]interface{}{"error": err})
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
}
