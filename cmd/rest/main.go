package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-notes-be/internal/bootstrap"
	"ai-notes-be/internal/config"
	"ai-notes-be/internal/pkg/logger"
	"ai-notes-be/internal/server"
	"ai-notes-be/internal/tracer"
	"ai-notes-be/pkg/database"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer := tracer.InitTracer(ctx, cfg.Infra, sysLogger)

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.IsProduction())
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(ctx, gormDB, cfg, sysLogger)

	// 4. Start Background Services
	if err := container.ConsumerService.Consume(ctx); err != nil {
		sysLogger.Error("Main", "Failed to start event consumer", map[string]interface{}{"error": err})
	}

	// 5. Initialize Server
	srv := server.New(cfg, container, sysLogger)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Run()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			sysLogger.Error("Main", "Server stopped", map[string]interface{}{"error": err})
		}
	case <-ctx.Done():
		sysLogger.Info("Main", "Shutdown signal received", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		sysLogger.Error("Main", "Server shutdown failed", map[string]interface{}{"error": err})
	}
	container.Close()
	if err := shutdownTracer(shutdownCtx); err != nil {
		sysLogger.Warn("Main", "Tracer shutdown failed", map[string]interface{}{"error": err})
	}
	if err := database.Close(gormDB); err != nil {
		sysLogger.Warn("Main", "Database close failed", map[string]interface{}{"error": err})
	}
}
