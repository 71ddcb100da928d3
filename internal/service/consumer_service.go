package service

import (
	"context"

	"ai-notes-be/internal/pkg/logger"
	"ai-notes-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventSink receives every event after it passed through the in-process bus.
// *nats.Publisher satisfies it.
type EventSink interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	sink       EventSink
	log        logger.ILogger
}

// NewConsumerService builds the bus consumer. sink may be nil, in which case events are only logged.
func NewConsumerService(subscriber message.Subscriber, topicName string, sink EventSink, log logger.ILogger) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		sink:       sink,
		log:        log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	evt, err := events.Decode(msg.Payload)
	if err != nil {
		cs.log.Error("EventConsumer", "Dropping undecodable message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err,
		})
		// a retry would fail the same way
		msg.Ack()
		return
	}

	cs.log.Info("EventConsumer", "Event received", map[string]interface{}{
		"type":        evt.EventType(),
		"occurred_at": evt.Timestamp(),
		"data":        evt.Payload(),
	})

	if cs.sink != nil {
		if err := cs.sink.Publish(ctx, evt); err != nil {
			cs.log.Warn("EventConsumer", "Failed to forward event", map[string]interface{}{
				"type":  evt.EventType(),
				"error": err,
			})
		}
	}

	msg.Ack()
}
