package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flathunter-service/internal/constants"
	"flathunter-service/internal/contextkeys"
	"flathunter-service/internal/core/domain"
	"flathunter-service/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessagePublisher - то, что нужно адаптеру от rabbitmq_producer.Publisher
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// ExposeEventsAdapter реализует ExposeEventsPort для RabbitMQ
type ExposeEventsAdapter struct {
	producer MessagePublisher
	now      func() time.Time
}

func NewExposeEventsAdapter(producer MessagePublisher) (*ExposeEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &ExposeEventsAdapter{producer: producer, now: time.Now}, nil
}

func (a *ExposeEventsAdapter) PublishNewExpose(ctx context.Context, expose domain.Expose) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ExposeEventsAdapter",
		"expose_id": expose.ID,
	})

	now := a.now()
	body, err := json.Marshal(toNewExposeEventDTO(expose, now))
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal expose %s: %w", expose.ID, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    now,
		MessageId:    expose.ID,
		Headers:      make(amqp.Table),
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, constants.PublishTimeoutSeconds*time.Second)
	defer cancel()

	if err := a.producer.Publish(publishCtx, constants.RoutingKeyNewExposes, msg); err != nil {
		adapterLogger.Error("Failed to publish new expose", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish expose %s: %w", expose.ID, err)
	}

	adapterLogger.Debug("Published new expose", nil)
	return nil
}
