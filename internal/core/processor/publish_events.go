package processor

import (
	"context"

	"flathunter-service/internal/contextkeys"
	"flathunter-service/internal/core/domain"
	"flathunter-service/internal/core/port"
)

// EventPublisher публикует новое объявление во внешнюю шину. Сбой шины не
// останавливает охоту
type EventPublisher struct {
	events port.ExposeEventsPort
}

func NewEventPublisher(events port.ExposeEventsPort) *EventPublisher {
	return &EventPublisher{events: events}
}

func (p *EventPublisher) ProcessExpose(ctx context.Context, expose domain.Expose) (domain.Expose, bool, error) {
	if err := p.events.PublishNewExpose(ctx, expose); err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Failed to publish expose event", port.Fields{
			"component": "EventPublisher",
			"expose_id": expose.ID,
			"error":     err.Error(),
		})
	}
	return expose, true, nil
}
