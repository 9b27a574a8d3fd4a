package port

import (
	"context"
	"flathunter-service/internal/core/domain"
)

// ExposeEventsPort публикует события о новых объявлениях во внешнюю шину
type ExposeEventsPort interface {
	PublishNewExpose(ctx context.Context, expose domain.Expose) error
}
