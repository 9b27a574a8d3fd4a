package usecases_port

import (
	"context"
	"flathunter-service/internal/core/domain"
)

// HuntFlatsPort - один запуск охоты: обход всех поисковых URL и прогон цепочки обработки
type HuntFlatsPort interface {
	Execute(ctx context.Context, maxPages int) ([]domain.Expose, error)
}
