package usecases_port

import (
	"context"
	"flathunter-service/internal/core/domain"
)

type GetExposePort interface {
	Execute(ctx context.Context, id string) (domain.StoreEntry, error)
}
