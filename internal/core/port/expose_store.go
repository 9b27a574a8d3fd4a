package port

import (
	"context"
	"flathunter-service/internal/core/domain"
)

// ExposeStorePort - постоянное хранилище записей по ID объявления.
type ExposeStorePort interface {
	// Get возвращает запись и признак ее наличия
	Get(ctx context.Context, id string) (domain.StoreEntry, bool, error)
	// Put перезаписывает запись целиком
	Put(ctx context.Context, entry domain.StoreEntry) error
	// MarkSent помечает объявление как отправленное. Отсутствующая запись - domain.ErrExposeNotFound
	MarkSent(ctx context.Context, id string) error
	Close() error
}
