package processor

import (
	"context"
	"fmt"

	"flathunter-service/internal/core/domain"
	"flathunter-service/internal/core/port"
)

// SaveAllExposes гарантирует, что у каждого найденного объявления есть запись
// в хранилище. Существующие записи не трогает, чтобы не потерять отметку Sent.
// Если записи нет, страница объявления не загрузилась: запись помечается
// незавершенной, и следующий обход загрузит страницу снова.
type SaveAllExposes struct {
	store port.ExposeStorePort
}

func NewSaveAllExposes(store port.ExposeStorePort) *SaveAllExposes {
	return &SaveAllExposes{store: store}
}

func (s *SaveAllExposes) ProcessExpose(ctx context.Context, expose domain.Expose) (domain.Expose, bool, error) {
	_, found, err := s.store.Get(ctx, expose.ID)
	if err != nil {
		return expose, false, fmt.Errorf("save all exposes: failed to read %s: %w", expose.ID, err)
	}
	if found {
		return expose, true, nil
	}

	entry := domain.NewPendingStoreEntry(expose.ID, expose.CrawlerName, domain.ExposeDetails{
		Photos:     expose.Photos,
		TotalPrice: expose.TotalPrice,
		FreeFrom:   expose.FreeFrom,
	})
	if err := s.store.Put(ctx, entry); err != nil {
		return expose, false, fmt.Errorf("save all exposes: failed to write %s: %w", expose.ID, err)
	}
	return expose, true, nil
}
