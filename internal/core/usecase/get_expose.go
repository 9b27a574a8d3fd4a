package usecase

import (
	"context"
	"fmt"

	"flathunter-service/internal/core/domain"
	"flathunter-service/internal/core/port"
)

type GetExposeUseCase struct {
	store port.ExposeStorePort
}

func NewGetExposeUseCase(store port.ExposeStorePort) *GetExposeUseCase {
	return &GetExposeUseCase{store: store}
}

// Execute возвращает запись хранилища или domain.ErrExposeNotFound
func (uc *GetExposeUseCase) Execute(ctx context.Context, id string) (domain.StoreEntry, error) {
	entry, found, err := uc.store.Get(ctx, id)
	if err != nil {
		return domain.StoreEntry{}, fmt.Errorf("get expose %s: %w", id, err)
	}
	if !found {
		return domain.StoreEntry{}, domain.ErrExposeNotFound
	}
	return entry, nil
}
