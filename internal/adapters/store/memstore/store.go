package memstore

import (
	"context"
	"sync"

	"flathunter-service/internal/core/domain"
)

// Store - хранилище в памяти процесса. Для прогонов без записи на диск и тестов
type Store struct {
	mu      sync.RWMutex
	entries map[string]domain.StoreEntry
}

func New() *Store {
	return &Store{entries: make(map[string]domain.StoreEntry)}
}

func (s *Store) Get(_ context.Context, id string) (domain.StoreEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[id]
	if !ok {
		return domain.StoreEntry{}, false, nil
	}
	entry.Photos = append([]string(nil), entry.Photos...)
	return entry, true, nil
}

func (s *Store) Put(_ context.Context, entry domain.StoreEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.Photos = append([]string(nil), entry.Photos...)
	s.entries[entry.ID] = entry
	return nil
}

func (s *Store) MarkSent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return domain.ErrExposeNotFound
	}
	entry.Sent = true
	s.entries[id] = entry
	return nil
}

func (s *Store) Close() error {
	return nil
}
