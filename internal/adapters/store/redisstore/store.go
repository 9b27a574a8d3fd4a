package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"flathunter-service/internal/constants"
	"flathunter-service/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// Store хранит каждое объявление отдельным ключем с JSON-значением без срока жизни
type Store struct {
	client goredis.UniversalClient
	prefix string
}

func New(client goredis.UniversalClient) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis store: client cannot be nil")
	}
	return &Store{client: client, prefix: constants.RedisKeyPrefix}, nil
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) Get(ctx context.Context, id string) (domain.StoreEntry, bool, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.StoreEntry{}, false, nil
	}
	if err != nil {
		return domain.StoreEntry{}, false, fmt.Errorf("redis store: failed to read %s: %w", id, err)
	}

	var entry domain.StoreEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return domain.StoreEntry{}, false, fmt.Errorf("redis store: corrupted entry %s: %w", id, err)
	}
	return entry, true, nil
}

func (s *Store) Put(ctx context.Context, entry domain.StoreEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("redis store: failed to marshal %s: %w", entry.ID, err)
	}
	if err := s.client.Set(ctx, s.key(entry.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis store: failed to write %s: %w", entry.ID, err)
	}
	return nil
}

// MarkSent использует WATCH, чтобы не затереть параллельную запись
func (s *Store) MarkSent(ctx context.Context, id string) error {
	key := s.key(id)
	err := s.client.Watch(ctx, func(tx *goredis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, goredis.Nil) {
			return domain.ErrExposeNotFound
		}
		if err != nil {
			return err
		}

		var entry domain.StoreEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return err
		}
		entry.Sent = true
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}, key)
	if err != nil {
		if errors.Is(err, domain.ErrExposeNotFound) {
			return err
		}
		return fmt.Errorf("redis store: failed to mark %s as sent: %w", id, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
