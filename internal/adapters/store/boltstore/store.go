package boltstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flathunter-service/internal/constants"
	"flathunter-service/internal/core/domain"

	bolt "go.etcd.io/bbolt"
)

// Store - файловое хранилище объявлений. Одна запись на ID, значение в JSON
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open открывает (или создает) файл базы и бакет для объявлений
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt store: failed to open %s: %w", path, err)
	}

	bucket := []byte(constants.BoltBucketExposes)
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bolt store: failed to create bucket: %w", err)
	}

	return &Store{db: db, bucket: bucket}, nil
}

func (s *Store) Get(_ context.Context, id string) (domain.StoreEntry, bool, error) {
	var (
		entry domain.StoreEntry
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(s.bucket).Get([]byte(id))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &entry)
	})
	if err != nil {
		return domain.StoreEntry{}, false, fmt.Errorf("bolt store: failed to read %s: %w", id, err)
	}
	return entry, found, nil
}

func (s *Store) Put(_ context.Context, entry domain.StoreEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("bolt store: failed to marshal %s: %w", entry.ID, err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(entry.ID), data)
	})
	if err != nil {
		return fmt.Errorf("bolt store: failed to write %s: %w", entry.ID, err)
	}
	return nil
}

// MarkSent читает и перезаписывает запись в одной транзакции
func (s *Store) MarkSent(_ context.Context, id string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		raw := b.Get([]byte(id))
		if raw == nil {
			return domain.ErrExposeNotFound
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
		return b.Put([]byte(id), data)
	})
	if err != nil {
		return fmt.Errorf("bolt store: failed to mark %s as sent: %w", id, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
