package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"flathunter-service/internal/contextkeys"
	"flathunter-service/internal/core/domain"
	"flathunter-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const createExposesTable = `
CREATE TABLE IF NOT EXISTS exposes (
	id          TEXT PRIMARY KEY,
	crawler     TEXT NOT NULL DEFAULT '',
	photos      TEXT[] NOT NULL DEFAULT '{}',
	total_price TEXT NOT NULL,
	free_from   TEXT NOT NULL,
	sent        BOOLEAN NOT NULL DEFAULT FALSE,
	details_fetched BOOLEAN NOT NULL DEFAULT FALSE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// таблицы, созданные до появления details_fetched
const addDetailsFetchedColumn = `
ALTER TABLE exposes ADD COLUMN IF NOT EXISTS details_fetched BOOLEAN NOT NULL DEFAULT FALSE`

// Pool - часть *pgxpool.Pool, которой пользуется хранилище
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresExposeStore - реализация ExposeStorePort для PostgreSQL.
type PostgresExposeStore struct {
	pool Pool
}

// NewPostgresExposeStore создает таблицу, если ее еще нет.
func NewPostgresExposeStore(ctx context.Context, pool Pool) (*PostgresExposeStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	for _, ddl := range []string{createExposesTable, addDetailsFetchedColumn} {
		if _, err := pool.Exec(ctx, ddl); err != nil {
			return nil, fmt.Errorf("failed to create exposes table: %w", err)
		}
	}
	return &PostgresExposeStore{pool: pool}, nil
}

func (r *PostgresExposeStore) Get(ctx context.Context, id string) (domain.StoreEntry, bool, error) {
	query := `SELECT id, crawler, photos, total_price, free_from, sent, details_fetched FROM exposes WHERE id = $1`

	var entry domain.StoreEntry
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&entry.ID, &entry.CrawlerName, &entry.Photos, &entry.TotalPrice, &entry.FreeFrom, &entry.Sent, &entry.DetailsFetched,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.StoreEntry{}, false, nil
		}
		return domain.StoreEntry{}, false, fmt.Errorf("failed to get expose %s: %w", id, err)
	}
	return entry, true, nil
}

// Put вставляет запись или полностью заменяет существующую.
func (r *PostgresExposeStore) Put(ctx context.Context, entry domain.StoreEntry) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresExposeStore",
		"method":    "Put",
		"expose_id": entry.ID,
	})

	query := `
		INSERT INTO exposes (id, crawler, photos, total_price, free_from, sent, details_fetched)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			crawler = EXCLUDED.crawler,
			photos = EXCLUDED.photos,
			total_price = EXCLUDED.total_price,
			free_from = EXCLUDED.free_from,
			sent = EXCLUDED.sent,
			details_fetched = EXCLUDED.details_fetched`

	photos := entry.Photos
	if photos == nil {
		photos = []string{}
	}

	_, err := r.pool.Exec(ctx, query, entry.ID, entry.CrawlerName, photos, entry.TotalPrice, entry.FreeFrom, entry.Sent, entry.DetailsFetched)
	if err != nil {
		repoLogger.Error("Failed to upsert expose", err, nil)
		return fmt.Errorf("failed to put expose %s: %w", entry.ID, err)
	}
	return nil
}

func (r *PostgresExposeStore) MarkSent(ctx context.Context, id string) error {
	cmdTag, err := r.pool.Exec(ctx, `UPDATE exposes SET sent = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark expose %s as sent: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrExposeNotFound
	}
	return nil
}

// Close закрывает пул соединений.
func (r *PostgresExposeStore) Close() error {
	r.pool.Close()
	return nil
}
