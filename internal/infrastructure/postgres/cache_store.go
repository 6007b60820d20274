package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/petstore-sync/internal/domain/repository"
)

var _ repository.CacheStore = (*CacheStore)(nil)

// CacheStore caché de respaldo sobre la tabla sync_cache.
//
// Esquema esperado:
//
//	CREATE TABLE IF NOT EXISTS sync_cache (
//	    namespace  TEXT  NOT NULL,
//	    id         TEXT  NOT NULL,
//	    value      BYTEA NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL,
//	    PRIMARY KEY (namespace, id)
//	);
//
// Last-writer-wins vía upsert; no hay más coordinación porque el caché nunca
// es fuente de verdad.
type CacheStore struct {
	pool *pgxpool.Pool
}

// NewCacheStore construye el adaptador sobre el pool.
func NewCacheStore(pool *pgxpool.Pool) *CacheStore {
	return &CacheStore{pool: pool}
}

// Get devuelve el valor guardado o (nil, nil) si la clave no existe.
func (s *CacheStore) Get(ctx context.Context, namespace, id string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM sync_cache WHERE namespace = $1 AND id = $2`,
		namespace, id,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cache: %w", err)
	}
	return value, nil
}

// Set guarda el valor (upsert).
func (s *CacheStore) Set(ctx context.Context, namespace, id string, value []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sync_cache (namespace, id, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (namespace, id) DO UPDATE SET value = $3, updated_at = $4`,
		namespace, id, value, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("set cache: %w", err)
	}
	return nil
}
