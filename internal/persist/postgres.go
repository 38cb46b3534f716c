package persist

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is a Store backed by a PostgreSQL connection pool. The server
// uses it to archive conversation snapshots when a database URL is configured.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and ensures the kv table
// exists.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	_, err = pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize kv table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Get returns the stored bytes for key.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool) {
	var value []byte
	err := s.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if err != pgx.ErrNoRows {
			log.Printf("[persist] postgres read failed for %q: %v", key, err)
		}
		return nil, false
	}
	return value, true
}

// Put stores value under key, best-effort.
func (s *PostgresStore) Put(ctx context.Context, key string, value []byte) {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		log.Printf("[persist] postgres write failed for %q: %v", key, err)
	}
}

// Delete removes key, best-effort.
func (s *PostgresStore) Delete(ctx context.Context, key string) {
	if _, err := s.pool.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		log.Printf("[persist] postgres delete failed for %q: %v", key, err)
	}
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
