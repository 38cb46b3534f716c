// Package db provides PostgreSQL storage for committed content records.
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonkmatsumo/interview-agent/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{pool: pool}
	if err := db.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) ensureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS content_records (
			id UUID PRIMARY KEY,
			content_type TEXT NOT NULL,
			data JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// ContentRecord is a committed content record as stored.
type ContentRecord struct {
	ID        uuid.UUID         `json:"id"`
	Type      types.ContentType `json:"type"`
	Data      map[string]any    `json:"data"`
	CreatedAt time.Time         `json:"created_at"`
}

// SaveContent stores one committed content record and returns its ID
func (db *DB) SaveContent(ctx context.Context, contentType types.ContentType, data map[string]any) (uuid.UUID, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal content data: %w", err)
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO content_records (id, content_type, data) VALUES ($1, $2, $3)`,
		id, string(contentType), jsonBytes,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save content record: %w", err)
	}
	return id, nil
}

// GetContent retrieves one content record by ID
func (db *DB) GetContent(ctx context.Context, id uuid.UUID) (*ContentRecord, error) {
	var record ContentRecord
	var contentType string
	var dataBytes []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, content_type, data, created_at FROM content_records WHERE id = $1`,
		id,
	).Scan(&record.ID, &contentType, &dataBytes, &record.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get content record: %w", err)
	}

	record.Type = types.ContentType(contentType)
	if err := json.Unmarshal(dataBytes, &record.Data); err != nil {
		return nil, fmt.Errorf("failed to decode content data: %w", err)
	}
	return &record, nil
}

// ListContent retrieves records, optionally filtered by type
func (db *DB) ListContent(ctx context.Context, contentType types.ContentType, limit int) ([]ContentRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT id, content_type, data, created_at FROM content_records`
	args := []any{}
	if contentType != "" {
		query += ` WHERE content_type = $1 ORDER BY created_at DESC LIMIT $2`
		args = append(args, string(contentType), limit)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1`
		args = append(args, limit)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list content records: %w", err)
	}
	defer rows.Close()

	var records []ContentRecord
	for rows.Next() {
		var record ContentRecord
		var ct string
		var dataBytes []byte
		if err := rows.Scan(&record.ID, &ct, &dataBytes, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan content record: %w", err)
		}
		record.Type = types.ContentType(ct)
		if err := json.Unmarshal(dataBytes, &record.Data); err != nil {
			return nil, fmt.Errorf("failed to decode content data: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

// FindSimilar looks for an existing record of the same type whose name-like
// field matches, used for duplicate warnings on proposed content.
func (db *DB) FindSimilar(ctx context.Context, contentType types.ContentType, name string) (*ContentRecord, error) {
	var record ContentRecord
	var ct string
	var dataBytes []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, content_type, data, created_at FROM content_records
		 WHERE content_type = $1
		   AND (data->>'name' ILIKE $2 OR data->>'title' ILIKE $2)
		 LIMIT 1`,
		string(contentType), name,
	).Scan(&record.ID, &ct, &dataBytes, &record.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to search content records: %w", err)
	}

	record.Type = types.ContentType(ct)
	if err := json.Unmarshal(dataBytes, &record.Data); err != nil {
		return nil, fmt.Errorf("failed to decode content data: %w", err)
	}
	return &record, nil
}
