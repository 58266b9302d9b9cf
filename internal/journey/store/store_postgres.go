package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"addressfinder/internal/journey"
	"addressfinder/pkg/platform/sentinel"
)

// PostgresStore persists journey records as jsonb for deployments without a
// Redis. Expiry is enforced on read against updated_at plus the TTL of the
// deployment's session policy, handled by a periodic delete outside this
// package.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Schema is the table this store expects.
const Schema = `
CREATE TABLE IF NOT EXISTS address_journeys (
    journey_id TEXT PRIMARY KEY,
    record     JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// NewPostgresStore constructs a PostgreSQL-backed keystore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, id journey.ID) (*journey.Record, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT record FROM address_journeys WHERE journey_id = $1`, id.String(),
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("journey %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get journey %s: %w", id, errors.Join(sentinel.ErrUnavailable, err))
	}
	var record journey.Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode journey %s: %w", id, err)
	}
	return &record, nil
}

func (s *PostgresStore) Put(ctx context.Context, id journey.ID, record *journey.Record) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode journey %s: %w", id, err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO address_journeys (journey_id, record, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (journey_id) DO UPDATE SET record = EXCLUDED.record, updated_at = now()`,
		id.String(), raw,
	)
	if err != nil {
		return fmt.Errorf("put journey %s: %w", id, errors.Join(sentinel.ErrUnavailable, err))
	}
	return nil
}
