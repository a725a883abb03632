package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrStateNotFound is returned when no value is stored under a key.
var ErrStateNotFound = errors.New("client state not found")

// StateRepository persists small client-side key/value pairs.
type StateRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type stateRepository struct {
	pool *pgxpool.Pool
}

// NewStateRepository returns a Postgres-backed implementation.
func NewStateRepository(pool *pgxpool.Pool) StateRepository {
	return &stateRepository{pool: pool}
}

func (r *stateRepository) Get(ctx context.Context, key string) (string, error) {
	const query = `SELECT value FROM client_state WHERE key=$1`

	var value string
	if err := r.pool.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrStateNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *stateRepository) Put(ctx context.Context, key, value string) error {
	const query = `
        INSERT INTO client_state (key, value)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()`

	_, err := r.pool.Exec(ctx, query, key, value)
	return err
}

func (r *stateRepository) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM client_state WHERE key=$1`

	_, err := r.pool.Exec(ctx, query, key)
	return err
}
