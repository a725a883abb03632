package tokenstore

import (
	"context"
	"errors"

	"github.com/spec-kit/concert-frontend/internal/repository"
)

// PostgresBackend adapts the client_state repository.
type PostgresBackend struct {
	repo repository.StateRepository
}

// NewPostgresBackend wraps repo.
func NewPostgresBackend(repo repository.StateRepository) *PostgresBackend {
	return &PostgresBackend{repo: repo}
}

func (p *PostgresBackend) Get(ctx context.Context, key string) (string, error) {
	v, err := p.repo.Get(ctx, key)
	if errors.Is(err, repository.ErrStateNotFound) {
		return "", ErrNotFound
	}
	return v, err
}

func (p *PostgresBackend) Put(ctx context.Context, key, value string) error {
	return p.repo.Put(ctx, key, value)
}

func (p *PostgresBackend) Delete(ctx context.Context, key string) error {
	return p.repo.Delete(ctx, key)
}
