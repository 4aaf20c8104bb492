package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/provider-server/internal/model"
)

var _ model.ProviderStore = (*ProviderRepository)(nil)

type ProviderRepository struct {
	db *Connection
}

func NewProviderRepository(db *Connection) *ProviderRepository {
	return &ProviderRepository{
		db: db,
	}
}

func (r *ProviderRepository) List(ctx context.Context) ([]model.Provider, error) {
	query := `SELECT id, name, document, created_at, updated_at FROM providers`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	defer rows.Close()

	var providers []model.Provider
	for rows.Next() {
		var provider model.Provider
		err := rows.Scan(
			&provider.ID, &provider.Name, &provider.Document,
			&provider.CreatedAt, &provider.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan provider: %w", err)
		}
		providers = append(providers, provider)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return providers, nil
}

func (r *ProviderRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Provider, error) {
	var provider model.Provider
	query := `SELECT id, name, document, created_at, updated_at FROM providers WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&provider.ID, &provider.Name, &provider.Document,
		&provider.CreatedAt, &provider.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Provider{}, model.ErrNotFound
		}
		return model.Provider{}, fmt.Errorf("failed to get provider by id: %w", err)
	}

	return provider, nil
}

func (r *ProviderRepository) Create(ctx context.Context, provider model.Provider) (model.Provider, error) {
	query := `INSERT INTO providers (id, name, document, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, name, document, created_at, updated_at`

	var savedProvider model.Provider
	err := r.db.QueryRow(ctx, query,
		provider.ID, provider.Name, provider.Document,
		provider.CreatedAt, provider.UpdatedAt,
	).Scan(
		&savedProvider.ID, &savedProvider.Name, &savedProvider.Document,
		&savedProvider.CreatedAt, &savedProvider.UpdatedAt,
	)
	if err != nil {
		return model.Provider{}, fmt.Errorf("failed to create provider: %w", err)
	}

	return savedProvider, nil
}

func (r *ProviderRepository) Update(ctx context.Context, provider model.Provider) error {
	const query = `UPDATE providers SET name = $2, document = $3, updated_at = NOW() WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, provider.ID, provider.Name, provider.Document)
	if err != nil {
		return fmt.Errorf("failed to update provider: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNothingAffected
	}

	return nil
}

func (r *ProviderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM providers WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete provider: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNothingAffected
	}

	return nil
}
