package model

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ProviderStore defines persistence operations for providers.
type ProviderStore interface {
	List(ctx context.Context) ([]Provider, error)
	GetByID(ctx context.Context, id uuid.UUID) (Provider, error)
	Create(ctx context.Context, provider Provider) (Provider, error)
	Update(ctx context.Context, provider Provider) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Provider represents a stored provider entity.
type Provider struct {
	ID        uuid.UUID
	Name      string
	Document  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	// NameMaxLength is the maximum allowed length of a provider name.
	NameMaxLength = 200
	// DocumentMaxLength is the maximum allowed length of a provider tax document.
	DocumentMaxLength = 14
)

// ProviderParams contains the caller-supplied provider fields.
type ProviderParams struct {
	Name     string
	Document string
}

// Validate checks presence and length constraints of the provider fields.
// Failures are returned as a ValidationError with a field-to-message map.
func (p ProviderParams) Validate() error {
	err := validation.Errors{
		"name":     validation.Validate(p.Name, validation.Required, validation.Length(1, NameMaxLength)),
		"document": validation.Validate(p.Document, validation.Required, validation.Length(1, DocumentMaxLength)),
	}.Filter()
	if err != nil {
		return NewValidationError(err)
	}
	return nil
}
