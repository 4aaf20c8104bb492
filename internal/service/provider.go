package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/provider-server/internal/logger"
	"github.com/dtroode/provider-server/internal/model"
)

// Provider implements the provider resource lifecycle: structural validation
// before every write, plus the claim gate on deletion.
type Provider struct {
	providerStore model.ProviderStore
	claimChecker  model.ClaimChecker
	logger        *logger.Logger
}

func NewProvider(providerStore model.ProviderStore, claimChecker model.ClaimChecker, logger *logger.Logger) *Provider {
	return &Provider{
		providerStore: providerStore,
		claimChecker:  claimChecker,
		logger:        logger,
	}
}

// List returns all providers in storage order.
func (s *Provider) List(ctx context.Context) ([]model.Provider, error) {
	providers, err := s.providerStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}

	return providers, nil
}

// Get returns the provider with the given id.
func (s *Provider) Get(ctx context.Context, id uuid.UUID) (model.Provider, error) {
	provider, err := s.providerStore.GetByID(ctx, id)
	if err != nil {
		return model.Provider{}, err
	}

	return provider, nil
}

// Create validates the candidate, assigns a fresh identifier and persists it.
func (s *Provider) Create(ctx context.Context, params model.ProviderParams) (model.Provider, error) {
	if err := params.Validate(); err != nil {
		return model.Provider{}, err
	}

	now := time.Now()
	provider := model.Provider{
		ID:        uuid.New(),
		Name:      params.Name,
		Document:  params.Document,
		CreatedAt: now,
		UpdatedAt: now,
	}

	savedProvider, err := s.providerStore.Create(ctx, provider)
	if err != nil {
		s.logger.Error("Provider service: failed to create provider",
			"provider_id", provider.ID,
			"error", err.Error())
		return model.Provider{}, fmt.Errorf("failed to create provider: %w", err)
	}

	s.logger.Info("Provider service: provider created",
		"provider_id", savedProvider.ID)

	return savedProvider, nil
}

// Update overwrites the fields of an existing provider. The lookup runs
// before validation so an unknown id is reported as not-found.
func (s *Provider) Update(ctx context.Context, id uuid.UUID, params model.ProviderParams) error {
	existing, err := s.providerStore.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := params.Validate(); err != nil {
		return err
	}

	existing.Name = params.Name
	existing.Document = params.Document

	if err := s.providerStore.Update(ctx, existing); err != nil {
		s.logger.Error("Provider service: failed to update provider",
			"provider_id", id,
			"error", err.Error())
		return err
	}

	s.logger.Info("Provider service: provider updated",
		"provider_id", id)

	return nil
}

// Delete removes a provider. The caller must hold the DeleteProvider claim;
// without it the request is rejected regardless of whether the target exists.
func (s *Provider) Delete(ctx context.Context, identity model.Identity, id uuid.UUID) error {
	if !s.claimChecker.HasClaim(identity, model.ClaimDeleteProvider) {
		s.logger.Info("Provider service: delete denied, missing claim",
			"user_id", identity.UserID,
			"provider_id", id)
		return model.ErrPermissionDenied
	}

	if _, err := s.providerStore.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.providerStore.Delete(ctx, id); err != nil {
		s.logger.Error("Provider service: failed to delete provider",
			"provider_id", id,
			"error", err.Error())
		return err
	}

	s.logger.Info("Provider service: provider deleted",
		"provider_id", id)

	return nil
}
