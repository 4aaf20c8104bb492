package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/provider-server/internal/model"
)

// ProviderStore is a mock implementation of model.ProviderStore.
type ProviderStore struct {
	mock.Mock
}

func (m *ProviderStore) List(ctx context.Context) ([]model.Provider, error) {
	args := m.Called(ctx)
	var providers []model.Provider
	if args.Get(0) != nil {
		providers = args.Get(0).([]model.Provider)
	}
	return providers, args.Error(1)
}

func (m *ProviderStore) GetByID(ctx context.Context, id uuid.UUID) (model.Provider, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Provider), args.Error(1)
}

func (m *ProviderStore) Create(ctx context.Context, provider model.Provider) (model.Provider, error) {
	args := m.Called(ctx, provider)
	return args.Get(0).(model.Provider), args.Error(1)
}

func (m *ProviderStore) Update(ctx context.Context, provider model.Provider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

func (m *ProviderStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
