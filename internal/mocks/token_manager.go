package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/provider-server/internal/model"
)

// TokenManager is a mock implementation of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) Generate(user model.User) (model.Token, error) {
	args := m.Called(user)
	return args.Get(0).(model.Token), args.Error(1)
}

func (m *TokenManager) Parse(token string) (model.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(model.Identity), args.Error(1)
}
