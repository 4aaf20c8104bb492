package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/provider-server/internal/mocks"
	"github.com/dtroode/provider-server/internal/model"
	"github.com/dtroode/provider-server/internal/testutil"
)

func deleteIdentity() model.Identity {
	return model.Identity{
		UserID: uuid.New(),
		Email:  "admin@example.com",
		Claims: []model.Claim{{Type: model.ClaimDeleteProvider, Value: "true"}},
	}
}

func TestProvider_List(t *testing.T) {
	store := &mocks.ProviderStore{}
	store.On("List", mock.Anything).Return([]model.Provider{
		{ID: uuid.New(), Name: "Acme Inc", Document: "12345678901234"},
	}, nil)

	s := NewProvider(store, TokenClaims{}, testutil.MakeNoopLogger())

	providers, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 1)
}

func TestProvider_List_Empty(t *testing.T) {
	store := &mocks.ProviderStore{}
	store.On("List", mock.Anything).Return(nil, nil)

	s := NewProvider(store, TokenClaims{}, testutil.MakeNoopLogger())

	providers, err := s.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, providers)
}

func TestProvider_Get_NotFound(t *testing.T) {
	store := &mocks.ProviderStore{}
	store.On("GetByID", mock.Anything, mock.Anything).Return(model.Provider{}, model.ErrNotFound)

	s := NewProvider(store, TokenClaims{}, testutil.MakeNoopLogger())

	_, err := s.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestProvider_Create_Success(t *testing.T) {
	store := &mocks.ProviderStore{}
	store.On("Create", mock.Anything, mock.MatchedBy(func(p model.Provider) bool {
		return p.ID != uuid.Nil && p.Name == "Acme Inc" && p.Document == "12345678901234"
	})).Return(model.Provider{ID: uuid.New(), Name: "Acme Inc", Document: "12345678901234"}, nil)

	s := NewProvider(store, TokenClaims{}, testutil.MakeNoopLogger())

	provider, err := s.Create(context.Background(), model.ProviderParams{Name: "Acme Inc", Document: "12345678901234"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, provider.ID)
	store.AssertExpectations(t)
}

func TestProvider_Create_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		params    model.ProviderParams
		wantField string
	}{
		{name: "empty name", params: model.ProviderParams{Name: "", Document: "123"}, wantField: "name"},
		{name: "name too long", params: model.ProviderParams{Name: strings.Repeat("a", 201), Document: "123"}, wantField: "name"},
		{name: "empty document", params: model.ProviderParams{Name: "Acme Inc", Document: ""}, wantField: "document"},
		{name: "document too long", params: model.ProviderParams{Name: "Acme Inc", Document: "123456789012345"}, wantField: "document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mocks.ProviderStore{}
			s := NewProvider(store, TokenClaims{}, testutil.MakeNoopLogger())

			_, err := s.Create(context.Background(), tt.params)
			require.Error(t, err)

			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.wantField)
			store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestProvider_Update_Success(t *testing.T) {
	id := uuid.New()
	store := &mocks.ProviderStore{}
	store.On("GetByID", mock.Anything, id).Return(model.Provider{ID: id, Name: "Old", Document: "1"}, nil)
	store.On("Update", mock.Anything, mock.MatchedBy(func(p model.Provider) bool {
		return p.ID == id && p.Name == "New Name" && p.Document == "98765432109876"
	})).Return(nil)

	s := NewProvider(store, TokenClaims{}, testutil.MakeNoopLogger())

	err := s.Update(context.Background(), id, model.ProviderParams{Name: "New Name", Document: "98765432109876"})
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestProvider_Update_NotFoundSkipsValidation(t *testing.T) {
	store := &mocks.ProviderStore{}
	store.On("GetByID", mock.Anything, mock.Anything).Return(model.Provider{}, model.ErrNotFound)

	s := NewProvider(store, TokenClaims{}, testutil.MakeNoopLogger())

	// invalid candidate, but the unknown id wins
	err := s.Update(context.Background(), uuid.New(), model.ProviderParams{Name: "", Document: ""})
	require.ErrorIs(t, err, model.ErrNotFound)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProvider_Update_ValidationError(t *testing.T) {
	id := uuid.New()
	store := &mocks.ProviderStore{}
	store.On("GetByID", mock.Anything, id).Return(model.Provider{ID: id, Name: "Old", Document: "1"}, nil)

	s := NewProvider(store, TokenClaims{}, testutil.MakeNoopLogger())

	err := s.Update(context.Background(), id, model.ProviderParams{Name: "", Document: "123"})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProvider_Update_WriteFailure(t *testing.T) {
	id := uuid.New()
	store := &mocks.ProviderStore{}
	store.On("GetByID", mock.Anything, id).Return(model.Provider{ID: id, Name: "Old", Document: "1"}, nil)
	store.On("Update", mock.Anything, mock.Anything).Return(model.ErrNothingAffected)

	s := NewProvider(store, TokenClaims{}, testutil.MakeNoopLogger())

	err := s.Update(context.Background(), id, model.ProviderParams{Name: "New", Document: "123"})
	require.ErrorIs(t, err, model.ErrNothingAffected)
}

func TestProvider_Delete_Success(t *testing.T) {
	id := uuid.New()
	store := &mocks.ProviderStore{}
	store.On("GetByID", mock.Anything, id).Return(model.Provider{ID: id}, nil)
	store.On("Delete", mock.Anything, id).Return(nil)

	s := NewProvider(store, TokenClaims{}, testutil.MakeNoopLogger())

	require.NoError(t, s.Delete(context.Background(), deleteIdentity(), id))
	store.AssertExpectations(t)
}

func TestProvider_Delete_MissingClaim(t *testing.T) {
	store := &mocks.ProviderStore{}
	s := NewProvider(store, TokenClaims{}, testutil.MakeNoopLogger())

	identity := model.Identity{UserID: uuid.New(), Email: "user@example.com"}

	// rejected before any lookup, regardless of whether the target exists
	err := s.Delete(context.Background(), identity, uuid.New())
	require.ErrorIs(t, err, model.ErrPermissionDenied)
	store.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProvider_Delete_NotFound(t *testing.T) {
	store := &mocks.ProviderStore{}
	store.On("GetByID", mock.Anything, mock.Anything).Return(model.Provider{}, model.ErrNotFound)

	s := NewProvider(store, TokenClaims{}, testutil.MakeNoopLogger())

	err := s.Delete(context.Background(), deleteIdentity(), uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestTokenClaims_HasClaim(t *testing.T) {
	checker := TokenClaims{}

	identity := deleteIdentity()
	assert.True(t, checker.HasClaim(identity, model.ClaimDeleteProvider))
	assert.False(t, checker.HasClaim(identity, "SomethingElse"))
	assert.False(t, checker.HasClaim(model.Identity{}, model.ClaimDeleteProvider))
}
