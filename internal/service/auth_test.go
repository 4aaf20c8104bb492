package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/provider-server/internal/mocks"
	"github.com/dtroode/provider-server/internal/model"
	"github.com/dtroode/provider-server/internal/testutil"
)

func hashPassword(t *testing.T, password string) []byte {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return hash
}

func TestAuth_Register_Success(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	tokMan := &mocks.TokenManager{}

	userStore.On("GetByEmail", mock.Anything, "a@b.c").Return(model.User{}, model.ErrNotFound)
	userStore.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Email == "a@b.c" && u.EmailConfirmed && u.ID != uuid.Nil
	})).Return(model.User{ID: uuid.New(), Email: "a@b.c", EmailConfirmed: true}, nil)
	tokMan.On("Generate", mock.Anything).Return(model.Token{AccessToken: "signed"}, nil)

	a := NewAuth(userStore, tokMan, testutil.MakeNoopLogger())

	token, err := a.Register(ctx, "a@b.c", "password1")
	require.NoError(t, err)
	assert.Equal(t, "signed", token.AccessToken)
	userStore.AssertExpectations(t)
}

func TestAuth_Register_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		wantField string
	}{
		{name: "missing email", email: "", password: "password1", wantField: "email"},
		{name: "malformed email", email: "not-an-email", password: "password1", wantField: "email"},
		{name: "missing password", email: "a@b.c", password: "", wantField: "password"},
		{name: "short password", email: "a@b.c", password: "pass1", wantField: "password"},
		{name: "password without digit", email: "a@b.c", password: "passwords", wantField: "password"},
		{name: "password without letter", email: "a@b.c", password: "12345678", wantField: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStore := &mocks.UserStore{}
			tokMan := &mocks.TokenManager{}
			a := NewAuth(userStore, tokMan, testutil.MakeNoopLogger())

			_, err := a.Register(context.Background(), tt.email, tt.password)
			require.Error(t, err)

			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.wantField)
			userStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAuth_Register_EmailTaken(t *testing.T) {
	userStore := &mocks.UserStore{}
	tokMan := &mocks.TokenManager{}

	userStore.On("GetByEmail", mock.Anything, "taken@b.c").Return(model.User{ID: uuid.New()}, nil)

	a := NewAuth(userStore, tokMan, testutil.MakeNoopLogger())

	_, err := a.Register(context.Background(), "taken@b.c", "password1")
	require.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestAuth_Login_Success(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	tokMan := &mocks.TokenManager{}

	user := model.User{
		ID:           uuid.New(),
		Email:        "a@b.c",
		PasswordHash: hashPassword(t, "password1"),
	}
	userStore.On("GetByEmail", mock.Anything, "a@b.c").Return(user, nil)
	tokMan.On("Generate", user).Return(model.Token{AccessToken: "signed", User: user}, nil)

	a := NewAuth(userStore, tokMan, testutil.MakeNoopLogger())

	token, err := a.Login(ctx, "a@b.c", "password1")
	require.NoError(t, err)
	assert.Equal(t, "signed", token.AccessToken)
	assert.Equal(t, "a@b.c", token.User.Email)
	userStore.AssertNotCalled(t, "SetAccessState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuth_Login_UnknownEmail(t *testing.T) {
	userStore := &mocks.UserStore{}
	tokMan := &mocks.TokenManager{}

	userStore.On("GetByEmail", mock.Anything, "missing@b.c").Return(model.User{}, model.ErrNotFound)

	a := NewAuth(userStore, tokMan, testutil.MakeNoopLogger())

	_, err := a.Login(context.Background(), "missing@b.c", "password1")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_Login_WrongPassword(t *testing.T) {
	userStore := &mocks.UserStore{}
	tokMan := &mocks.TokenManager{}

	user := model.User{
		ID:           uuid.New(),
		Email:        "a@b.c",
		PasswordHash: hashPassword(t, "password1"),
	}
	userStore.On("GetByEmail", mock.Anything, "a@b.c").Return(user, nil)
	userStore.On("SetAccessState", mock.Anything, user.ID, 1, (*time.Time)(nil)).Return(nil)

	a := NewAuth(userStore, tokMan, testutil.MakeNoopLogger())

	_, err := a.Login(context.Background(), "a@b.c", "wrongpass1")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
	userStore.AssertExpectations(t)
}

func TestAuth_Login_LockoutAfterRepeatedFailures(t *testing.T) {
	userStore := &mocks.UserStore{}
	tokMan := &mocks.TokenManager{}

	user := model.User{
		ID:                uuid.New(),
		Email:             "a@b.c",
		PasswordHash:      hashPassword(t, "password1"),
		FailedAccessCount: maxFailedAccess - 1,
	}
	userStore.On("GetByEmail", mock.Anything, "a@b.c").Return(user, nil)
	userStore.On("SetAccessState", mock.Anything, user.ID, 0, mock.MatchedBy(func(end *time.Time) bool {
		return end != nil && end.After(time.Now())
	})).Return(nil)

	a := NewAuth(userStore, tokMan, testutil.MakeNoopLogger())

	_, err := a.Login(context.Background(), "a@b.c", "wrongpass1")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
	userStore.AssertExpectations(t)
}

func TestAuth_Login_LockedAccount(t *testing.T) {
	userStore := &mocks.UserStore{}
	tokMan := &mocks.TokenManager{}

	lockoutEnd := time.Now().Add(time.Minute)
	user := model.User{
		ID:           uuid.New(),
		Email:        "a@b.c",
		PasswordHash: hashPassword(t, "password1"),
		LockoutEnd:   &lockoutEnd,
	}
	userStore.On("GetByEmail", mock.Anything, "a@b.c").Return(user, nil)

	a := NewAuth(userStore, tokMan, testutil.MakeNoopLogger())

	// correct password still refused while locked out
	_, err := a.Login(context.Background(), "a@b.c", "password1")
	require.ErrorIs(t, err, model.ErrAccountLocked)
}

func TestAuth_Login_ResetsCounterOnSuccess(t *testing.T) {
	userStore := &mocks.UserStore{}
	tokMan := &mocks.TokenManager{}

	expired := time.Now().Add(-time.Minute)
	user := model.User{
		ID:                uuid.New(),
		Email:             "a@b.c",
		PasswordHash:      hashPassword(t, "password1"),
		FailedAccessCount: 2,
		LockoutEnd:        &expired,
	}
	userStore.On("GetByEmail", mock.Anything, "a@b.c").Return(user, nil)
	userStore.On("SetAccessState", mock.Anything, user.ID, 0, (*time.Time)(nil)).Return(nil)
	tokMan.On("Generate", user).Return(model.Token{AccessToken: "signed"}, nil)

	a := NewAuth(userStore, tokMan, testutil.MakeNoopLogger())

	_, err := a.Login(context.Background(), "a@b.c", "password1")
	require.NoError(t, err)
	userStore.AssertExpectations(t)
}

func TestAuth_Login_StoreFailure(t *testing.T) {
	userStore := &mocks.UserStore{}
	tokMan := &mocks.TokenManager{}

	userStore.On("GetByEmail", mock.Anything, "a@b.c").Return(model.User{}, errors.New("connection refused"))

	a := NewAuth(userStore, tokMan, testutil.MakeNoopLogger())

	_, err := a.Login(context.Background(), "a@b.c", "password1")
	require.Error(t, err)
	require.NotErrorIs(t, err, model.ErrInvalidCredentials)
}
