package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/provider-server/internal/logger"
	"github.com/dtroode/provider-server/internal/model"
)

// Lockout policy: after maxFailedAccess consecutive failures the account is
// locked for lockoutDuration. The counter resets on successful login.
const (
	maxFailedAccess = 5
	lockoutDuration = 5 * time.Minute
)

var (
	hasLetter = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit  = regexp.MustCompile(`[0-9]`)
)

// Auth provides user registration and login, issuing bearer tokens on success.
type Auth struct {
	userStore    model.UserStore
	tokenManager model.TokenManager
	logger       *logger.Logger
}

func NewAuth(userStore model.UserStore, tokenManager model.TokenManager, logger *logger.Logger) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Register creates a user with the email as username, email pre-confirmed,
// and issues a bearer token.
func (a *Auth) Register(ctx context.Context, email, password string) (model.Token, error) {
	a.logger.Debug("Auth service: starting user registration",
		"email", email)

	err := validation.Errors{
		"email": validation.Validate(email, validation.Required, is.Email),
		"password": validation.Validate(password,
			validation.Required,
			validation.Length(8, 100),
			validation.Match(hasLetter).Error("must contain a letter"),
			validation.Match(hasDigit).Error("must contain a digit"),
		),
	}.Filter()
	if err != nil {
		return model.Token{}, model.NewValidationError(err)
	}

	existingUser, err := a.userStore.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.Token{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if existingUser.ID != uuid.Nil {
		a.logger.Info("Auth service: user already exists",
			"email", email)
		return model.Token{}, model.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.Token{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:             uuid.New(),
		Email:          email,
		PasswordHash:   hash,
		EmailConfirmed: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	savedUser, err := a.userStore.Create(ctx, user)
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.Token{}, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := a.tokenManager.Generate(savedUser)
	if err != nil {
		return model.Token{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user registration completed",
		"email", email,
		"user_id", savedUser.ID)

	return token, nil
}

// Login authenticates the credentials and issues a bearer token. A locked
// account is reported distinctly; any other failure is a generic
// invalid-credentials error that never reveals which field was wrong.
func (a *Auth) Login(ctx context.Context, email, password string) (model.Token, error) {
	a.logger.Debug("Auth service: starting user login",
		"email", email)

	err := validation.Errors{
		"email":    validation.Validate(email, validation.Required, is.Email),
		"password": validation.Validate(password, validation.Required),
	}.Filter()
	if err != nil {
		return model.Token{}, model.NewValidationError(err)
	}

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.Token{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.Token{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if user.LockoutEnd != nil && time.Now().Before(*user.LockoutEnd) {
		a.logger.Info("Auth service: login attempt on locked account",
			"email", email)
		return model.Token{}, model.ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		a.recordFailedAccess(ctx, user)
		return model.Token{}, model.ErrInvalidCredentials
	}

	if user.FailedAccessCount > 0 || user.LockoutEnd != nil {
		if err := a.userStore.SetAccessState(ctx, user.ID, 0, nil); err != nil {
			a.logger.Error("Auth service: failed to reset access state",
				"user_id", user.ID,
				"error", err.Error())
		}
	}

	token, err := a.tokenManager.Generate(user)
	if err != nil {
		return model.Token{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login completed",
		"email", email,
		"user_id", user.ID)

	return token, nil
}

func (a *Auth) recordFailedAccess(ctx context.Context, user model.User) {
	failed := user.FailedAccessCount + 1

	var lockoutEnd *time.Time
	if failed >= maxFailedAccess {
		end := time.Now().Add(lockoutDuration)
		lockoutEnd = &end
		failed = 0
	}

	if err := a.userStore.SetAccessState(ctx, user.ID, failed, lockoutEnd); err != nil {
		a.logger.Error("Auth service: failed to record failed access",
			"user_id", user.ID,
			"error", err.Error())
	}
}
