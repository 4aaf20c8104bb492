package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/provider-server/internal/logger"
	"github.com/dtroode/provider-server/internal/model"
)

// AuthService defines user registration and login operations.
type AuthService interface {
	Register(ctx context.Context, email, password string) (model.Token, error)
	Login(ctx context.Context, email, password string) (model.Token, error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string        `json:"access_token"`
	IssuedAt    int64         `json:"issued_at"`
	ExpiresAt   int64         `json:"expires_at"`
	User        userTokenBody `json:"user"`
}

type userTokenBody struct {
	ID     uuid.UUID     `json:"id"`
	Email  string        `json:"email"`
	Claims []model.Claim `json:"claims,omitempty"`
	Roles  []string      `json:"roles,omitempty"`
}

// Register creates a new user and returns a bearer token.
// POST /register
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "user not informed")
		return
	}

	token, err := h.authService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: registration failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, convertToken(token))
}

// Login authenticates credentials and returns a bearer token.
// POST /login
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "user not informed")
		return
	}

	token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, convertToken(token))
}

func convertToken(token model.Token) tokenResponse {
	return tokenResponse{
		AccessToken: token.AccessToken,
		IssuedAt:    token.IssuedAt.Unix(),
		ExpiresAt:   token.ExpiresAt.Unix(),
		User: userTokenBody{
			ID:     token.User.ID,
			Email:  token.User.Email,
			Claims: token.User.Claims,
			Roles:  token.User.Roles,
		},
	}
}
