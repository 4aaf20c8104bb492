package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/provider-server/internal/logger"
	"github.com/dtroode/provider-server/internal/model"
)

// ProviderService defines business operations for provider management.
type ProviderService interface {
	List(ctx context.Context) ([]model.Provider, error)
	Get(ctx context.Context, id uuid.UUID) (model.Provider, error)
	Create(ctx context.Context, params model.ProviderParams) (model.Provider, error)
	Update(ctx context.Context, id uuid.UUID, params model.ProviderParams) error
	Delete(ctx context.Context, identity model.Identity, id uuid.UUID) error
}

// Provider handles HTTP endpoints for providers.
type Provider struct {
	providerService ProviderService
	contextManager  model.ContextManager
	logger          *logger.Logger
}

// NewProvider creates a new Provider handler.
func NewProvider(providerService ProviderService, contextManager model.ContextManager, logger *logger.Logger) *Provider {
	return &Provider{
		providerService: providerService,
		contextManager:  contextManager,
		logger:          logger,
	}
}

type providerRequest struct {
	Name     string `json:"name"`
	Document string `json:"document"`
}

type providerResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Document string    `json:"document"`
}

// List returns all providers.
// GET /provider
func (h *Provider) List(w http.ResponseWriter, r *http.Request) {
	providers, err := h.providerService.List(r.Context())
	if err != nil {
		h.logger.Error("Provider handler: list failed",
			"error", err.Error())
		handleError(w, err)
		return
	}

	body := make([]providerResponse, 0, len(providers))
	for _, provider := range providers {
		body = append(body, convertProvider(provider))
	}

	writeJSON(w, http.StatusOK, body)
}

// Get returns a single provider by id.
// GET /provider/{id}
func (h *Provider) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid provider id")
		return
	}

	provider, err := h.providerService.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, convertProvider(provider))
}

// Create validates and persists a new provider.
// POST /provider
func (h *Provider) Create(w http.ResponseWriter, r *http.Request) {
	var req providerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "provider not informed")
		return
	}

	provider, err := h.providerService.Create(r.Context(), model.ProviderParams{
		Name:     req.Name,
		Document: req.Document,
	})
	if err != nil {
		h.logger.Error("Provider handler: create failed",
			"error", err.Error())
		handleError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/provider/%s", provider.ID))
	writeJSON(w, http.StatusCreated, convertProvider(provider))
}

// Update overwrites an existing provider's fields.
// PUT /provider/{id}
func (h *Provider) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid provider id")
		return
	}

	var req providerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "provider not informed")
		return
	}

	err = h.providerService.Update(r.Context(), id, model.ProviderParams{
		Name:     req.Name,
		Document: req.Document,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a provider. Requires the DeleteProvider claim.
// DELETE /provider/{id}
func (h *Provider) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid provider id")
		return
	}

	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	if err := h.providerService.Delete(r.Context(), identity, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func convertProvider(provider model.Provider) providerResponse {
	return providerResponse{
		ID:       provider.ID,
		Name:     provider.Name,
		Document: provider.Document,
	}
}
