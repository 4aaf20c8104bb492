package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dtroode/provider-server/internal/logger"
	"github.com/dtroode/provider-server/internal/model"
)

// TokenParser resolves the caller identity from bearer tokens.
type TokenParser interface {
	Parse(token string) (model.Identity, error)
}

// Authenticate validates bearer tokens and injects the identity into context.
type Authenticate struct {
	tokenParser    TokenParser
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenParser TokenParser, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		tokenParser:    tokenParser,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle parses the Authorization header, validates the token and passes the
// request on with the identity in context. Missing or invalid tokens get 401.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if header == "" || tokenString == header {
			m.unauthorized(w, "missing bearer token")
			return
		}

		identity, err := m.tokenParser.Parse(tokenString)
		if err != nil {
			m.logger.Debug("Authenticate middleware: invalid token",
				"error", err.Error())
			m.unauthorized(w, "invalid bearer token")
			return
		}

		ctx := m.contextManager.SetIdentityToContext(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
