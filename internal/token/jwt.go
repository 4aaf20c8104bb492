package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/provider-server/internal/model"
)

// Claims represents JWT claims carrying the user identity, the user's own
// claims and roles.
type Claims struct {
	jwt.RegisteredClaims
	Email  string        `json:"email"`
	Claims []model.Claim `json:"claims,omitempty"`
	Roles  []string      `json:"roles,omitempty"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	issuer    string
	audience  string
	expiry    time.Duration
}

// NewJWT creates a new JWT token manager with the provided signing parameters.
func NewJWT(secretKey, issuer, audience string, expiry time.Duration) model.TokenManager {
	return &JWT{
		secretKey: secretKey,
		issuer:    issuer,
		audience:  audience,
		expiry:    expiry,
	}
}

// Generate creates a signed bearer token embedding the user's email, claims
// and roles, and returns it with issuance metadata.
func (j *JWT) Generate(user model.User) (model.Token, error) {
	now := time.Now()
	expiresAt := now.Add(j.expiry)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			Issuer:    j.issuer,
			Audience:  jwt.ClaimStrings{j.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email:  user.Email,
		Claims: user.Claims,
		Roles:  user.Roles,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return model.Token{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return model.Token{
		AccessToken: tokenString,
		IssuedAt:    now,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

// Parse validates a bearer token and extracts the caller identity.
// Signing method, issuer, audience and expiry are all checked.
func (j *JWT) Parse(tokenString string) (model.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithIssuer(j.issuer), jwt.WithAudience(j.audience))
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return model.Identity{}, fmt.Errorf("token is invalid")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to parse token subject: %w", err)
	}

	return model.Identity{
		UserID: userID,
		Email:  claims.Email,
		Claims: claims.Claims,
		Roles:  claims.Roles,
	}, nil
}
