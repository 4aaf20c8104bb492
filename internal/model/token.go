package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenManager generates and validates bearer tokens.
type TokenManager interface {
	Generate(user User) (Token, error)
	Parse(token string) (Identity, error)
}

// Token is a signed bearer token plus its issuance metadata.
type Token struct {
	AccessToken string
	IssuedAt    time.Time
	ExpiresAt   time.Time
	User        User
}

// Identity is the authenticated caller extracted from a bearer token.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Claims []Claim
	Roles  []string
}

// ClaimChecker reports whether an identity holds a named claim. The bearer
// token carries the claims, but implementations may consult any source.
type ClaimChecker interface {
	HasClaim(identity Identity, claim string) bool
}
