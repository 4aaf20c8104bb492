package service

import "github.com/dtroode/provider-server/internal/model"

var _ model.ClaimChecker = TokenClaims{}

// TokenClaims checks claims embedded in the bearer token identity.
type TokenClaims struct{}

// HasClaim reports whether the identity carries the named claim.
func (TokenClaims) HasClaim(identity model.Identity, claim string) bool {
	for _, c := range identity.Claims {
		if c.Type == claim {
			return true
		}
	}
	return false
}
