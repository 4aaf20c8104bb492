package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users and their claims.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	AddClaim(ctx context.Context, userID uuid.UUID, claim Claim) error
	AddRole(ctx context.Context, userID uuid.UUID, role string) error
	SetAccessState(ctx context.Context, userID uuid.UUID, failedAccessCount int, lockoutEnd *time.Time) error
}

// User represents a stored user with credential material.
type User struct {
	ID                uuid.UUID
	Email             string
	PasswordHash      []byte
	EmailConfirmed    bool
	FailedAccessCount int
	LockoutEnd        *time.Time
	Claims            []Claim
	Roles             []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Claim is a named permission or attribute attached to a user.
type Claim struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ClaimDeleteProvider authorizes provider deletion.
const ClaimDeleteProvider = "DeleteProvider"
