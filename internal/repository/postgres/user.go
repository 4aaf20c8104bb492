package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/provider-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	query := `SELECT id, email, password_hash, email_confirmed, failed_access_count, lockout_end, created_at, updated_at
			  FROM users WHERE email = $1`

	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.EmailConfirmed,
		&user.FailedAccessCount, &user.LockoutEnd, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := r.loadClaimsAndRoles(ctx, &user); err != nil {
		return model.User{}, err
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var user model.User
	query := `SELECT id, email, password_hash, email_confirmed, failed_access_count, lockout_end, created_at, updated_at
			  FROM users WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.EmailConfirmed,
		&user.FailedAccessCount, &user.LockoutEnd, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if err := r.loadClaimsAndRoles(ctx, &user); err != nil {
		return model.User{}, err
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, email, password_hash, email_confirmed, failed_access_count, lockout_end, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, email, password_hash, email_confirmed, failed_access_count, lockout_end, created_at, updated_at`

	var savedUser model.User
	err := r.db.QueryRow(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.EmailConfirmed,
		user.FailedAccessCount, user.LockoutEnd, user.CreatedAt, user.UpdatedAt,
	).Scan(
		&savedUser.ID, &savedUser.Email, &savedUser.PasswordHash, &savedUser.EmailConfirmed,
		&savedUser.FailedAccessCount, &savedUser.LockoutEnd, &savedUser.CreatedAt, &savedUser.UpdatedAt,
	)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

func (r *UserRepository) AddClaim(ctx context.Context, userID uuid.UUID, claim model.Claim) error {
	const query = `INSERT INTO user_claims (user_id, claim_type, claim_value) VALUES ($1, $2, $3)`

	if _, err := r.db.Exec(ctx, query, userID, claim.Type, claim.Value); err != nil {
		return fmt.Errorf("failed to add user claim: %w", err)
	}

	return nil
}

func (r *UserRepository) AddRole(ctx context.Context, userID uuid.UUID, role string) error {
	const query = `INSERT INTO user_roles (user_id, role) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	if _, err := r.db.Exec(ctx, query, userID, role); err != nil {
		return fmt.Errorf("failed to add user role: %w", err)
	}

	return nil
}

func (r *UserRepository) SetAccessState(ctx context.Context, userID uuid.UUID, failedAccessCount int, lockoutEnd *time.Time) error {
	const query = `UPDATE users SET failed_access_count = $2, lockout_end = $3, updated_at = NOW() WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, userID, failedAccessCount, lockoutEnd)
	if err != nil {
		return fmt.Errorf("failed to set user access state: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *UserRepository) loadClaimsAndRoles(ctx context.Context, user *model.User) error {
	claimsQuery := `SELECT claim_type, claim_value FROM user_claims WHERE user_id = $1`

	rows, err := r.db.Query(ctx, claimsQuery, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get user claims: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var claim model.Claim
		if err := rows.Scan(&claim.Type, &claim.Value); err != nil {
			return fmt.Errorf("failed to scan user claim: %w", err)
		}
		user.Claims = append(user.Claims, claim)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rolesQuery := `SELECT role FROM user_roles WHERE user_id = $1`

	roleRows, err := r.db.Query(ctx, rolesQuery, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get user roles: %w", err)
	}
	defer roleRows.Close()

	for roleRows.Next() {
		var role string
		if err := roleRows.Scan(&role); err != nil {
			return fmt.Errorf("failed to scan user role: %w", err)
		}
		user.Roles = append(user.Roles, role)
	}

	return roleRows.Err()
}
