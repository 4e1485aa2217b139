package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implements UserRepository (usable with pool or tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository builds the adapter. Pass pool or tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, name, email, mobile, password_hash, role, status,
	reset_token_digest, reset_token_expiry, created_at, updated_at`

// Create persists a new account. A taken email maps to ErrEmailAlreadyExists.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, mobile, password_hash, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Name, user.Email, nullIfEmpty(user.Mobile),
		user.PasswordHash, user.Role, user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID fetches one account by ID; nil when absent.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByEmail fetches one account by email; nil when absent.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// FindByResetDigest fetches the account holding this reset-token digest.
func (r *UserRepo) FindByResetDigest(digest string) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE reset_token_digest = $1`, digest)
}

// Update rewrites the mutable profile fields.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET name = $2, email = $3, mobile = $4, role = $5, status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Name, user.Email, nullIfEmpty(user.Mobile),
		user.Role, user.Status, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// SetResetToken stores the outstanding reset-token digest and its expiry.
func (r *UserRepo) SetResetToken(userID, digest string, expiry time.Time) error {
	query := `
		UPDATE users SET reset_token_digest = $2, reset_token_expiry = $3, updated_at = now()
		WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, userID, digest, expiry); err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	return nil
}

// ClearResetToken drops any outstanding reset token.
func (r *UserRepo) ClearResetToken(userID string) error {
	query := `
		UPDATE users SET reset_token_digest = NULL, reset_token_expiry = NULL, updated_at = now()
		WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, userID); err != nil {
		return fmt.Errorf("clear reset token: %w", err)
	}
	return nil
}

// UpdatePassword swaps in a new bcrypt hash.
func (r *UserRepo) UpdatePassword(userID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, userID, passwordHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (r *UserRepo) getOne(query string, arg any) (*entity.User, error) {
	var (
		u      entity.User
		mobile *string
		digest *string
	)
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &mobile, &u.PasswordHash, &u.Role, &u.Status,
		&digest, &u.ResetTokenExpiry, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.Mobile = orEmpty(mobile)
	u.ResetTokenDigest = orEmpty(digest)
	return &u, nil
}
