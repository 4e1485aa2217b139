package repository

import (
	"time"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
)

// UserRepository defines the persistence port for User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	// SetResetToken stores the SHA-256 digest of an issued reset token and its expiry.
	SetResetToken(userID, digest string, expiry time.Time) error
	// FindByResetDigest looks a user up by reset-token digest; nil when no match.
	FindByResetDigest(digest string) (*entity.User, error)
	// ClearResetToken removes any outstanding reset token after use.
	ClearResetToken(userID string) error
	UpdatePassword(userID, passwordHash string) error
}
