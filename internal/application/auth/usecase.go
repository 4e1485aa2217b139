package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/dto"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/repository"
	"github.com/AnnapuraniA/Arudhra-Fashions/pkg/jwt"
	"github.com/AnnapuraniA/Arudhra-Fashions/pkg/logger"
)

// Reset tokens stay valid for one hour.
const resetTokenTTL = time.Hour

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Mailer is the outgoing-mail port for the password-reset flow.
type Mailer interface {
	SendPasswordReset(to, name, resetURL string) error
}

// AuthUseCase authentication use cases: register, login, password reset.
type AuthUseCase struct {
	userRepo repository.UserRepository
	mailer   Mailer
	log      *logger.Logger
	jwtCfg   JWTConfig
	baseURL  string // public site URL for reset links
}

// NewAuthUseCase builds the auth use case.
func NewAuthUseCase(userRepo repository.UserRepository, mailer Mailer, log *logger.Logger, jwtCfg JWTConfig, baseURL string) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, mailer: mailer, log: log, jwtCfg: jwtCfg, baseURL: baseURL}
}

// Register creates a customer account: hashes the password with bcrypt and persists.
// Returns ErrEmailAlreadyExists when the email is taken.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        in.Email,
		Mobile:       in.Mobile,
		PasswordHash: string(hash),
		Role:         entity.RoleCustomer,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifies email/password, signs a JWT and returns token + user.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Me returns the profile for the authenticated user.
func (uc *AuthUseCase) Me(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// ForgotPassword issues a reset token and mails the link. Only the SHA-256
// digest of the token is stored; the plaintext token travels in the mail.
// An unknown email returns success so the endpoint does not leak which
// addresses have accounts.
func (uc *AuthUseCase) ForgotPassword(in dto.ForgotPasswordRequest) error {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return err
	}
	if user == nil {
		uc.log.Debug().Str("email", in.Email).Msg("password reset requested for unknown email")
		return nil
	}

	token, digest, err := newResetToken()
	if err != nil {
		return fmt.Errorf("auth: generate reset token: %w", err)
	}
	expiry := time.Now().Add(resetTokenTTL)
	if err := uc.userRepo.SetResetToken(user.ID, digest, expiry); err != nil {
		return fmt.Errorf("auth: store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", uc.baseURL, url.QueryEscape(token))
	if err := uc.mailer.SendPasswordReset(user.Email, user.Name, resetURL); err != nil {
		return fmt.Errorf("auth: send reset mail: %w", err)
	}
	uc.log.Info().Str("user_id", user.ID).Msg("password reset mail sent")
	return nil
}

// ResetPassword consumes a reset token: verifies digest and expiry, stores the
// new bcrypt hash and invalidates the token.
func (uc *AuthUseCase) ResetPassword(in dto.ResetPasswordRequest) error {
	digest := digestToken(in.Token)
	user, err := uc.userRepo.FindByResetDigest(digest)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrTokenInvalid
	}
	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		_ = uc.userRepo.ClearResetToken(user.ID)
		return domain.ErrTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := uc.userRepo.UpdatePassword(user.ID, string(hash)); err != nil {
		return err
	}
	if err := uc.userRepo.ClearResetToken(user.ID); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("password reset completed")
	return nil
}

// newResetToken returns a 64-hex-char random token and its SHA-256 digest.
func newResetToken() (token, digest string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	token = hex.EncodeToString(buf)
	return token, digestToken(token), nil
}

func digestToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Mobile:    u.Mobile,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
