package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/dto"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
	"github.com/AnnapuraniA/Arudhra-Fashions/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test doubles
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byID map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) SetResetToken(userID, digest string, expiry time.Time) error {
	u := r.byID[userID]
	u.ResetTokenDigest = digest
	u.ResetTokenExpiry = &expiry
	return nil
}

func (r *fakeUserRepo) FindByResetDigest(digest string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.ResetTokenDigest != "" && u.ResetTokenDigest == digest {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ClearResetToken(userID string) error {
	u := r.byID[userID]
	u.ResetTokenDigest = ""
	u.ResetTokenExpiry = nil
	return nil
}

func (r *fakeUserRepo) UpdatePassword(userID, hash string) error {
	r.byID[userID].PasswordHash = hash
	return nil
}

type fakeMailer struct {
	resetURLs []string
	lastTo    string
}

func (m *fakeMailer) SendPasswordReset(to, name, resetURL string) error {
	m.lastTo = to
	m.resetURLs = append(m.resetURLs, resetURL)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

func newTestUseCase(t *testing.T) (*AuthUseCase, *fakeUserRepo, *fakeMailer) {
	t.Helper()
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := NewAuthUseCase(repo, mailer, log, JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "test",
	}, "https://shop.test")
	return uc, repo, mailer
}

func register(t *testing.T, uc *AuthUseCase) *dto.UserResponse {
	t.Helper()
	user, err := uc.Register(dto.RegisterRequest{
		Name:     "Annapurani A",
		Email:    "annapurani@example.com",
		Mobile:   "+91 98765 43210",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	return user
}

// ──────────────────────────────────────────────────────────────────────────────
// Register / Login
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_HashesPassword(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)

	user := register(t, uc)
	assert.Equal(t, entity.RoleCustomer, user.Role)

	stored := repo.byID[user.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash, "plaintext must never be stored")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	register(t, uc)

	_, err := uc.Register(dto.RegisterRequest{Email: "annapurani@example.com", Password: "whatever-12"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_ReturnsToken(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	register(t, uc)

	out, err := uc.Login(dto.LoginRequest{Email: "annapurani@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "annapurani@example.com", out.User.Email)
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	register(t, uc)

	_, err := uc.Login(dto.LoginRequest{Email: "annapurani@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_RejectsInactiveAccount(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	user := register(t, uc)
	repo.byID[user.ID].Status = "suspended"

	_, err := uc.Login(dto.LoginRequest{Email: "annapurani@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Password reset
// ──────────────────────────────────────────────────────────────────────────────

func TestForgotPassword_StoresDigestNotToken(t *testing.T) {
	uc, repo, mailer := newTestUseCase(t)
	user := register(t, uc)

	require.NoError(t, uc.ForgotPassword(dto.ForgotPasswordRequest{Email: "annapurani@example.com"}))

	require.Len(t, mailer.resetURLs, 1)
	assert.Equal(t, "annapurani@example.com", mailer.lastTo)

	stored := repo.byID[user.ID]
	require.NotEmpty(t, stored.ResetTokenDigest)
	require.NotNil(t, stored.ResetTokenExpiry)
	assert.NotContains(t, mailer.resetURLs[0], stored.ResetTokenDigest,
		"the mailed token and the stored digest must differ")
}

func TestForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	uc, _, mailer := newTestUseCase(t)

	err := uc.ForgotPassword(dto.ForgotPasswordRequest{Email: "nobody@example.com"})
	assert.NoError(t, err, "the flow must not reveal which emails have accounts")
	assert.Empty(t, mailer.resetURLs)
}

func TestResetPassword_FullFlow(t *testing.T) {
	uc, repo, mailer := newTestUseCase(t)
	user := register(t, uc)
	require.NoError(t, uc.ForgotPassword(dto.ForgotPasswordRequest{Email: "annapurani@example.com"}))

	token := tokenFromURL(t, mailer.resetURLs[0])
	require.NoError(t, uc.ResetPassword(dto.ResetPasswordRequest{Token: token, Password: "brand-new-pass"}))

	stored := repo.byID[user.ID]
	assert.Empty(t, stored.ResetTokenDigest, "token is single use")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("brand-new-pass")))

	// Replaying the consumed token fails.
	err := uc.ResetPassword(dto.ResetPasswordRequest{Token: token, Password: "yet-another-pass"})
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestResetPassword_RejectsExpiredToken(t *testing.T) {
	uc, repo, mailer := newTestUseCase(t)
	user := register(t, uc)
	require.NoError(t, uc.ForgotPassword(dto.ForgotPasswordRequest{Email: "annapurani@example.com"}))

	expired := time.Now().Add(-time.Minute)
	repo.byID[user.ID].ResetTokenExpiry = &expired

	token := tokenFromURL(t, mailer.resetURLs[0])
	err := uc.ResetPassword(dto.ResetPasswordRequest{Token: token, Password: "brand-new-pass"})
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	assert.Empty(t, repo.byID[user.ID].ResetTokenDigest, "expired token is cleared")
}

func TestResetPassword_RejectsUnknownToken(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	err := uc.ResetPassword(dto.ResetPasswordRequest{Token: "deadbeef", Password: "brand-new-pass"})
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func tokenFromURL(t *testing.T, u string) string {
	t.Helper()
	i := strings.Index(u, "token=")
	require.GreaterOrEqual(t, i, 0, "reset URL must carry the token: %s", u)
	return u[i+len("token="):]
}
