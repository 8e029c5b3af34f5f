package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/collabnest/collabnest-api/internal/auth"
	"github.com/collabnest/collabnest-api/internal/config"
	"github.com/collabnest/collabnest-api/internal/model"
	"github.com/collabnest/collabnest-api/internal/security"
)

type capturedEmail struct {
	to       []string
	subject  string
	htmlBody string
}

type fakeMailer struct {
	sent []capturedEmail
}

func (m *fakeMailer) SendHTML(to []string, subject, htmlBody string) error {
	m.sent = append(m.sent, capturedEmail{to: to, subject: subject, htmlBody: htmlBody})
	return nil
}

func newPasswordResetUsecase() (PasswordResetUsecase, *fakeUserRepo, *fakeMailer, *config.Config) {
	repo := newFakeUserRepo()
	mail := &fakeMailer{}
	cfg := &config.Config{
		AppPasswordResetURL: "http://localhost:3000/reset-password",
		ResetTokenSecret:    "test-secret",
		ResetTokenExpiresIn: time.Hour,
		TokenIssuer:         "collabnest-api",
	}
	jwtAuth := auth.NewJWTAuthenticator(cfg.TokenIssuer, cfg.TokenIssuer)

	return NewPasswordResetUsecase(repo, jwtAuth, mail, cfg), repo, mail, cfg
}

func seedUser(t *testing.T, repo *fakeUserRepo, email string) *model.User {
	t.Helper()

	user, err := repo.CreateUser(context.Background(), &model.User{
		Name:     "Reset Me",
		Username: "resetme",
		Email:    email,
	})
	require.NoError(t, err)
	return user
}

// tokenFromEmail pulls the signed token out of the reset link.
func tokenFromEmail(t *testing.T, body string) string {
	t.Helper()

	_, after, found := strings.Cut(body, "?token=")
	require.True(t, found, "reset email should contain a token link")
	token, _, found := strings.Cut(after, `"`)
	require.True(t, found)
	return token
}

func TestRequestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	ctx := context.Background()
	reset, _, mail, _ := newPasswordResetUsecase()

	require.NoError(t, reset.RequestPasswordReset(ctx, "nobody@example.com"))
	require.Empty(t, mail.sent)
}

func TestRequestPasswordResetStoresTokenAndSendsEmail(t *testing.T) {
	ctx := context.Background()
	reset, repo, mail, _ := newPasswordResetUsecase()
	user := seedUser(t, repo, "resetme@example.com")

	require.NoError(t, reset.RequestPasswordReset(ctx, user.Email))

	require.Len(t, mail.sent, 1)
	require.Equal(t, []string{user.Email}, mail.sent[0].to)

	stored, err := repo.GetUser(ctx, user.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, stored.ForgotPasswordToken)
	require.NotNil(t, stored.ForgotPasswordTokenExpiry)
	require.True(t, stored.ForgotPasswordTokenExpiry.After(time.Now()))
}

func TestResetPasswordHappyPath(t *testing.T) {
	ctx := context.Background()
	reset, repo, mail, _ := newPasswordResetUsecase()
	user := seedUser(t, repo, "resetme@example.com")

	require.NoError(t, reset.RequestPasswordReset(ctx, user.Email))
	token := tokenFromEmail(t, mail.sent[0].htmlBody)

	require.NoError(t, reset.ResetPassword(ctx, token, "new-password"))

	stored, err := repo.GetUser(ctx, user.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, stored.Password)

	ok, err := security.VerifyPassword("new-password", *stored.Password)
	require.NoError(t, err)
	require.True(t, ok)

	// Token fields are cleared once used.
	require.Nil(t, stored.ForgotPasswordToken)
	require.Nil(t, stored.ForgotPasswordTokenExpiry)
}

func TestResetPasswordRejectsGarbageToken(t *testing.T) {
	ctx := context.Background()
	reset, _, _, _ := newPasswordResetUsecase()

	err := reset.ResetPassword(ctx, "not-a-jwt", "new-password")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetPasswordRejectsExpiredStoredToken(t *testing.T) {
	ctx := context.Background()
	reset, repo, mail, _ := newPasswordResetUsecase()
	user := seedUser(t, repo, "resetme@example.com")

	require.NoError(t, reset.RequestPasswordReset(ctx, user.Email))
	token := tokenFromEmail(t, mail.sent[0].htmlBody)

	// Expire the stored token behind the JWT's back.
	past := time.Now().Add(-time.Minute)
	repo.find(user.ID).ForgotPasswordTokenExpiry = &past

	err := reset.ResetPassword(ctx, token, "new-password")
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestResetPasswordUnknownStoredToken(t *testing.T) {
	ctx := context.Background()
	reset, repo, mail, _ := newPasswordResetUsecase()
	user := seedUser(t, repo, "resetme@example.com")

	require.NoError(t, reset.RequestPasswordReset(ctx, user.Email))
	token := tokenFromEmail(t, mail.sent[0].htmlBody)

	// Clear the stored token so the JTI no longer resolves.
	repo.find(user.ID).ForgotPasswordToken = nil

	err := reset.ResetPassword(ctx, token, "new-password")
	require.ErrorIs(t, err, ErrTokenNotFound)
}
