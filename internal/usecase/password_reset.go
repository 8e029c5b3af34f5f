package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/collabnest/collabnest-api/internal/auth"
	"github.com/collabnest/collabnest-api/internal/config"
	"github.com/collabnest/collabnest-api/internal/repository"
	"github.com/collabnest/collabnest-api/internal/security"
)

// PasswordResetUsecase defines the business logic for the password reset flow.
type PasswordResetUsecase interface {
	// RequestPasswordReset initiates the password reset process for a given
	// email. Unknown emails succeed silently so callers cannot probe for
	// registered addresses.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword resets the user's password using the signed token from the
	// reset link.
	ResetPassword(ctx context.Context, token, newPassword string) error
}

var (
	ErrTokenNotFound = errors.New("password reset token not found")
	ErrTokenExpired  = errors.New("password reset token has expired")
	ErrInvalidToken  = errors.New("invalid password reset token")
)

// ResetMailer sends the password reset email. *mailer.Mailer satisfies it.
type ResetMailer interface {
	SendHTML(to []string, subject, htmlBody string) error
}

type passwordResetUsecase struct {
	userRepo repository.UserRepository
	jwtAuth  auth.JWTAuthenticator
	mailer   ResetMailer
	cfg      *config.Config
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	jwtAuth auth.JWTAuthenticator,
	mailer ResetMailer,
	cfg *config.Config,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo: userRepo,
		jwtAuth:  jwtAuth,
		mailer:   mailer,
		cfg:      cfg,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// To prevent email enumeration, do not reveal that the email does
			// not exist.
			return nil
		}
		return err
	}

	jti := uuid.NewString()
	expiry := time.Now().Add(u.cfg.ResetTokenExpiresIn)

	if err := u.userRepo.SetResetToken(ctx, user.ID, jti, expiry); err != nil {
		return err
	}

	tokenStr, err := u.generateResetToken(user.ID.Hex(), user.Email, jti)
	if err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s?token=%s", u.cfg.AppPasswordResetURL, tokenStr)
	htmlBody := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>We received a request to reset the password for your account.</p>
		<p>If you made this request, please click the link below to create a new password:</p>

		<p><a href="%s">%s</a></p>

		<p>This link will expire in %s.</p>
		<p>If you did not request a password reset, you can safely ignore this email.</p>
	`, user.Name, resetLink, resetLink, u.cfg.ResetTokenExpiresIn)

	return u.mailer.SendHTML([]string{user.Email}, "Password Reset Request", htmlBody)
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims := &auth.PasswordResetClaims{}
	if _, err := u.jwtAuth.ValidateTokenWithClaims(token, u.cfg.ResetTokenSecret, claims); err != nil {
		return ErrInvalidToken
	}

	user, err := u.userRepo.GetUserByResetToken(ctx, claims.JTI)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTokenNotFound
		}
		return err
	}

	if user.ForgotPasswordTokenExpiry == nil || time.Now().After(*user.ForgotPasswordTokenExpiry) {
		return ErrTokenExpired
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return u.userRepo.ResetPassword(ctx, user.ID, passwordHash)
}

// generateResetToken signs a password reset JWT carrying the stored JTI.
func (u *passwordResetUsecase) generateResetToken(userID, email, jti string) (string, error) {
	now := time.Now()
	claims := auth.PasswordResetClaims{
		UserID: userID,
		Email:  email,
		JTI:    jti,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    u.cfg.TokenIssuer,
			Audience:  jwt.ClaimStrings{u.cfg.TokenIssuer},
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(u.cfg.ResetTokenExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	return u.jwtAuth.GenerateToken(claims, u.cfg.ResetTokenSecret)
}
