// Package services implements the portal's business operations on top of
// the repositories, the object store and the mailer.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gpai/case-portal/internal/dbx"
	"github.com/gpai/case-portal/internal/logging"
	"github.com/gpai/case-portal/internal/server/auth"
	"github.com/gpai/case-portal/internal/server/config"
	"github.com/gpai/case-portal/internal/server/mail"
	"github.com/gpai/case-portal/internal/server/models"
	"github.com/gpai/case-portal/internal/server/repositories/repomanager"
	"github.com/gpai/case-portal/internal/shared"
)

const minPasswordLength = 6

// UserService implements account sign-up, sign-in, email confirmation and
// the password-reset flow.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	mailer      mail.Mailer
	logger      logging.Logger
	config      *config.Config
}

func NewUserService(db *sql.DB, rm repomanager.RepositoryManager, mailer mail.Mailer, logger logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: rm,
		mailer:      mailer,
		logger:      logger,
		config:      cfg,
	}
}

// ValidateSignUp applies the local sign-up rules. It must be called (and
// must pass) before anything touches the store.
func ValidateSignUp(password, confirmPassword string) error {
	if password != confirmPassword {
		return shared.ErrorPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return shared.ErrorPasswordTooShort
	}
	return nil
}

// SignUp creates an unconfirmed account and emails a confirmation link.
// The account row and its confirmation token are written in one
// transaction; a mail-send failure is logged but does not fail the
// sign-up (the token stays redeemable and the mail can be re-requested).
func (s *UserService) SignUp(ctx context.Context, email, password, confirmPassword string) (*models.User, error) {
	if err := ValidateSignUp(password, confirmPassword); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, shared.ErrorInternal
	}

	user := &models.User{Email: email, PasswordHash: hash}

	token, err := shared.MakeRandHexString(32)
	if err != nil {
		return nil, shared.ErrorInternal
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		user = created

		return s.repomanager.Tokens(tx).Create(ctx, user.ID, token, models.TokenPurposeConfirm, s.config.ConfirmTokenValidityDuration)
	})
	if err != nil {
		if errors.Is(err, shared.ErrorEmailTaken) {
			return nil, shared.ErrorEmailTaken
		}
		return nil, fmt.Errorf("error creating user: %v", err)
	}

	confirmURL := fmt.Sprintf("%s/auth/callback?token=%s", s.config.SiteURL, token)
	if err := s.mailer.Send(ctx, user.Email, mail.ConfirmAccountSubject, mail.ConfirmAccountBody(confirmURL)); err != nil {
		s.logger.Error(ctx, "failed to send confirmation email", "email", user.Email, "error", err)
	}

	return user, nil
}

// SignIn verifies the credentials and returns a signed session token.
func (s *UserService) SignIn(ctx context.Context, email, password string) (string, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return "", shared.ErrorInvalidCredentials
		}
		return "", shared.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", shared.ErrorInvalidCredentials
	}

	if !user.Confirmed() {
		return "", shared.ErrorEmailNotConfirmed
	}

	token, err := auth.GenerateToken(user.ID, []byte(s.config.SecretKey), s.config.SessionValidityDuration)
	if err != nil {
		return "", shared.ErrorInternal
	}

	return token, nil
}

// GetUser loads an account by id; used by the session gate.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// ConfirmEmail redeems a confirmation token and marks the account
// confirmed. The token is single-use.
func (s *UserService) ConfirmEmail(ctx context.Context, token string) error {
	row, err := s.findToken(ctx, token, models.TokenPurposeConfirm)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).MarkConfirmed(ctx, row.UserID); err != nil {
			return err
		}
		return s.repomanager.Tokens(tx).Delete(ctx, token)
	})
}

// RequestPasswordReset issues a single-use reset token for the account and
// emails the reset link. The mail-send outcome is logged, never surfaced:
// delivery-infrastructure failures must not leak to the caller.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := shared.MakeRandHexString(32)
	if err != nil {
		return shared.ErrorInternal
	}

	if err := s.repomanager.Tokens(s.db).Create(ctx, user.ID, token, models.TokenPurposeReset, s.config.ResetTokenValidityDuration); err != nil {
		return shared.ErrorInternal
	}

	resetURL := fmt.Sprintf("%s/auth/reset-password?token=%s", s.config.SiteURL, token)
	if err := s.mailer.Send(ctx, user.Email, mail.ResetPasswordSubject, mail.ResetPasswordBody(resetURL)); err != nil {
		s.logger.Error(ctx, "failed to send password reset email", "email", user.Email, "error", err)
	}

	return nil
}

// ResetPassword redeems a reset token and stores the new password hash.
func (s *UserService) ResetPassword(ctx context.Context, token, password string) error {
	if len(password) < minPasswordLength {
		return shared.ErrorPasswordTooShort
	}

	row, err := s.findToken(ctx, token, models.TokenPurposeReset)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return shared.ErrorInternal
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).UpdatePasswordHash(ctx, row.UserID, hash); err != nil {
			return err
		}
		return s.repomanager.Tokens(tx).Delete(ctx, token)
	})
}

func (s *UserService) findToken(ctx context.Context, token, purpose string) (*models.Token, error) {
	row, err := s.repomanager.Tokens(s.db).Find(ctx, token)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return nil, shared.ErrorInvalidToken
		}
		return nil, shared.ErrorInternal
	}

	if row.Purpose != purpose {
		return nil, shared.ErrorInvalidToken
	}

	if row.Expired() {
		// expired tokens are dropped eagerly so they cannot pile up
		_ = s.repomanager.Tokens(s.db).Delete(ctx, token)
		return nil, shared.ErrorTokenExpired
	}

	return row, nil
}
