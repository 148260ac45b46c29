package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/a2sv-g68/admissions-service/internal/apperrors"
	"github.com/a2sv-g68/admissions-service/internal/auth"
	"github.com/a2sv-g68/admissions-service/internal/domain"
	"github.com/a2sv-g68/admissions-service/internal/mailer"
	"github.com/a2sv-g68/admissions-service/internal/repository"
	"github.com/a2sv-g68/admissions-service/pkg/logger/sl"
	"github.com/google/uuid"
)

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	Access  string
	Refresh string
}

type AuthService interface {
	// Register creates an applicant account. Every self-registered user
	// starts as an applicant; elevated roles are granted by an admin.
	Register(ctx context.Context, email, password, fullName string) (*domain.User, error)

	// Login verifies credentials and returns an access/refresh pair.
	// A wrong email and a wrong password are indistinguishable to the
	// caller. A deactivated account cannot log in.
	Login(ctx context.Context, email, password string) (*TokenPair, error)

	// Refresh exchanges a refresh token for a new pair. Access tokens
	// are rejected here even though they are signed with the same key.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// ForgotPassword mails a reset link if the account exists. It
	// succeeds either way so responses do not reveal which emails are
	// registered.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword sets a new password given a valid reset token.
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type AuthServiceImpl struct {
	log      *slog.Logger
	users    repository.UserRepository
	tokens   *auth.TokenManager
	mail     mailer.Sender
	resetURL string
}

func NewAuthService(
	log *slog.Logger,
	users repository.UserRepository,
	tokens *auth.TokenManager,
	mail mailer.Sender,
	resetURL string,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		log:      log,
		users:    users,
		tokens:   tokens,
		mail:     mail,
		resetURL: resetURL,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, email, password, fullName string) (*domain.User, error) {
	const op = "internal.service.auth.Register"
	log := s.log.With(slog.String("op", op), slog.String("email", email))

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         domain.RoleApplicant,
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))

	return user, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	const op = "internal.service.auth.Login"
	log := s.log.With(slog.String("op", op), slog.String("email", email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrBadCredentials
		}

		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, apperrors.ErrBadCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountInactive
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))

	return pair, nil
}

func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	const op = "internal.service.auth.Refresh"

	userID, err := s.tokens.Verify(refreshToken, auth.KindRefresh)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidToken
		}

		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountInactive
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, nil
}

func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	const op = "internal.service.auth.ForgotPassword"
	log := s.log.With(slog.String("op", op), slog.String("email", email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.Info("reset requested for unknown email")
			return nil
		}

		return fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	token, err := s.tokens.Issue(auth.KindPasswordReset, user.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	link := s.resetURL + "?token=" + token
	expires := int(s.tokens.TTL(auth.KindPasswordReset).Minutes())

	if err := s.mail.Send(user.Email, "Password Reset Request", mailer.PasswordResetBody(link, expires)); err != nil {
		// The response must stay uniform, so a delivery failure is
		// only logged.
		log.Error("failed to send reset mail", sl.Err(err))
		return nil
	}

	log.Info("reset mail sent", slog.String("user_id", user.ID.String()))

	return nil
}

func (s *AuthServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	const op = "internal.service.auth.ResetPassword"
	log := s.log.With(slog.String("op", op))

	userID, err := s.tokens.Verify(token, auth.KindPasswordReset)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.users.Update(ctx, userID, domain.UserPatch{PasswordHash: &hash}); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrInvalidToken
		}

		return fmt.Errorf("%s: failed to update password: %w", op, err)
	}

	log.Info("password reset", slog.String("user_id", userID.String()))

	return nil
}

func (s *AuthServiceImpl) issuePair(userID uuid.UUID) (*TokenPair, error) {
	access, err := s.tokens.Issue(auth.KindAccess, userID)
	if err != nil {
		return nil, err
	}

	refresh, err := s.tokens.Issue(auth.KindRefresh, userID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}
