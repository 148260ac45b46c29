package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/a2sv-g68/admissions-service/internal/apperrors"
	"github.com/a2sv-g68/admissions-service/internal/auth"
	"github.com/a2sv-g68/admissions-service/internal/domain"
	"github.com/a2sv-g68/admissions-service/internal/repository"
	"github.com/a2sv-g68/admissions-service/internal/storage"
	"github.com/google/uuid"
)

type UserService interface {
	// GetProfile returns the caller's own account.
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateProfile changes the caller's display name.
	UpdateProfile(ctx context.Context, userID uuid.UUID, fullName string) (*domain.User, error)

	// ChangePassword requires the current password before accepting a
	// new one.
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error

	// UploadProfilePicture stores the picture and records its URL on
	// the account.
	UploadProfilePicture(ctx context.Context, userID uuid.UUID, filename string, content io.Reader) (*domain.User, error)

	// CreateUser lets an admin create an account with any role.
	CreateUser(ctx context.Context, email, password, fullName string, role domain.Role) (*domain.User, error)

	// ListUsers returns a page of all accounts plus the total count.
	ListUsers(ctx context.Context, offset, limit int) ([]domain.User, int, error)

	// GetUser returns any account by id.
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// UpdateUser applies an admin patch: role changes, activation
	// toggles, profile fields.
	UpdateUser(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error)

	// DeleteUser removes an account. Accounts still referenced by an
	// application cannot be removed.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type UserServiceImpl struct {
	log      *slog.Logger
	users    repository.UserRepository
	uploader storage.Uploader
}

func NewUserService(log *slog.Logger, users repository.UserRepository, uploader storage.Uploader) *UserServiceImpl {
	return &UserServiceImpl{
		log:      log,
		users:    users,
		uploader: uploader,
	}
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, fullName string) (*domain.User, error) {
	return s.users.Update(ctx, userID, domain.UserPatch{FullName: &fullName})
}

func (s *UserServiceImpl) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	const op = "internal.service.user.ChangePassword"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID.String()))

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.VerifyPassword(oldPassword, user.PasswordHash) {
		return apperrors.ErrBadCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.users.Update(ctx, userID, domain.UserPatch{PasswordHash: &hash}); err != nil {
		return fmt.Errorf("%s: failed to update password: %w", op, err)
	}

	log.Info("password changed")

	return nil
}

func (s *UserServiceImpl) UploadProfilePicture(ctx context.Context, userID uuid.UUID, filename string, content io.Reader) (*domain.User, error) {
	const op = "internal.service.user.UploadProfilePicture"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID.String()))

	url, err := s.uploader.Upload(filename, content)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to store picture: %w", op, err)
	}

	user, err := s.users.Update(ctx, userID, domain.UserPatch{ProfilePictureURL: &url})
	if err != nil {
		return nil, err
	}

	log.Info("profile picture updated", slog.String("url", url))

	return user, nil
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, email, password, fullName string, role domain.Role) (*domain.User, error) {
	const op = "internal.service.user.CreateUser"
	log := s.log.With(slog.String("op", op), slog.String("email", email))

	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role '%s'", apperrors.ErrValidation, role)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}

	log.Info("user created by admin", slog.String("user_id", user.ID.String()), slog.String("role", string(role)))

	return user, nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, offset, limit int) ([]domain.User, int, error) {
	return s.users.List(ctx, offset, limit)
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
	if patch.Role != nil && !patch.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role '%s'", apperrors.ErrValidation, *patch.Role)
	}

	return s.users.Update(ctx, id, patch)
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id uuid.UUID) error {
	const op = "internal.service.user.DeleteUser"

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("user deleted", slog.String("op", op), slog.String("user_id", id.String()))

	return nil
}
