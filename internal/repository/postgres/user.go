package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/a2sv-g68/admissions-service/internal/apperrors"
	"github.com/a2sv-g68/admissions-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewUserRepository(db *sqlx.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// userColumns selects users joined with their role name, so handlers
// never see raw role ids.
var userColumns = []string{
	"users.id",
	"users.email",
	"users.password_hash",
	"users.full_name",
	"roles.name AS role",
	"users.is_active",
	"users.profile_picture_url",
	"users.created_at",
	"users.updated_at",
}

func (ur *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const op = "internal.repository.postgres.user.Create"
	log := ur.log.With(slog.String("op", op), slog.String("email", user.Email))

	query, args, err := ur.sq.Insert("users").
		Columns("id", "email", "password_hash", "full_name", "role_id", "is_active", "profile_picture_url").
		Values(
			user.ID,
			user.Email,
			user.PasswordHash,
			user.FullName,
			sq.Expr("(SELECT id FROM roles WHERE name = ?)", string(user.Role)),
			user.IsActive,
			user.ProfilePictureURL,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user insert query: %w", err)
	}

	created := *user
	if err := ur.db.QueryRowxContext(ctx, query, args...).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
		if pqErrorCode(err) == pqUniqueViolation {
			return nil, &apperrors.EmailTakenError{Email: user.Email}
		}

		return nil, fmt.Errorf("failed to execute user insert: %w", err)
	}

	log.Info("user created", slog.String("user_id", created.ID.String()))

	return &created, nil
}

func (ur *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query, args, err := ur.sq.Select(userColumns...).
		From("users").
		Join("roles ON roles.id = users.role_id").
		Where(sq.Eq{"users.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select user query: %w", err)
	}

	var user domain.User
	if err := ur.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user with id '%s'", apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query, args, err := ur.sq.Select(userColumns...).
		From("users").
		Join("roles ON roles.id = users.role_id").
		Where(sq.Eq{"users.email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select user query: %w", err)
	}

	var user domain.User
	if err := ur.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user with email '%s'", apperrors.ErrNotFound, email)
		}

		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (ur *UserRepository) List(ctx context.Context, offset, limit int) ([]domain.User, int, error) {
	return ur.list(ctx, nil, offset, limit)
}

func (ur *UserRepository) ListByRole(ctx context.Context, role domain.Role, offset, limit int) ([]domain.User, int, error) {
	return ur.list(ctx, sq.Eq{"roles.name": string(role)}, offset, limit)
}

func (ur *UserRepository) list(ctx context.Context, where interface{}, offset, limit int) ([]domain.User, int, error) {
	builder := ur.sq.Select(userColumns...).
		From("users").
		Join("roles ON roles.id = users.role_id").
		OrderBy("users.created_at DESC")
	countBuilder := ur.sq.Select("COUNT(*)").
		From("users").
		Join("roles ON roles.id = users.role_id")

	if where != nil {
		builder = builder.Where(where)
		countBuilder = countBuilder.Where(where)
	}

	query, args, err := builder.
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list users query: %w", err)
	}

	var users []domain.User
	if err := ur.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count users query: %w", err)
	}

	var total int
	if err := ur.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	return users, total, nil
}

func (ur *UserRepository) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
	const op = "internal.repository.postgres.user.Update"

	builder := ur.sq.Update("users").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id})

	if patch.FullName != nil {
		builder = builder.Set("full_name", *patch.FullName)
	}
	if patch.Email != nil {
		builder = builder.Set("email", *patch.Email)
	}
	if patch.PasswordHash != nil {
		builder = builder.Set("password_hash", *patch.PasswordHash)
	}
	if patch.Role != nil {
		builder = builder.Set("role_id", sq.Expr("(SELECT id FROM roles WHERE name = ?)", string(*patch.Role)))
	}
	if patch.IsActive != nil {
		builder = builder.Set("is_active", *patch.IsActive)
	}
	if patch.ProfilePictureURL != nil {
		builder = builder.Set("profile_picture_url", *patch.ProfilePictureURL)
	}

	query, args, err := builder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var updatedID uuid.UUID
	if err := ur.db.QueryRowxContext(ctx, query, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user with id '%s'", apperrors.ErrNotFound, id)
		}
		if pqErrorCode(err) == pqUniqueViolation && patch.Email != nil {
			return nil, &apperrors.EmailTakenError{Email: *patch.Email}
		}

		return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return ur.GetByID(ctx, updatedID)
}

func (ur *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "internal.repository.postgres.user.Delete"

	query, args, err := ur.sq.Delete("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	res, err := ur.db.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErrorCode(err) == pqForeignKeyViolation {
			return fmt.Errorf("%w: user '%s' is referenced by an application", apperrors.ErrConflict, id)
		}

		return fmt.Errorf("%s: failed to execute delete: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read rows affected: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%w: user with id '%s'", apperrors.ErrNotFound, id)
	}

	return nil
}
