package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/a2sv-g68/admissions-service/internal/apperrors"
	"github.com/a2sv-g68/admissions-service/internal/domain"
	"github.com/a2sv-g68/admissions-service/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
)

type CycleRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewCycleRepository(db *sqlx.DB, log *slog.Logger) *CycleRepository {
	return &CycleRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var cycleColumns = []string{"id", "name", "start_date", "end_date", "is_active", "description", "created_at"}

func (cr *CycleRepository) Create(ctx context.Context, cycle *domain.Cycle) (*domain.Cycle, error) {
	const op = "internal.repository.postgres.cycle.Create"
	log := cr.log.With(slog.String("op", op), slog.String("name", cycle.Name))

	query, args, err := cr.sq.Insert("application_cycles").
		Columns("name", "start_date", "end_date", "is_active", "description").
		Values(cycle.Name, cycle.StartDate, cycle.EndDate, false, cycle.Description).
		Suffix("RETURNING " + joinColumns(cycleColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build cycle insert query: %w", err)
	}

	var created domain.Cycle
	if err := cr.db.QueryRowxContext(ctx, query, args...).StructScan(&created); err != nil {
		if pqErrorCode(err) == pqUniqueViolation {
			return nil, &apperrors.CycleNameTakenError{Name: cycle.Name}
		}

		return nil, fmt.Errorf("failed to execute cycle insert: %w", err)
	}

	log.Info("cycle created", slog.Int("cycle_id", created.ID))

	return &created, nil
}

func (cr *CycleRepository) GetByID(ctx context.Context, id int) (*domain.Cycle, error) {
	query, args, err := cr.sq.Select(cycleColumns...).
		From("application_cycles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select cycle query: %w", err)
	}

	var cycle domain.Cycle
	if err := cr.db.GetContext(ctx, &cycle, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: cycle with id '%d'", apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("failed to get cycle by id: %w", err)
	}

	return &cycle, nil
}

func (cr *CycleRepository) GetActive(ctx context.Context) (*domain.Cycle, error) {
	query, args, err := cr.sq.Select(cycleColumns...).
		From("application_cycles").
		Where(sq.Eq{"is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select active cycle query: %w", err)
	}

	var cycle domain.Cycle
	if err := cr.db.GetContext(ctx, &cycle, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNoActiveCycle
		}

		return nil, fmt.Errorf("failed to get active cycle: %w", err)
	}

	return &cycle, nil
}

func (cr *CycleRepository) List(ctx context.Context) ([]domain.Cycle, error) {
	query, args, err := cr.sq.Select(cycleColumns...).
		From("application_cycles").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list cycles query: %w", err)
	}

	var cycles []domain.Cycle
	if err := cr.db.SelectContext(ctx, &cycles, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list cycles: %w", err)
	}

	return cycles, nil
}

func (cr *CycleRepository) Update(ctx context.Context, id int, patch domain.CyclePatch) (*domain.Cycle, error) {
	const op = "internal.repository.postgres.cycle.Update"

	builder := cr.sq.Update("application_cycles").
		Where(sq.Eq{"id": id})

	if patch.Name != nil {
		builder = builder.Set("name", *patch.Name)
	}
	if patch.StartDate != nil {
		builder = builder.Set("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		builder = builder.Set("end_date", *patch.EndDate)
	}
	if patch.Description != nil {
		builder = builder.Set("description", *patch.Description)
	}

	query, args, err := builder.Suffix("RETURNING " + joinColumns(cycleColumns)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var updated domain.Cycle
	if err := cr.db.QueryRowxContext(ctx, query, args...).StructScan(&updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: cycle with id '%d'", apperrors.ErrNotFound, id)
		}
		if pqErrorCode(err) == pqUniqueViolation && patch.Name != nil {
			return nil, &apperrors.CycleNameTakenError{Name: *patch.Name}
		}

		return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return &updated, nil
}

func (cr *CycleRepository) Delete(ctx context.Context, id int) error {
	const op = "internal.repository.postgres.cycle.Delete"

	query, args, err := cr.sq.Delete("application_cycles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	res, err := cr.db.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErrorCode(err) == pqForeignKeyViolation {
			return fmt.Errorf("%w: cycle '%d' has applications", apperrors.ErrConflict, id)
		}

		return fmt.Errorf("%s: failed to execute delete: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read rows affected: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%w: cycle with id '%d'", apperrors.ErrNotFound, id)
	}

	return nil
}

// Activate deactivates every cycle and activates the requested one
// inside a single transaction, so the single-active-cycle invariant
// holds even under concurrent activations.
func (cr *CycleRepository) Activate(ctx context.Context, id int) (*domain.Cycle, error) {
	const op = "internal.repository.postgres.cycle.Activate"
	log := cr.log.With(slog.String("op", op), slog.Int("cycle_id", id))

	tx, err := cr.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Error("failed to rollback transaction", sl.Err(err))
		}
	}()

	deactivate, dArgs, err := cr.sq.Update("application_cycles").
		Set("is_active", false).
		Where(sq.Eq{"is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build deactivate query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, deactivate, dArgs...); err != nil {
		return nil, fmt.Errorf("%s: failed to deactivate cycles: %w", op, err)
	}

	activate, aArgs, err := cr.sq.Update("application_cycles").
		Set("is_active", true).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(cycleColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build activate query: %w", op, err)
	}

	var activated domain.Cycle
	if err := tx.QueryRowxContext(ctx, activate, aArgs...).StructScan(&activated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: cycle with id '%d'", apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to activate cycle: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	log.Info("cycle activated", slog.String("name", activated.Name))

	return &activated, nil
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
