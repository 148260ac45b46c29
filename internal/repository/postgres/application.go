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

type ApplicationRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewApplicationRepository(db *sqlx.DB, log *slog.Logger) *ApplicationRepository {
	return &ApplicationRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var applicationColumns = []string{
	"id", "applicant_id", "cycle_id", "status", "school", "student_id",
	"country", "degree", "leetcode_handle", "codeforces_handle",
	"essay_why_a2sv", "essay_about_you", "resume_url",
	"assigned_reviewer_id", "decision_notes", "submitted_at", "updated_at",
}

// prefixed qualifies the application columns for joined queries.
func prefixedApplicationColumns() []string {
	cols := make([]string, len(applicationColumns))
	for i, c := range applicationColumns {
		cols[i] = "applications." + c
	}

	return cols
}

func (ar *ApplicationRepository) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	const op = "internal.repository.postgres.application.Create"
	log := ar.log.With(slog.String("op", op), slog.String("applicant_id", app.ApplicantID.String()))

	query, args, err := ar.sq.Insert("applications").
		Columns(
			"id", "applicant_id", "cycle_id", "status", "school", "student_id",
			"country", "degree", "leetcode_handle", "codeforces_handle",
			"essay_why_a2sv", "essay_about_you", "resume_url",
		).
		Values(
			app.ID, app.ApplicantID, app.CycleID, app.Status, app.School, app.StudentID,
			app.Country, app.Degree, app.LeetcodeHandle, app.CodeforcesHandle,
			app.EssayWhyA2SV, app.EssayAboutYou, app.ResumeURL,
		).
		Suffix("RETURNING " + joinColumns(applicationColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build application insert query: %w", err)
	}

	var created domain.Application
	if err := ar.db.QueryRowxContext(ctx, query, args...).StructScan(&created); err != nil {
		if pqErrorCode(err) == pqUniqueViolation {
			return nil, &apperrors.ApplicationExistsError{ApplicantID: app.ApplicantID.String()}
		}

		return nil, fmt.Errorf("failed to execute application insert: %w", err)
	}

	log.Info("application created", slog.String("application_id", created.ID.String()))

	return &created, nil
}

func (ar *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	query, args, err := ar.sq.Select(applicationColumns...).
		From("applications").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select application query: %w", err)
	}

	var app domain.Application
	if err := ar.db.GetContext(ctx, &app, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: application with id '%s'", apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("failed to get application by id: %w", err)
	}

	return &app, nil
}

func (ar *ApplicationRepository) GetByApplicantID(ctx context.Context, applicantID uuid.UUID) (*domain.Application, error) {
	query, args, err := ar.sq.Select(applicationColumns...).
		From("applications").
		Where(sq.Eq{"applicant_id": applicantID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select application query: %w", err)
	}

	var app domain.Application
	if err := ar.db.GetContext(ctx, &app, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: application for applicant '%s'", apperrors.ErrNotFound, applicantID)
		}

		return nil, fmt.Errorf("failed to get application by applicant: %w", err)
	}

	return &app, nil
}

func (ar *ApplicationRepository) GetByIDWithLock(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.Application, error) {
	query, args, err := ar.sq.Select(applicationColumns...).
		From("applications").
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select-for-update query: %w", err)
	}

	var app domain.Application
	if err := tx.GetContext(ctx, &app, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: application with id '%s'", apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("failed to get application with lock: %w", err)
	}

	return &app, nil
}

func (ar *ApplicationRepository) Update(ctx context.Context, ext sqlx.ExtContext, app *domain.Application) (*domain.Application, error) {
	const op = "internal.repository.postgres.application.Update"

	query, args, err := ar.sq.Update("applications").
		Set("status", app.Status).
		Set("school", app.School).
		Set("student_id", app.StudentID).
		Set("country", app.Country).
		Set("degree", app.Degree).
		Set("leetcode_handle", app.LeetcodeHandle).
		Set("codeforces_handle", app.CodeforcesHandle).
		Set("essay_why_a2sv", app.EssayWhyA2SV).
		Set("essay_about_you", app.EssayAboutYou).
		Set("resume_url", app.ResumeURL).
		Set("assigned_reviewer_id", app.AssignedReviewerID).
		Set("decision_notes", app.DecisionNotes).
		Set("submitted_at", app.SubmittedAt).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": app.ID}).
		Suffix("RETURNING " + joinColumns(applicationColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var updated domain.Application
	if err := sqlx.GetContext(ctx, ext, &updated, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: application with id '%s'", apperrors.ErrNotFound, app.ID)
		}

		return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return &updated, nil
}

func (ar *ApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "internal.repository.postgres.application.Delete"

	query, args, err := ar.sq.Delete("applications").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	res, err := ar.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute delete: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read rows affected: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%w: application with id '%s'", apperrors.ErrNotFound, id)
	}

	return nil
}

func (ar *ApplicationRepository) ListByCycle(ctx context.Context, cycleID int, status *domain.ApplicationStatus, offset, limit int) ([]domain.ApplicationWithNames, int, error) {
	where := sq.And{sq.Eq{"applications.cycle_id": cycleID}}
	if status != nil {
		where = append(where, sq.Eq{"applications.status": *status})
	}

	cols := append(prefixedApplicationColumns(),
		"applicant.full_name AS applicant_name",
		"reviewer.full_name AS reviewer_name",
	)

	query, args, err := ar.sq.Select(cols...).
		From("applications").
		Join("users AS applicant ON applicant.id = applications.applicant_id").
		LeftJoin("users AS reviewer ON reviewer.id = applications.assigned_reviewer_id").
		Where(where).
		OrderBy("applications.updated_at DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list applications query: %w", err)
	}

	var apps []domain.ApplicationWithNames
	if err := ar.db.SelectContext(ctx, &apps, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}

	countQuery, countArgs, err := ar.sq.Select("COUNT(*)").
		From("applications").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count applications query: %w", err)
	}

	var total int
	if err := ar.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	return apps, total, nil
}

func (ar *ApplicationRepository) ListByReviewer(ctx context.Context, reviewerID uuid.UUID) ([]domain.ApplicationWithNames, error) {
	cols := append(prefixedApplicationColumns(),
		"applicant.full_name AS applicant_name",
		"NULL AS reviewer_name",
	)

	query, args, err := ar.sq.Select(cols...).
		From("applications").
		Join("users AS applicant ON applicant.id = applications.applicant_id").
		Where(sq.Eq{"applications.assigned_reviewer_id": reviewerID}).
		OrderBy("applications.submitted_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list by reviewer query: %w", err)
	}

	var apps []domain.ApplicationWithNames
	if err := ar.db.SelectContext(ctx, &apps, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list applications by reviewer: %w", err)
	}

	return apps, nil
}

func (ar *ApplicationRepository) GetWithNames(ctx context.Context, id uuid.UUID) (*domain.ApplicationWithNames, error) {
	cols := append(prefixedApplicationColumns(),
		"applicant.full_name AS applicant_name",
		"reviewer.full_name AS reviewer_name",
	)

	query, args, err := ar.sq.Select(cols...).
		From("applications").
		Join("users AS applicant ON applicant.id = applications.applicant_id").
		LeftJoin("users AS reviewer ON reviewer.id = applications.assigned_reviewer_id").
		Where(sq.Eq{"applications.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select with names query: %w", err)
	}

	var app domain.ApplicationWithNames
	if err := ar.db.GetContext(ctx, &app, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: application with id '%s'", apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("failed to get application with names: %w", err)
	}

	return &app, nil
}
