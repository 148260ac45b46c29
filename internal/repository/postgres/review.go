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

type ReviewRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewReviewRepository(db *sqlx.DB, log *slog.Logger) *ReviewRepository {
	return &ReviewRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var reviewColumns = []string{
	"id", "application_id", "reviewer_id", "activity_check_notes",
	"resume_score", "essay_why_a2sv_score", "essay_about_you_score",
	"technical_interview_score", "behavioral_interview_score",
	"interview_notes", "created_at", "updated_at",
}

// Upsert writes a review in a single statement. The uniqueness
// constraint on application_id makes concurrent first saves collapse
// into one row; COALESCE keeps stored values where the patch is nil.
func (rr *ReviewRepository) Upsert(ctx context.Context, applicationID, reviewerID uuid.UUID, patch domain.ReviewPatch) (*domain.Review, error) {
	const op = "internal.repository.postgres.review.Upsert"
	log := rr.log.With(slog.String("op", op), slog.String("application_id", applicationID.String()))

	query := `
		INSERT INTO reviews (
			id, application_id, reviewer_id, activity_check_notes,
			resume_score, essay_why_a2sv_score, essay_about_you_score,
			technical_interview_score, behavioral_interview_score, interview_notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (application_id) DO UPDATE SET
			reviewer_id = EXCLUDED.reviewer_id,
			activity_check_notes = COALESCE(EXCLUDED.activity_check_notes, reviews.activity_check_notes),
			resume_score = COALESCE(EXCLUDED.resume_score, reviews.resume_score),
			essay_why_a2sv_score = COALESCE(EXCLUDED.essay_why_a2sv_score, reviews.essay_why_a2sv_score),
			essay_about_you_score = COALESCE(EXCLUDED.essay_about_you_score, reviews.essay_about_you_score),
			technical_interview_score = COALESCE(EXCLUDED.technical_interview_score, reviews.technical_interview_score),
			behavioral_interview_score = COALESCE(EXCLUDED.behavioral_interview_score, reviews.behavioral_interview_score),
			interview_notes = COALESCE(EXCLUDED.interview_notes, reviews.interview_notes),
			updated_at = now()
		RETURNING ` + joinColumns(reviewColumns)

	var review domain.Review
	err := rr.db.QueryRowxContext(ctx, query,
		uuid.New(), applicationID, reviewerID,
		patch.ActivityCheckNotes, patch.ResumeScore,
		patch.EssayWhyA2SVScore, patch.EssayAboutYouScore,
		patch.TechnicalInterviewScore, patch.BehavioralInterviewScore,
		patch.InterviewNotes,
	).StructScan(&review)
	if err != nil {
		if pqErrorCode(err) == pqForeignKeyViolation {
			return nil, fmt.Errorf("%w: application with id '%s'", apperrors.ErrNotFound, applicationID)
		}

		return nil, fmt.Errorf("%s: failed to upsert review: %w", op, err)
	}

	log.Info("review saved", slog.String("review_id", review.ID.String()))

	return &review, nil
}

func (rr *ReviewRepository) GetByApplicationID(ctx context.Context, applicationID uuid.UUID) (*domain.Review, error) {
	query, args, err := rr.sq.Select(reviewColumns...).
		From("reviews").
		Where(sq.Eq{"application_id": applicationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select review query: %w", err)
	}

	var review domain.Review
	if err := rr.db.GetContext(ctx, &review, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: review for application '%s'", apperrors.ErrNotFound, applicationID)
		}

		return nil, fmt.Errorf("failed to get review by application: %w", err)
	}

	return &review, nil
}
