package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/a2sv-g68/admissions-service/internal/apperrors"
	"github.com/a2sv-g68/admissions-service/internal/domain"
	"github.com/a2sv-g68/admissions-service/internal/repository"
	"github.com/a2sv-g68/admissions-service/internal/storage"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ApplicationForm is the payload of a new application. The resume is
// streamed, not buffered, so large files never sit in memory twice.
type ApplicationForm struct {
	School           string
	StudentID        string
	Country          string
	Degree           string
	LeetcodeHandle   string
	CodeforcesHandle string
	EssayWhyA2SV     string
	EssayAboutYou    string
	ResumeFilename   string
	Resume           io.Reader
}

// ApplicationWithReview bundles an application with its review, which
// may not exist yet.
type ApplicationWithReview struct {
	Application *domain.ApplicationWithNames
	Review      *domain.Review
}

type ApplicationService interface {
	// CreateApplication starts a draft in the active cycle. An
	// applicant can only ever hold one application.
	CreateApplication(ctx context.Context, applicantID uuid.UUID, form ApplicationForm) (*domain.Application, error)

	// GetOwnApplication returns the application only to its owner.
	GetOwnApplication(ctx context.Context, userID, appID uuid.UUID) (*domain.Application, error)

	// GetOwnStatus returns the caller's single application by identity
	// alone, without needing its id.
	GetOwnStatus(ctx context.Context, userID uuid.UUID) (*domain.Application, error)

	// UpdateOwnApplication edits a draft. Only in_progress applications
	// can be edited.
	UpdateOwnApplication(ctx context.Context, userID, appID uuid.UUID, patch domain.ApplicationPatch) (*domain.Application, error)

	// DeleteOwnApplication withdraws a draft. Only in_progress
	// applications can be deleted.
	DeleteOwnApplication(ctx context.Context, userID, appID uuid.UUID) error

	// SubmitApplication finalizes a draft, stamping the submission
	// time. Submitting twice is a conflict, not an idempotent no-op, so
	// the applicant learns their first submission already counted.
	SubmitApplication(ctx context.Context, userID, appID uuid.UUID) (*domain.Application, error)

	// ListApplications pages through the active cycle's applications
	// for managers, optionally narrowed by status.
	ListApplications(ctx context.Context, status *domain.ApplicationStatus, offset, limit int) ([]domain.ApplicationWithNames, int, error)

	// GetApplicationWithReview returns any application plus its review
	// for managers. Review is nil when none has been saved.
	GetApplicationWithReview(ctx context.Context, appID uuid.UUID) (*ApplicationWithReview, error)

	// AssignReviewer puts the application under review by the given
	// reviewer. The assignee must hold the reviewer role.
	AssignReviewer(ctx context.Context, appID, reviewerID uuid.UUID) (*domain.Application, error)

	// AvailableReviewers pages through accounts holding the reviewer
	// role.
	AvailableReviewers(ctx context.Context, offset, limit int) ([]domain.User, int, error)

	// DecideApplication records the final accept/reject decision.
	DecideApplication(ctx context.Context, appID uuid.UUID, status domain.ApplicationStatus, notes *string) (*domain.Application, error)
}

type ApplicationServiceImpl struct {
	BaseService
	apps     repository.ApplicationRepository
	cycles   repository.CycleRepository
	users    repository.UserRepository
	reviews  repository.ReviewRepository
	uploader storage.Uploader
}

func NewApplicationService(
	base BaseService,
	apps repository.ApplicationRepository,
	cycles repository.CycleRepository,
	users repository.UserRepository,
	reviews repository.ReviewRepository,
	uploader storage.Uploader,
) *ApplicationServiceImpl {
	return &ApplicationServiceImpl{
		BaseService: base,
		apps:        apps,
		cycles:      cycles,
		users:       users,
		reviews:     reviews,
		uploader:    uploader,
	}
}

func (s *ApplicationServiceImpl) CreateApplication(ctx context.Context, applicantID uuid.UUID, form ApplicationForm) (*domain.Application, error) {
	const op = "internal.service.application.CreateApplication"
	log := s.log.With(slog.String("op", op), slog.String("applicant_id", applicantID.String()))

	cycle, err := s.cycles.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	var resumeURL string
	if form.Resume != nil {
		resumeURL, err = s.uploader.Upload(form.ResumeFilename, form.Resume)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to store resume: %w", op, err)
		}
	}

	app, err := s.apps.Create(ctx, &domain.Application{
		ID:               uuid.New(),
		ApplicantID:      applicantID,
		CycleID:          cycle.ID,
		Status:           domain.StatusInProgress,
		School:           form.School,
		StudentID:        form.StudentID,
		Country:          form.Country,
		Degree:           form.Degree,
		LeetcodeHandle:   form.LeetcodeHandle,
		CodeforcesHandle: form.CodeforcesHandle,
		EssayWhyA2SV:     form.EssayWhyA2SV,
		EssayAboutYou:    form.EssayAboutYou,
		ResumeURL:        resumeURL,
	})
	if err != nil {
		return nil, err
	}

	log.Info("application created", slog.String("application_id", app.ID.String()), slog.Int("cycle_id", cycle.ID))

	return app, nil
}

func (s *ApplicationServiceImpl) GetOwnApplication(ctx context.Context, userID, appID uuid.UUID) (*domain.Application, error) {
	app, err := s.apps.GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}

	if app.ApplicantID != userID {
		return nil, apperrors.ErrNotOwner
	}

	return app, nil
}

func (s *ApplicationServiceImpl) GetOwnStatus(ctx context.Context, userID uuid.UUID) (*domain.Application, error) {
	return s.apps.GetByApplicantID(ctx, userID)
}

func (s *ApplicationServiceImpl) UpdateOwnApplication(ctx context.Context, userID, appID uuid.UUID, patch domain.ApplicationPatch) (*domain.Application, error) {
	const op = "internal.service.application.UpdateOwnApplication"

	var updated *domain.Application

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		app, err := s.apps.GetByIDWithLock(ctx, tx, appID)
		if err != nil {
			return err
		}

		if app.ApplicantID != userID {
			return apperrors.ErrNotOwner
		}

		if app.Status != domain.StatusInProgress {
			return &apperrors.IllegalTransitionError{Op: "edit", Status: string(app.Status)}
		}

		patch.Apply(app)

		updated, err = s.apps.Update(ctx, tx, app)

		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *ApplicationServiceImpl) DeleteOwnApplication(ctx context.Context, userID, appID uuid.UUID) error {
	const op = "internal.service.application.DeleteOwnApplication"
	log := s.log.With(slog.String("op", op), slog.String("application_id", appID.String()))

	app, err := s.apps.GetByID(ctx, appID)
	if err != nil {
		return err
	}

	if app.ApplicantID != userID {
		return apperrors.ErrNotOwner
	}

	if app.Status != domain.StatusInProgress {
		return &apperrors.IllegalTransitionError{Op: "delete", Status: string(app.Status)}
	}

	if err := s.apps.Delete(ctx, appID); err != nil {
		return err
	}

	log.Info("application withdrawn")

	return nil
}

func (s *ApplicationServiceImpl) SubmitApplication(ctx context.Context, userID, appID uuid.UUID) (*domain.Application, error) {
	const op = "internal.service.application.SubmitApplication"
	log := s.log.With(slog.String("op", op), slog.String("application_id", appID.String()))

	var submitted *domain.Application

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		app, err := s.apps.GetByIDWithLock(ctx, tx, appID)
		if err != nil {
			return err
		}

		if app.ApplicantID != userID {
			return apperrors.ErrNotOwner
		}

		if app.Status != domain.StatusInProgress {
			return &apperrors.IllegalTransitionError{Op: "submit", Status: string(app.Status)}
		}

		now := time.Now().UTC()
		app.Status = domain.StatusSubmitted
		app.SubmittedAt = &now

		submitted, err = s.apps.Update(ctx, tx, app)

		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info("application submitted")

	return submitted, nil
}

func (s *ApplicationServiceImpl) ListApplications(ctx context.Context, status *domain.ApplicationStatus, offset, limit int) ([]domain.ApplicationWithNames, int, error) {
	cycle, err := s.cycles.GetActive(ctx)
	if err != nil {
		// Outside any cycle there is simply nothing to list.
		if errors.Is(err, apperrors.ErrNoActiveCycle) {
			return []domain.ApplicationWithNames{}, 0, nil
		}

		return nil, 0, err
	}

	return s.apps.ListByCycle(ctx, cycle.ID, status, offset, limit)
}

func (s *ApplicationServiceImpl) GetApplicationWithReview(ctx context.Context, appID uuid.UUID) (*ApplicationWithReview, error) {
	const op = "internal.service.application.GetApplicationWithReview"

	app, err := s.apps.GetWithNames(ctx, appID)
	if err != nil {
		return nil, err
	}

	review, err := s.reviews.GetByApplicationID(ctx, appID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("%s: failed to get review: %w", op, err)
	}

	return &ApplicationWithReview{Application: app, Review: review}, nil
}

func (s *ApplicationServiceImpl) AssignReviewer(ctx context.Context, appID, reviewerID uuid.UUID) (*domain.Application, error) {
	const op = "internal.service.application.AssignReviewer"
	log := s.log.With(slog.String("op", op), slog.String("application_id", appID.String()), slog.String("reviewer_id", reviewerID.String()))

	reviewer, err := s.users.GetByID(ctx, reviewerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: reviewer with id '%s'", apperrors.ErrNotFound, reviewerID)
		}

		return nil, fmt.Errorf("%s: failed to get reviewer: %w", op, err)
	}

	if reviewer.Role != domain.RoleReviewer {
		return nil, fmt.Errorf("%w: user '%s' does not hold the reviewer role", apperrors.ErrValidation, reviewerID)
	}

	var assigned *domain.Application

	err = s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		app, err := s.apps.GetByIDWithLock(ctx, tx, appID)
		if err != nil {
			return err
		}

		if app.Status != domain.StatusSubmitted && app.Status != domain.StatusPendingReview {
			log.Warn("assigning a reviewer outside submitted/pending_review", slog.String("status", string(app.Status)))
		}

		app.Status = domain.StatusPendingReview
		app.AssignedReviewerID = &reviewerID

		assigned, err = s.apps.Update(ctx, tx, app)

		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info("reviewer assigned")

	return assigned, nil
}

func (s *ApplicationServiceImpl) AvailableReviewers(ctx context.Context, offset, limit int) ([]domain.User, int, error) {
	return s.users.ListByRole(ctx, domain.RoleReviewer, offset, limit)
}

func (s *ApplicationServiceImpl) DecideApplication(ctx context.Context, appID uuid.UUID, status domain.ApplicationStatus, notes *string) (*domain.Application, error) {
	const op = "internal.service.application.DecideApplication"
	log := s.log.With(slog.String("op", op), slog.String("application_id", appID.String()))

	if !status.IsDecision() {
		return nil, fmt.Errorf("%w: decision must be '%s' or '%s'", apperrors.ErrValidation, domain.StatusAccepted, domain.StatusRejected)
	}

	var decided *domain.Application

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		app, err := s.apps.GetByIDWithLock(ctx, tx, appID)
		if err != nil {
			return err
		}

		if app.Status != domain.StatusPendingReview {
			log.Warn("deciding an application outside pending_review", slog.String("status", string(app.Status)))
		}

		app.Status = status
		app.DecisionNotes = notes

		decided, err = s.apps.Update(ctx, tx, app)

		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info("application decided", slog.String("decision", string(status)))

	return decided, nil
}
