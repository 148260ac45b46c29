// package repository defines the interfaces for the data persistence layer.
// These interfaces abstract the underlying database implementation from the service layer.
package repository

import (
	"context"

	"github.com/a2sv-g68/admissions-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// UserRepository defines the contract for user identity data.
type UserRepository interface {
	// Create inserts a new user. Email uniqueness is enforced by the
	// database; a duplicate returns apperrors.EmailTakenError.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// GetByID retrieves a user with its role name resolved.
	// Returns apperrors.ErrNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by its unique email.
	// Returns apperrors.ErrNotFound if no account holds the email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns a page of users plus the total count.
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)

	// ListByRole returns a page of users holding the given role plus the
	// total count of such users.
	ListByRole(ctx context.Context, role domain.Role, offset, limit int) ([]domain.User, int, error)

	// Update applies a partial update; nil patch fields are left
	// unchanged. Returns apperrors.ErrNotFound if the user is missing
	// and apperrors.EmailTakenError on an email collision.
	Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error)

	// Delete removes a user. Returns apperrors.ErrNotFound if missing
	// and apperrors.ErrConflict if the user is still referenced by an
	// application.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CycleRepository defines the contract for application cycle data.
type CycleRepository interface {
	// Create inserts a cycle. A duplicate name returns
	// apperrors.CycleNameTakenError.
	Create(ctx context.Context, cycle *domain.Cycle) (*domain.Cycle, error)

	// GetByID returns apperrors.ErrNotFound if the cycle is missing.
	GetByID(ctx context.Context, id int) (*domain.Cycle, error)

	// GetActive returns the single active cycle, or
	// apperrors.ErrNoActiveCycle if none is active.
	GetActive(ctx context.Context) (*domain.Cycle, error)

	// List returns all cycles, newest first.
	List(ctx context.Context) ([]domain.Cycle, error)

	// Update applies a partial update. Returns apperrors.ErrNotFound if
	// the cycle is missing and apperrors.CycleNameTakenError on a name
	// collision.
	Update(ctx context.Context, id int, patch domain.CyclePatch) (*domain.Cycle, error)

	// Delete removes a cycle. Returns apperrors.ErrNotFound if missing.
	Delete(ctx context.Context, id int) error

	// Activate makes the given cycle the only active one. The
	// deactivate-all plus activate-one pair runs in a single
	// transaction so there is never a window with zero or two active
	// cycles. Returns apperrors.ErrNotFound if the cycle is missing.
	Activate(ctx context.Context, id int) (*domain.Cycle, error)
}

// ApplicationRepository defines the contract for application lifecycle data.
type ApplicationRepository interface {
	// Create inserts a new application. The one-application-per-applicant
	// invariant is enforced by a uniqueness constraint, not a
	// check-then-insert; a duplicate returns
	// apperrors.ApplicationExistsError.
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)

	// GetByID returns apperrors.ErrNotFound if the application is missing.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)

	// GetByApplicantID returns the applicant's single application, or
	// apperrors.ErrNotFound if none exists.
	GetByApplicantID(ctx context.Context, applicantID uuid.UUID) (*domain.Application, error)

	// GetByIDWithLock retrieves an application and acquires a row-level
	// lock ("FOR UPDATE") so state transitions cannot race within the
	// transaction. Returns apperrors.ErrNotFound if missing.
	GetByIDWithLock(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.Application, error)

	// Update writes all mutable columns of the application and bumps
	// updated_at. The ext argument allows execution within a
	// transaction (*sqlx.Tx) or directly on a DB connection (*sqlx.DB).
	Update(ctx context.Context, ext sqlx.ExtContext, app *domain.Application) (*domain.Application, error)

	// Delete removes an application. Returns apperrors.ErrNotFound if missing.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByCycle returns a page of applications in the cycle with
	// applicant and reviewer names resolved, plus the total count.
	// A non-nil status narrows the listing.
	ListByCycle(ctx context.Context, cycleID int, status *domain.ApplicationStatus, offset, limit int) ([]domain.ApplicationWithNames, int, error)

	// ListByReviewer returns the applications assigned to a reviewer
	// with applicant names resolved.
	ListByReviewer(ctx context.Context, reviewerID uuid.UUID) ([]domain.ApplicationWithNames, error)

	// GetWithNames retrieves one application with names resolved.
	// Returns apperrors.ErrNotFound if missing.
	GetWithNames(ctx context.Context, id uuid.UUID) (*domain.ApplicationWithNames, error)
}

// ReviewRepository defines the contract for reviewer feedback data.
type ReviewRepository interface {
	// Upsert creates the review row on first save and updates it in
	// place afterwards. It is a single atomic statement keyed by the
	// application_id uniqueness constraint, so concurrent saves can
	// never produce a second row. Nil patch fields keep their stored
	// values.
	Upsert(ctx context.Context, applicationID, reviewerID uuid.UUID, patch domain.ReviewPatch) (*domain.Review, error)

	// GetByApplicationID returns the review for an application, or
	// apperrors.ErrNotFound if none has been saved yet.
	GetByApplicationID(ctx context.Context, applicationID uuid.UUID) (*domain.Review, error)
}
