package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/a2sv-g68/admissions-service/internal/apperrors"
	"github.com/a2sv-g68/admissions-service/internal/domain"
	"github.com/a2sv-g68/admissions-service/internal/repository"
	"github.com/google/uuid"
)

type ReviewService interface {
	// ListAssigned returns the applications assigned to the reviewer.
	ListAssigned(ctx context.Context, reviewerID uuid.UUID) ([]domain.ApplicationWithNames, error)

	// GetAssigned returns one assigned application plus any saved
	// review. Reviewers only see applications assigned to them.
	GetAssigned(ctx context.Context, reviewerID, appID uuid.UUID) (*ApplicationWithReview, error)

	// SaveReview upserts the reviewer's feedback. The first save
	// creates the review, later saves update it in place; fields left
	// out keep their stored values.
	SaveReview(ctx context.Context, reviewerID, appID uuid.UUID, patch domain.ReviewPatch) (*domain.Review, error)
}

type ReviewServiceImpl struct {
	log     *slog.Logger
	apps    repository.ApplicationRepository
	reviews repository.ReviewRepository
}

func NewReviewService(log *slog.Logger, apps repository.ApplicationRepository, reviews repository.ReviewRepository) *ReviewServiceImpl {
	return &ReviewServiceImpl{
		log:     log,
		apps:    apps,
		reviews: reviews,
	}
}

func (s *ReviewServiceImpl) ListAssigned(ctx context.Context, reviewerID uuid.UUID) ([]domain.ApplicationWithNames, error) {
	return s.apps.ListByReviewer(ctx, reviewerID)
}

func (s *ReviewServiceImpl) GetAssigned(ctx context.Context, reviewerID, appID uuid.UUID) (*ApplicationWithReview, error) {
	const op = "internal.service.review.GetAssigned"

	app, err := s.apps.GetWithNames(ctx, appID)
	if err != nil {
		return nil, err
	}

	if app.AssignedReviewerID == nil || *app.AssignedReviewerID != reviewerID {
		return nil, apperrors.ErrNotAssigned
	}

	review, err := s.reviews.GetByApplicationID(ctx, appID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("%s: failed to get review: %w", op, err)
	}

	return &ApplicationWithReview{Application: app, Review: review}, nil
}

func (s *ReviewServiceImpl) SaveReview(ctx context.Context, reviewerID, appID uuid.UUID, patch domain.ReviewPatch) (*domain.Review, error) {
	const op = "internal.service.review.SaveReview"
	log := s.log.With(slog.String("op", op), slog.String("application_id", appID.String()), slog.String("reviewer_id", reviewerID.String()))

	app, err := s.apps.GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}

	if app.AssignedReviewerID == nil || *app.AssignedReviewerID != reviewerID {
		return nil, apperrors.ErrNotAssigned
	}

	review, err := s.reviews.Upsert(ctx, appID, reviewerID, patch)
	if err != nil {
		return nil, err
	}

	log.Info("review saved")

	return review, nil
}
