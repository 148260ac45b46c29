package http

import (
	"fmt"
	"net/http"

	"github.com/a2sv-g68/admissions-service/internal/apperrors"
	"github.com/a2sv-g68/admissions-service/internal/domain"
	"github.com/google/uuid"
)

func (s *Server) listApplications(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listApplications"

	page, limit, offset := pagination(r)

	var status *domain.ApplicationStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := domain.ApplicationStatus(raw)
		switch st {
		case domain.StatusInProgress, domain.StatusSubmitted, domain.StatusPendingReview,
			domain.StatusAccepted, domain.StatusRejected:
			status = &st
		default:
			s.handleServiceError(w, r, op, fmt.Errorf("%w: unknown status '%s'", apperrors.ErrValidation, raw))
			return
		}
	}

	apps, total, err := s.appService.ListApplications(r.Context(), status, offset, limit)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	items := make([]applicationWithNamesResponse, len(apps))
	for i := range apps {
		items[i] = toApplicationWithNamesResponse(&apps[i])
	}

	s.respond(w, http.StatusOK, "applications retrieved", newPaginatedResponse(items, total, page, limit))
}

func (s *Server) getApplicationWithReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getApplicationWithReview"

	id, err := uuidParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	result, err := s.appService.GetApplicationWithReview(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "application retrieved", toApplicationWithReviewResponse(result))
}

func (s *Server) assignReviewer(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.assignReviewer"

	id, err := uuidParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req assignReviewerRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	reviewerID, err := uuid.Parse(req.ReviewerID)
	if err != nil {
		s.handleServiceError(w, r, op, fmt.Errorf("%w: 'reviewer_id' must be a uuid", apperrors.ErrInvalidRequest))
		return
	}

	app, err := s.appService.AssignReviewer(r.Context(), id, reviewerID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "reviewer assigned", toApplicationResponse(app))
}

func (s *Server) decideApplication(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.decideApplication"

	id, err := uuidParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req decideApplicationRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	app, err := s.appService.DecideApplication(r.Context(), id, domain.ApplicationStatus(req.Status), req.Notes)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "decision recorded", toApplicationResponse(app))
}

func (s *Server) availableReviewers(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.availableReviewers"

	page, limit, offset := pagination(r)

	reviewers, total, err := s.appService.AvailableReviewers(r.Context(), offset, limit)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	items := make([]userResponse, len(reviewers))
	for i := range reviewers {
		items[i] = toUserResponse(&reviewers[i])
	}

	s.respond(w, http.StatusOK, "reviewers retrieved", newPaginatedResponse(items, total, page, limit))
}
