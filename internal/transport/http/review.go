package http

import (
	"net/http"

	"github.com/a2sv-g68/admissions-service/internal/domain"
)

func (s *Server) listAssigned(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listAssigned"

	apps, err := s.revService.ListAssigned(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	items := make([]applicationWithNamesResponse, len(apps))
	for i := range apps {
		items[i] = toApplicationWithNamesResponse(&apps[i])
	}

	s.respond(w, http.StatusOK, "assigned applications retrieved", items)
}

func (s *Server) getAssigned(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getAssigned"

	id, err := uuidParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	result, err := s.revService.GetAssigned(r.Context(), currentUser(r.Context()).ID, id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "application retrieved", toApplicationWithReviewResponse(result))
}

func (s *Server) saveReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.saveReview"

	id, err := uuidParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req saveReviewRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	patch := domain.ReviewPatch{
		ActivityCheckNotes:       req.ActivityCheckNotes,
		ResumeScore:              req.ResumeScore,
		EssayWhyA2SVScore:        req.EssayWhyA2SVScore,
		EssayAboutYouScore:       req.EssayAboutYouScore,
		TechnicalInterviewScore:  req.TechnicalInterviewScore,
		BehavioralInterviewScore: req.BehavioralInterviewScore,
		InterviewNotes:           req.InterviewNotes,
	}

	review, err := s.revService.SaveReview(r.Context(), currentUser(r.Context()).ID, id, patch)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "review saved", toReviewResponse(review))
}
