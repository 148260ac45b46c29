package http

import (
	"net/http"

	"github.com/a2sv-g68/admissions-service/internal/domain"
	"github.com/a2sv-g68/admissions-service/internal/service"
)

// createApplication accepts a multipart form: text fields plus an
// optional "resume" file.
func (s *Server) createApplication(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createApplication"

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	form := ApplicationFormFromRequest(r)

	if file, header, err := r.FormFile("resume"); err == nil {
		defer file.Close()
		form.Resume = file
		form.ResumeFilename = header.Filename
	}

	app, err := s.appService.CreateApplication(r.Context(), currentUser(r.Context()).ID, form)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, "application created", toApplicationResponse(app))
}

// ApplicationFormFromRequest maps the multipart text fields onto the
// service form.
func ApplicationFormFromRequest(r *http.Request) service.ApplicationForm {
	return service.ApplicationForm{
		School:           r.FormValue("school"),
		StudentID:        r.FormValue("student_id"),
		Country:          r.FormValue("country"),
		Degree:           r.FormValue("degree"),
		LeetcodeHandle:   r.FormValue("leetcode_handle"),
		CodeforcesHandle: r.FormValue("codeforces_handle"),
		EssayWhyA2SV:     r.FormValue("essay_why_a2sv"),
		EssayAboutYou:    r.FormValue("essay_about_you"),
	}
}

func (s *Server) getOwnStatus(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getOwnStatus"

	app, err := s.appService.GetOwnStatus(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "application status retrieved", toApplicationResponse(app))
}

func (s *Server) getOwnApplication(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getOwnApplication"

	id, err := uuidParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	app, err := s.appService.GetOwnApplication(r.Context(), currentUser(r.Context()).ID, id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "application retrieved", toApplicationResponse(app))
}

func (s *Server) updateOwnApplication(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.updateOwnApplication"

	id, err := uuidParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req updateApplicationRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	patch := domain.ApplicationPatch{
		School:           req.School,
		StudentID:        req.StudentID,
		Country:          req.Country,
		Degree:           req.Degree,
		LeetcodeHandle:   req.LeetcodeHandle,
		CodeforcesHandle: req.CodeforcesHandle,
		EssayWhyA2SV:     req.EssayWhyA2SV,
		EssayAboutYou:    req.EssayAboutYou,
	}

	app, err := s.appService.UpdateOwnApplication(r.Context(), currentUser(r.Context()).ID, id, patch)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "application updated", toApplicationResponse(app))
}

func (s *Server) deleteOwnApplication(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.deleteOwnApplication"

	id, err := uuidParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if err := s.appService.DeleteOwnApplication(r.Context(), currentUser(r.Context()).ID, id); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "application deleted", nil)
}

func (s *Server) submitApplication(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.submitApplication"

	id, err := uuidParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	app, err := s.appService.SubmitApplication(r.Context(), currentUser(r.Context()).ID, id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "application submitted", toApplicationResponse(app))
}
