package http

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/a2sv-g68/admissions-service/internal/apperrors"
)

// maxUploadBytes bounds multipart uploads (resumes, pictures).
const maxUploadBytes = 10 << 20

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	s.respond(w, http.StatusOK, "profile retrieved", toUserResponse(user))
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.updateProfile"

	var req updateProfileRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	user, err := s.userService.UpdateProfile(r.Context(), currentUser(r.Context()).ID, req.FullName)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "profile updated", toUserResponse(user))
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.changePassword"

	var req changePasswordRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	err := s.userService.ChangePassword(r.Context(), currentUser(r.Context()).ID, req.OldPassword, req.NewPassword)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "password changed", nil)
}

func (s *Server) uploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.uploadProfilePicture"

	file, header, err := s.formFile(r, "picture")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}
	defer file.Close()

	user, err := s.userService.UploadProfilePicture(r.Context(), currentUser(r.Context()).ID, header.Filename, file)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "profile picture updated", toUserResponse(user))
}

// formFile extracts a single multipart file field.
func (s *Server) formFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, fmt.Errorf("%w: expected multipart form: %w", apperrors.ErrInvalidRequest, err)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: missing file field '%s'", apperrors.ErrInvalidRequest, field)
	}

	return file, header, nil
}
