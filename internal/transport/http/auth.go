package http

import (
	"net/http"
)

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.register"

	var req registerRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	user, err := s.authService.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, "registered successfully", toUserResponse(user))
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.login"

	var req loginRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	pair, err := s.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "logged in successfully", toTokenResponse(pair))
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.refresh"

	var req refreshRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	pair, err := s.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "token refreshed", toTokenResponse(pair))
}

func (s *Server) forgotPassword(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.forgotPassword"

	var req forgotPasswordRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if err := s.authService.ForgotPassword(r.Context(), req.Email); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "if the email is registered, a reset link has been sent", nil)
}

func (s *Server) resetPassword(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.resetPassword"

	var req resetPasswordRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if err := s.authService.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "password reset successfully", nil)
}
