// package http implements the HTTP transport layer for the service.
// It handles incoming requests, decodes them, calls the appropriate service methods,
// and encodes the responses in a uniform envelope.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/a2sv-g68/admissions-service/internal/apperrors"
	"github.com/a2sv-g68/admissions-service/internal/auth"
	"github.com/a2sv-g68/admissions-service/internal/service"
	"github.com/a2sv-g68/admissions-service/internal/validation"
	"github.com/a2sv-g68/admissions-service/pkg/logger/sl"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the dependencies for the HTTP server, including the logger and service interfaces.
type Server struct {
	log          *slog.Logger
	tokens       *auth.TokenManager
	authService  service.AuthService
	userService  service.UserService
	cycleService service.CycleService
	appService   service.ApplicationService
	revService   service.ReviewService
	staticPrefix string
	staticDir    string
}

// NewServer creates a new instance of the HTTP server.
func NewServer(
	log *slog.Logger,
	tokens *auth.TokenManager,
	as service.AuthService,
	us service.UserService,
	cs service.CycleService,
	aps service.ApplicationService,
	rs service.ReviewService,
	staticPrefix, staticDir string,
) *Server {
	return &Server{
		log:          log,
		tokens:       tokens,
		authService:  as,
		userService:  us,
		cycleService: cs,
		appService:   aps,
		revService:   rs,
		staticPrefix: staticPrefix,
		staticDir:    staticDir,
	}
}

// Routes sets up the router with all middleware and API endpoints.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)

	mux.Handle("/metrics", promhttp.Handler())

	if s.staticDir != "" {
		fileServer := http.FileServer(http.Dir(s.staticDir))
		mux.Handle(s.staticPrefix+"/*", http.StripPrefix(s.staticPrefix, fileServer))
	}

	mux.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.register)
			r.Post("/token", s.login)
			r.Post("/token/refresh", s.refresh)
			r.Post("/forgot-password", s.forgotPassword)
			r.Post("/reset-password", s.resetPassword)
		})

		r.Get("/cycles", s.listCycles)
		r.Get("/cycles/{id}", s.getCycle)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", s.getProfile)
				r.Patch("/", s.updateProfile)
				r.Post("/password", s.changePassword)
				r.Post("/picture", s.uploadProfilePicture)
			})

			r.Route("/applications", func(r chi.Router) {
				r.Use(s.requireRole(roleApplicant))

				r.Post("/", s.createApplication)
				r.Get("/my-status", s.getOwnStatus)
				r.Get("/{id}", s.getOwnApplication)
				r.Patch("/{id}", s.updateOwnApplication)
				r.Put("/{id}", s.updateOwnApplication)
				r.Delete("/{id}", s.deleteOwnApplication)
				r.Post("/{id}/submit", s.submitApplication)
			})

			r.Route("/manager", func(r chi.Router) {
				r.Use(s.requireRole(roleManager))

				r.Get("/applications", s.listApplications)
				r.Get("/applications/available-reviewers", s.availableReviewers)
				r.Get("/applications/{id}", s.getApplicationWithReview)
				r.Patch("/applications/{id}/assign", s.assignReviewer)
				r.Patch("/applications/{id}/decide", s.decideApplication)
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Use(s.requireRole(roleReviewer))

				r.Get("/assigned", s.listAssigned)
				r.Get("/{id}", s.getAssigned)
				r.Put("/{id}", s.saveReview)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(s.requireRole(roleAdmin))

				r.Post("/users", s.adminCreateUser)
				r.Get("/users", s.adminListUsers)
				r.Get("/users/{id}", s.adminGetUser)
				r.Patch("/users/{id}", s.adminUpdateUser)
				r.Delete("/users/{id}", s.adminDeleteUser)

				r.Post("/cycles", s.adminCreateCycle)
				r.Patch("/cycles/{id}", s.adminUpdateCycle)
				r.Delete("/cycles/{id}", s.adminDeleteCycle)
				r.Patch("/cycles/{id}/activate", s.adminActivateCycle)
			})
		})
	})

	return mux
}

// respond writes the success envelope shared by every endpoint.
func (s *Server) respond(w http.ResponseWriter, code int, message string, data interface{}) {
	s.writeJSON(w, code, successResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// respondError writes the error envelope. details is optional and
// carries per-field validation messages.
func (s *Server) respondError(w http.ResponseWriter, code int, errorCode, message string, details []string) {
	s.writeJSON(w, code, errorResponse{
		Success:   false,
		Message:   message,
		ErrorCode: errorCode,
		Details:   details,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode response", sl.Err(err))
	}
}

// decodeAndValidate is a helper that deserializes a JSON request body into a struct
// and then runs validation checks on it.
func (s *Server) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	if err := validation.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}

func (s *Server) decode(body io.ReadCloser, v interface{}) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

// handleServiceError provides centralized error handling for all HTTP handlers.
// It logs the internal error and maps it to a user-friendly HTTP response.
func (s *Server) handleServiceError(w http.ResponseWriter, _ *http.Request, op string, err error) {
	log := s.log.With(slog.String("op", op))
	log.Error("service error occurred", sl.Err(err))

	var validationErr *validation.ValidationError

	switch {
	case errors.As(err, &validationErr):
		s.respondError(w, http.StatusUnprocessableEntity, codeValidation, "validation failed", validationErr.Errors)
	case errors.Is(err, apperrors.ErrValidation):
		s.respondError(w, http.StatusUnprocessableEntity, codeValidation, err.Error(), nil)
	case errors.Is(err, apperrors.ErrInvalidRequest):
		s.respondError(w, http.StatusBadRequest, codeInvalidRequest, "invalid request body", nil)
	case errors.Is(err, apperrors.ErrNotFound):
		s.respondError(w, http.StatusNotFound, codeNotFound, "resource not found", nil)
	case errors.Is(err, apperrors.ErrNoActiveCycle):
		s.respondError(w, http.StatusUnprocessableEntity, codeNoActiveCycle, apperrors.ErrNoActiveCycle.Error(), nil)
	case errors.Is(err, apperrors.ErrBadCredentials):
		s.respondError(w, http.StatusUnauthorized, codeBadCredentials, apperrors.ErrBadCredentials.Error(), nil)
	case errors.Is(err, apperrors.ErrExpiredToken):
		s.respondError(w, http.StatusUnauthorized, codeExpiredToken, apperrors.ErrExpiredToken.Error(), nil)
	case errors.Is(err, apperrors.ErrWrongTokenKind),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrUnauthorized):
		s.respondError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required", nil)
	case errors.Is(err, apperrors.ErrAccountInactive):
		s.respondError(w, http.StatusForbidden, codeAccountInactive, apperrors.ErrAccountInactive.Error(), nil)
	case errors.Is(err, apperrors.ErrNotOwner),
		errors.Is(err, apperrors.ErrNotAssigned),
		errors.Is(err, apperrors.ErrForbidden):
		s.respondError(w, http.StatusForbidden, codeForbidden, "access forbidden", nil)
	case errors.Is(err, apperrors.ErrAlreadyExists):
		s.respondError(w, http.StatusConflict, codeAlreadyExists, err.Error(), nil)
	case errors.Is(err, apperrors.ErrConflict):
		s.respondError(w, http.StatusConflict, codeConflict, err.Error(), nil)
	default:
		s.respondError(w, http.StatusInternalServerError, codeInternal, "internal server error", nil)
	}
}
