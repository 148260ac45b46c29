package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/a2sv-g68/admissions-service/internal/apperrors"
	"github.com/a2sv-g68/admissions-service/internal/auth"
	"github.com/a2sv-g68/admissions-service/internal/domain"
	"github.com/google/uuid"
)

type contextKey string

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = contextKey("requestID")
	currentUserKey  = contextKey("currentUser")
)

const (
	roleApplicant = domain.RoleApplicant
	roleReviewer  = domain.RoleReviewer
	roleManager   = domain.RoleManager
	roleAdmin     = domain.RoleAdmin
)

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getRequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey).(string); ok {
		return reqID
	}

	return ""
}

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := getRequestID(r.Context())

		log := s.log.With(
			slog.String("request_id", requestID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("user_agent", r.UserAgent()),
		)
		log.Info("request started")

		t1 := time.Now()

		next.ServeHTTP(w, r)

		log.Info("request completed",
			slog.String("duration", time.Since(t1).String()),
		)
	})
}

// authenticate verifies the bearer token and loads the current account
// from the store. Loading live state means a deactivation takes effect
// immediately, not at token expiry.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.respondError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required", nil)
			return
		}

		userID, err := s.tokens.Verify(token, auth.KindAccess)
		if err != nil {
			if errors.Is(err, apperrors.ErrExpiredToken) {
				s.respondError(w, http.StatusUnauthorized, codeExpiredToken, apperrors.ErrExpiredToken.Error(), nil)
				return
			}

			s.respondError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required", nil)
			return
		}

		user, err := s.userService.GetProfile(r.Context(), userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				s.respondError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required", nil)
				return
			}

			s.respondError(w, http.StatusInternalServerError, codeInternal, "internal server error", nil)
			return
		}

		if !user.IsActive {
			s.respondError(w, http.StatusForbidden, codeAccountInactive, apperrors.ErrAccountInactive.Error(), nil)
			return
		}

		ctx := context.WithValue(r.Context(), currentUserKey, user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole gates a route subtree to one role. Admins pass the
// manager gate as well, so a small team does not need duplicate
// accounts.
func (s *Server) requireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := currentUser(r.Context())
			if user == nil {
				s.respondError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required", nil)
				return
			}

			allowed := user.Role == role || (role == domain.RoleManager && user.Role == domain.RoleAdmin)
			if !allowed {
				s.respondError(w, http.StatusForbidden, codeForbidden, "access forbidden", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func currentUser(ctx context.Context) *domain.User {
	if user, ok := ctx.Value(currentUserKey).(*domain.User); ok {
		return user
	}

	return nil
}
