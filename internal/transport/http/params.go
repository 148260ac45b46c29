package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/a2sv-g68/admissions-service/internal/apperrors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: '%s' must be a uuid", apperrors.ErrInvalidRequest, name)
	}

	return id, nil
}

func intParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, fmt.Errorf("%w: '%s' must be an integer", apperrors.ErrInvalidRequest, name)
	}

	return id, nil
}

// pagination reads ?page and ?limit, clamping them to sane bounds.
// Pages are 1-based.
func pagination(r *http.Request) (page, limit, offset int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return page, limit, (page - 1) * limit
}
