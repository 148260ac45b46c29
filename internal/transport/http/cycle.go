package http

import (
	"net/http"
)

func (s *Server) listCycles(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listCycles"

	cycles, err := s.cycleService.ListCycles(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	items := make([]cycleResponse, len(cycles))
	for i := range cycles {
		items[i] = toCycleResponse(&cycles[i])
	}

	s.respond(w, http.StatusOK, "cycles retrieved", items)
}

func (s *Server) getCycle(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getCycle"

	id, err := intParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	cycle, err := s.cycleService.GetCycle(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "cycle retrieved", toCycleResponse(cycle))
}
