package http

import (
	"net/http"

	"github.com/a2sv-g68/admissions-service/internal/domain"
)

func (s *Server) adminCreateUser(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.adminCreateUser"

	var req adminCreateUserRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	user, err := s.userService.CreateUser(r.Context(), req.Email, req.Password, req.FullName, domain.Role(req.Role))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, "user created", toUserResponse(user))
}

func (s *Server) adminListUsers(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.adminListUsers"

	page, limit, offset := pagination(r)

	users, total, err := s.userService.ListUsers(r.Context(), offset, limit)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	items := make([]userResponse, len(users))
	for i := range users {
		items[i] = toUserResponse(&users[i])
	}

	s.respond(w, http.StatusOK, "users retrieved", newPaginatedResponse(items, total, page, limit))
}

func (s *Server) adminGetUser(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.adminGetUser"

	id, err := uuidParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	user, err := s.userService.GetUser(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "user retrieved", toUserResponse(user))
}

func (s *Server) adminUpdateUser(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.adminUpdateUser"

	id, err := uuidParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req adminUpdateUserRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	patch := domain.UserPatch{
		FullName: req.FullName,
		Email:    req.Email,
		IsActive: req.IsActive,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		patch.Role = &role
	}

	user, err := s.userService.UpdateUser(r.Context(), id, patch)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "user updated", toUserResponse(user))
}

func (s *Server) adminDeleteUser(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.adminDeleteUser"

	id, err := uuidParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if err := s.userService.DeleteUser(r.Context(), id); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "user deleted", nil)
}

func (s *Server) adminCreateCycle(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.adminCreateCycle"

	var req createCycleRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	cycle, err := s.cycleService.CreateCycle(r.Context(), req.Name, req.StartDate, req.EndDate, req.Description)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, "cycle created", toCycleResponse(cycle))
}

func (s *Server) adminUpdateCycle(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.adminUpdateCycle"

	id, err := intParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req updateCycleRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	cycle, err := s.cycleService.UpdateCycle(r.Context(), id, domain.CyclePatch{
		Name:        req.Name,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "cycle updated", toCycleResponse(cycle))
}

func (s *Server) adminDeleteCycle(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.adminDeleteCycle"

	id, err := intParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if err := s.cycleService.DeleteCycle(r.Context(), id); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "cycle deleted", nil)
}

func (s *Server) adminActivateCycle(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.adminActivateCycle"

	id, err := intParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	cycle, err := s.cycleService.ActivateCycle(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, "cycle activated", toCycleResponse(cycle))
}
