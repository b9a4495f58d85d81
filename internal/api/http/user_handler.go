package http

import (
	"net/http"

	"invare-backend/internal/apperr"
	"invare-backend/internal/domain"
	"invare-backend/internal/service"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	var req createUserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	user, err := h.userSvc.CreateUser(r.Context(), actor, service.CreateUserInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
		Role:        domain.UserRole(req.Role),
		Password:    req.Password,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	page := queryInt32(r, "page", 1)
	limit := queryInt32(r, "limit", 10)
	search := r.URL.Query().Get("search")
	role := domain.UserRole(r.URL.Query().Get("role"))

	users, total, err := h.userSvc.ListUsers(r.Context(), actor, search, role, page, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondPaginated(w, users, page, limit, total)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	user, err := h.userSvc.GetUser(r.Context(), actor, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req updateUserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	in := service.UpdateUserInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
	}
	if req.Role != nil {
		role := domain.UserRole(*req.Role)
		in.Role = &role
	}
	user, err := h.userSvc.UpdateUser(r.Context(), actor, id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.userSvc.DeleteUser(r.Context(), actor, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "user deleted")
}

func (h *UserHandler) RegenerateLoginCode(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	user, err := h.userSvc.RegenerateLoginCode(r.Context(), actor, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, user)
}
