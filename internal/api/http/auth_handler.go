package http

import (
	"net/http"

	"invare-backend/internal/apperr"
	"invare-backend/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

func (h *AuthHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req registerAdminRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	user, token, err := h.authSvc.RegisterAdmin(r.Context(), req.SetupKey, service.RegisterAdminInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
		Password:    req.Password,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, loginResponse{User: user, Token: token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	user, token, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, loginResponse{User: user, Token: token})
}

func (h *AuthHandler) LoginWithCode(w http.ResponseWriter, r *http.Request) {
	var req loginCodeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	user, token, err := h.authSvc.LoginWithCode(r.Context(), req.Code)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, loginResponse{User: user, Token: token})
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	user, err := h.authSvc.GetProfile(r.Context(), actor)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, user)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	var req updateProfileRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	user, err := h.authSvc.UpdateProfile(r.Context(), actor, service.UpdateProfileInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, user)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	var req changePasswordRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.authSvc.ChangePassword(r.Context(), actor, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "password updated")
}
