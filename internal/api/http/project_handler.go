package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"invare-backend/internal/apperr"
	"invare-backend/internal/service"
)

type ProjectHandler struct {
	projectSvc service.ProjectService
}

func NewProjectHandler(projectSvc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc}
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	var req createProjectRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	project, err := h.projectSvc.CreateProject(r.Context(), actor, req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, project)
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	page := queryInt32(r, "page", 1)
	limit := queryInt32(r, "limit", 10)
	projects, total, err := h.projectSvc.ListProjects(r.Context(), actor, service.ListProjectsInput{
		Search: r.URL.Query().Get("search"),
		UserID: queryInt32(r, "user_id", 0),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondPaginated(w, projects, page, limit, total)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	project, err := h.projectSvc.GetProject(r.Context(), actor, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, project)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var req updateProjectRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	project, err := h.projectSvc.UpdateProject(r.Context(), actor, id, req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, project)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := h.projectSvc.DeleteProject(r.Context(), actor, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "project deleted")
}

func (h *ProjectHandler) GeneratePortalCode(w http.ResponseWriter, r *http.Request) {
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
	project, err := h.projectSvc.GeneratePortalCode(r.Context(), actor, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, project)
}

func (h *ProjectHandler) GetByPortalCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	project, err := h.projectSvc.GetProjectByPortalCode(r.Context(), code)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, project)
}

func (h *ProjectHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	projectID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req createPaymentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	payment, err := h.projectSvc.CreatePayment(r.Context(), actor, projectID, req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, payment)
}

func (h *ProjectHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	paymentID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req updatePaymentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	payment, err := h.projectSvc.UpdatePayment(r.Context(), actor, paymentID, req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, payment)
}

func (h *ProjectHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	paymentID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.projectSvc.DeletePayment(r.Context(), actor, paymentID); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "payment deleted")
}

// CreateModification runs behind optional authentication: clients on the
// public portal submit change requests without a token.
func (h *ProjectHandler) CreateModification(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req createModificationRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	var actorPtr *service.Actor
	if actor, ok := actorFrom(r.Context()); ok {
		actorPtr = &actor
	}
	mod, err := h.projectSvc.CreateModification(r.Context(), actorPtr, projectID, req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, mod)
}

func (h *ProjectHandler) UpdateModification(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	modID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req updateModificationRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	mod, err := h.projectSvc.UpdateModification(r.Context(), actor, modID, req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, mod)
}

func (h *ProjectHandler) DeleteModification(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	modID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.projectSvc.DeleteModification(r.Context(), actor, modID); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "modification deleted")
}
