package http

import (
	"net/http"

	"invare-backend/internal/apperr"
	"invare-backend/internal/domain"
	"invare-backend/internal/service"
)

type ProjectFileHandler struct {
	fileSvc service.ProjectFileService
}

func NewProjectFileHandler(fileSvc service.ProjectFileService) *ProjectFileHandler {
	return &ProjectFileHandler{fileSvc: fileSvc}
}

func (h *ProjectFileHandler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req createProjectFileRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	var actorPtr *service.Actor
	if actor, ok := actorFrom(r.Context()); ok {
		actorPtr = &actor
	}
	file, err := h.fileSvc.CreateFile(r.Context(), actorPtr, projectID, req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, file)
}

func (h *ProjectFileHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var actorPtr *service.Actor
	if actor, ok := actorFrom(r.Context()); ok {
		actorPtr = &actor
	}
	uploadedBy := domain.FileUploadedBy(r.URL.Query().Get("uploaded_by"))
	files, err := h.fileSvc.ListFiles(r.Context(), actorPtr, projectID, uploadedBy)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, files)
}

func (h *ProjectFileHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	fileID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req updateProjectFileRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	file, err := h.fileSvc.UpdateFile(r.Context(), actor, fileID, req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, file)
}

func (h *ProjectFileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	fileID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.fileSvc.DeleteFile(r.Context(), actor, fileID); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "file deleted")
}
