package http

import (
	"net/http"

	"invare-backend/internal/apperr"
	"invare-backend/internal/service"
)

type NotificationHandler struct {
	noteSvc service.NotificationService
}

func NewNotificationHandler(noteSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{noteSvc: noteSvc}
}

func (h *NotificationHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	var req pushTokenRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.noteSvc.Subscribe(r.Context(), actor, req.FCMToken); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "subscribed")
}

func (h *NotificationHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req pushTokenRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.noteSvc.Unsubscribe(r.Context(), req.FCMToken); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "unsubscribed")
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	logs, err := h.noteSvc.ListLogs(r.Context(), actor, queryBool(r, "read"), queryInt32(r, "limit", 50))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, logs)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
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
	if err := h.noteSvc.MarkRead(r.Context(), actor, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "notification marked read")
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	if err := h.noteSvc.MarkAllRead(r.Context(), actor); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "all notifications marked read")
}

func (h *NotificationHandler) Clear(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		respondError(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	if err := h.noteSvc.ClearLogs(r.Context(), actor); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "notifications cleared")
}
