package http

import (
	"encoding/json"
	"net/http"

	"invare-backend/internal/apperr"
	"invare-backend/internal/logger"
)

// envelope is the shape of every API response.
type envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Data       interface{}       `json:"data,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
	Pagination *pagination       `json:"pagination,omitempty"`
}

type pagination struct {
	Page       int32 `json:"page"`
	Limit      int32 `json:"limit"`
	Total      int32 `json:"total"`
	TotalPages int32 `json:"totalPages"`
}

func newPagination(page, limit, total int32) *pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return &pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func respondData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: true, Message: message})
}

func respondPaginated(w http.ResponseWriter, data interface{}, page, limit, total int32) {
	writeJSON(w, http.StatusOK, envelope{
		Success:    true,
		Data:       data,
		Pagination: newPagination(page, limit, total),
	})
}

// respondError maps a service error onto the wire. Typed errors carry their
// own status and message; anything else is a 500 with no internals exposed.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	if e, ok := apperr.From(err); ok {
		writeJSON(w, e.Status, envelope{Success: false, Message: e.Message, Errors: e.Fields})
		return
	}
	logger.WithRequest(requestIDFrom(r.Context())).Error("request failed",
		"method", r.Method, "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Message: "internal server error"})
}
