package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"invare-backend/internal/apperr"
)

// pathID parses the named route variable as an id.
func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id < 1 {
		return 0, apperr.BadRequest("invalid " + name)
	}
	return int32(id), nil
}

// queryInt32 parses an optional integer query parameter, returning def when
// absent or malformed.
func queryInt32(r *http.Request, name string, def int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return def
	}
	return int32(v)
}

// queryBool parses an optional boolean query parameter. nil means absent.
func queryBool(r *http.Request, name string) *bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
