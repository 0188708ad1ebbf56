package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/vango-dev/roster/internal/errors"
)

type errorBody struct {
	Error any `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError renders err as a JSON error body. Structured errors carry
// their own status; anything else is a 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var e *errors.Error
	if stderrors.As(err, &e) {
		writeJSON(w, e.HTTPStatus(), errorBody{Error: e})
		return
	}
	s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: map[string]string{"message": "internal server error"}})
}
