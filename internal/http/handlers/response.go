package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"trustcms/internal/form"
	"trustcms/internal/http/problem"
	"trustcms/internal/services/content"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps service errors to problem responses
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *form.ValidationError
	switch {
	case errors.As(err, &verr):
		problem.Validation(verr).Write(w)
	case errors.Is(err, content.ErrNotFound):
		problem.NotFound("record not found").Write(w)
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		problem.Internal().Write(w)
	}
}

// pathID parses the {id} route parameter
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// errNotNormalized means a mutation route was registered without the
// Normalize middleware.
var errNotNormalized = errors.New("request body was not normalized")
