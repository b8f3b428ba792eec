package middlewarex

import (
	"errors"
	"net/http"

	"trustcms/internal/form"
	"trustcms/internal/http/problem"
	"trustcms/internal/metrics"

	"github.com/rs/zerolog/log"
)

// Normalize reads the request body, coerces the fields declared by
// contract and stores the result for the handler. It must run before the
// handler validates the request.
func Normalize(contract form.Contract, maxBytes int64, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := readBody(w, r, maxBytes)
			if err != nil {
				log.Debug().Err(err).Str("entity", contract.Entity).Msg("unreadable request body")
				if errors.Is(err, errUnsupportedMedia) {
					problem.UnsupportedMediaType(err.Error()).Write(w)
					return
				}
				if tooLarge := new(http.MaxBytesError); errors.As(err, &tooLarge) {
					problem.TooLarge(tooLarge.Limit).Write(w)
					return
				}
				problem.BadRequest(err.Error()).Write(w)
				return
			}

			normalized, counts := form.NormalizeCount(raw, contract.Fields)
			m.ObserveCoercions(contract.Entity, counts)

			next.ServeHTTP(w, r.WithContext(WithNormalizedForm(r.Context(), normalized)))
		})
	}
}
