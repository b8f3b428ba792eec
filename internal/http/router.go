package httpx

import (
	"encoding/json"
	"net/http"

	"trustcms/internal/config"
	domain "trustcms/internal/domain/content"
	"trustcms/internal/http/handlers"
	middlewarex "trustcms/internal/http/middleware"
	"trustcms/internal/http/problem"
	"trustcms/internal/metrics"
	"trustcms/internal/services/content"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	Config         config.Cfg
	ContentService *content.Service
	Metrics        *metrics.Metrics
}

// NewRouter creates the HTTP router. Every entity collection gets the same
// set of routes; mutation routes run the Normalize stage with the entity's
// contract before the handler validates.
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		problem.NotFound("no route for " + r.URL.Path).Write(w)
	})

	// Health check (public)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":   "ok",
			"env":      deps.Config.App.Env,
			"entities": collections(),
		})
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		for _, def := range domain.Definitions() {
			normalize := middlewarex.Normalize(def.Contract, deps.Config.Form.MaxBytes, deps.Metrics)
			svc, kind := deps.ContentService, def.Kind

			r.Route("/"+def.Collection, func(r chi.Router) {
				r.Get("/", handlers.ListContent(svc, kind))
				r.With(normalize).Post("/", handlers.CreateContent(svc, kind))
				r.Get("/{id}", handlers.GetContent(svc, kind))
				r.With(normalize).Patch("/{id}", handlers.UpdateContent(svc, kind))
				r.With(normalize).Put("/{id}", handlers.UpdateContent(svc, kind))
				r.Delete("/{id}", handlers.DeleteContent(svc, kind))
			})
		}
	})

	return r
}

func collections() []string {
	defs := domain.Definitions()
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.Collection)
	}
	return out
}
