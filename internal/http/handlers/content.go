package handlers

import (
	"net/http"

	domain "trustcms/internal/domain/content"
	"trustcms/internal/form"
	middlewarex "trustcms/internal/http/middleware"
	"trustcms/internal/http/problem"
	"trustcms/internal/services/content"
)

// ListContent handles list requests using the pagination contract
func ListContent(svc *content.Service, kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := form.ParsePagination(r.URL.Query())
		if err != nil {
			writeError(w, r, err)
			return
		}

		resp, err := svc.List(r.Context(), kind, q)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// CreateContent validates the normalized body and stores a new record
func CreateContent(svc *content.Service, kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := middlewarex.NormalizedForm(r.Context())
		if !ok {
			writeError(w, r, errNotNormalized)
			return
		}

		item, err := svc.Create(r.Context(), kind, in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, item)
	}
}

// GetContent returns one record
func GetContent(svc *content.Service, kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			problem.BadRequest("invalid id").Write(w)
			return
		}

		item, err := svc.Get(r.Context(), kind, id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

// UpdateContent applies the fields present in the normalized body
func UpdateContent(svc *content.Service, kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			problem.BadRequest("invalid id").Write(w)
			return
		}
		in, ok := middlewarex.NormalizedForm(r.Context())
		if !ok {
			writeError(w, r, errNotNormalized)
			return
		}

		item, err := svc.Update(r.Context(), kind, id, in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

// DeleteContent removes one record
func DeleteContent(svc *content.Service, kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			problem.BadRequest("invalid id").Write(w)
			return
		}

		if err := svc.Delete(r.Context(), kind, id); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
