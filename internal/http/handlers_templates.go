package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/docai/flow-studio/internal/domain/model"
	"github.com/docai/flow-studio/internal/service"
)

// TemplateHandlers provides HTTP handlers for the template marketplace.
type TemplateHandlers struct {
	Svc *service.TemplateService
}

// List handles marketplace browsing with search, category filter, and paging.
// GET /api/templates?q=&category=&creator_id=&limit=&offset=.
func (h *TemplateHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts := model.TemplatesListOptions{
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}
	if q := r.URL.Query().Get("q"); q != "" {
		opts.Q = &q
	}
	if raw := r.URL.Query().Get("category"); raw != "" {
		category, ok := model.ParseTemplateCategory(raw)
		if !ok {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "validation_error",
				Err:     errors.New("unsupported category"),
				Field:   "category",
			})
			return
		}
		opts.Category = &category
	}
	if creatorID := r.URL.Query().Get("creator_id"); creatorID != "" {
		opts.CreatorID = &creatorID
	}

	page, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"templates": page.Items,
		"total":     page.Total,
	})
}

// Get returns a single listing.
// GET /api/templates/{id}.
func (h *TemplateHandlers) Get(w http.ResponseWriter, r *http.Request) {
	tmpl, err := h.Svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, tmpl)
}

// Create publishes a new listing owned by the session creator.
// POST /api/templates.
func (h *TemplateHandlers) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: errors.New("authentication required")})
		return
	}

	var req model.CreateTemplateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	tmpl, err := h.Svc.Create(r.Context(), *sess, &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, tmpl)
}

// Update edits a listing the session creator owns.
// PATCH /api/templates/{id}.
func (h *TemplateHandlers) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: errors.New("authentication required")})
		return
	}

	var req model.UpdateTemplateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	tmpl, err := h.Svc.Update(r.Context(), *sess, r.PathValue("id"), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, tmpl)
}

// Delete removes a listing the session creator owns.
// DELETE /api/templates/{id}.
func (h *TemplateHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: errors.New("authentication required")})
		return
	}

	if err := h.Svc.Delete(r.Context(), *sess, r.PathValue("id")); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Download records a download and returns the listing.
// POST /api/templates/{id}/download.
func (h *TemplateHandlers) Download(w http.ResponseWriter, r *http.Request) {
	tmpl, err := h.Svc.Download(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, tmpl)
}

// queryInt parses an integer query parameter with a fallback default.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
