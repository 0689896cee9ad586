package httpx

import (
	"errors"
	"net/http"

	"github.com/docai/flow-studio/internal/domain/model"
	"github.com/docai/flow-studio/internal/service"
)

// DocumentHandlers provides HTTP handlers for builder documents. All
// routes sit behind RequireAuth; the session is always present.
type DocumentHandlers struct {
	Svc *service.DocumentService
}

// List returns the session user's documents.
// GET /api/documents?kind=&limit=&offset=.
func (h *DocumentHandlers) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: errors.New("authentication required")})
		return
	}

	var kind model.DocumentKind
	if raw := r.URL.Query().Get("kind"); raw != "" {
		parsed, valid := model.ParseDocumentKind(raw)
		if !valid {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "validation_error",
				Err:     errors.New("kind must be one of resume, invoice, letter"),
				Field:   "kind",
			})
			return
		}
		kind = parsed
	}

	docs, err := h.Svc.List(r.Context(), *sess, kind, queryInt(r, "limit", 50), queryInt(r, "offset", 0))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

// Get returns one of the session user's documents.
// GET /api/documents/{id}.
func (h *DocumentHandlers) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: errors.New("authentication required")})
		return
	}

	doc, err := h.Svc.GetByID(r.Context(), *sess, r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, doc)
}

// Create stores a new document for the session user.
// POST /api/documents.
func (h *DocumentHandlers) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: errors.New("authentication required")})
		return
	}

	var req model.CreateDocumentRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	doc, err := h.Svc.Create(r.Context(), *sess, &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, doc)
}

// Update edits one of the session user's documents.
// PATCH /api/documents/{id}.
func (h *DocumentHandlers) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: errors.New("authentication required")})
		return
	}

	var req model.UpdateDocumentRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	doc, err := h.Svc.Update(r.Context(), *sess, r.PathValue("id"), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, doc)
}

// Delete removes one of the session user's documents.
// DELETE /api/documents/{id}.
func (h *DocumentHandlers) Delete(w http.ResponseWriter, r *http.Request) {
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
