package httpx

import (
	"errors"
	"net/http"

	"github.com/docai/flow-studio/internal/domain/model"
	"github.com/docai/flow-studio/internal/service"
)

// CreatorHandlers provides HTTP handlers for the creator program.
type CreatorHandlers struct {
	Svc *service.CreatorService
}

// Apply files a creator program application for the session user.
// POST /api/creator/applications.
func (h *CreatorHandlers) Apply(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: errors.New("authentication required")})
		return
	}

	var req model.SubmitCreatorApplicationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	app, err := h.Svc.SubmitApplication(r.Context(), *sess, &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, app)
}

// MyApplication returns the session user's application.
// GET /api/creator/applications/mine.
func (h *CreatorHandlers) MyApplication(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: errors.New("authentication required")})
		return
	}

	app, err := h.Svc.MyApplication(r.Context(), *sess)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, app)
}

// ListApplications returns the admin review queue.
// GET /api/creator/applications?status=&limit=&offset=.
func (h *CreatorHandlers) ListApplications(w http.ResponseWriter, r *http.Request) {
	status := model.CreatorApplicationStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = model.CreatorApplicationPending
	}

	apps, err := h.Svc.ListApplications(r.Context(), status, queryInt(r, "limit", 50), queryInt(r, "offset", 0))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"applications": apps})
}

type reviewRequest struct {
	Approve bool `json:"approve"`
}

// Review moves an application to a terminal state.
// POST /api/creator/applications/{id}/review.
func (h *CreatorHandlers) Review(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	app, err := h.Svc.ReviewApplication(r.Context(), r.PathValue("id"), req.Approve)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, app)
}

// Overview returns the creator dashboard payload.
// GET /api/creator/overview.
func (h *CreatorHandlers) Overview(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: errors.New("authentication required")})
		return
	}

	overview, err := h.Svc.Overview(r.Context(), *sess)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, overview)
}
