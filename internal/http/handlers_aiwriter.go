package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/docai/flow-studio/internal/service"
)

// AIWriterHandlers provides HTTP handlers for the AI writer.
type AIWriterHandlers struct {
	Svc *service.AIWriterService
}

type generateRequest struct {
	Prompt       string `json:"prompt"`
	DocumentType string `json:"document_type"`
}

// Generate produces a draft for the requested document type.
// POST /api/ai-writer/generate.
func (h *AIWriterHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Generate(r.Context(), service.GenerateInput{
		Prompt:       req.Prompt,
		DocumentType: req.DocumentType,
	})
	if err != nil {
		// A canceled request has no client left to answer.
		if errors.Is(err, context.Canceled) {
			return
		}
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"document_type": result.DocumentType,
		"content":       result.Content,
	})
}

// Types lists the supported document types for the generator menu.
// GET /api/ai-writer/types.
func (h *AIWriterHandlers) Types(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"document_types": service.DocumentTypes()})
}
