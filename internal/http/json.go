package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/docai/flow-studio/internal/data"
	apperrors "github.com/docai/flow-studio/internal/errors"
	"github.com/docai/flow-studio/internal/ports"
)

// DecodeJSON decodes JSON from the request body into the destination and handles errors.
// Returns true if successful, false if there was an error (error response already written).
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
		return false
	}

	return true
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// ErrorParams groups parameters for WriteError to adhere to the ≤3 params guideline.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
	Field   string
}

// WriteError writes a JSON error response using ErrorParams.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	body := map[string]string{"error": p.ErrCode, "message": p.Err.Error()}
	if p.Field != "" {
		body["field"] = p.Field
	}
	WriteJSON(w, p.Code, body)
}

// WriteServiceError translates service/data layer errors into JSON
// responses: sentinels and AppError codes map onto HTTP statuses, with
// the validation field carried through when one is attributed.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ports.ErrInvalidCredentials):
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "invalid_credentials", Err: err})
		return
	case errors.Is(err, data.ErrTemplateNotFound),
		errors.Is(err, data.ErrDocumentNotFound),
		errors.Is(err, data.ErrApplicationNotFound):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
		return
	case errors.Is(err, data.ErrTemplateNameExists),
		errors.Is(err, data.ErrApplicationExists):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "conflict", Err: err})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case apperrors.ErrCodeValidation:
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_error", Err: appErr, Field: appErr.Field})
		case apperrors.ErrCodeNotFound:
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: appErr})
		case apperrors.ErrCodeConflict, apperrors.ErrCodeForeignKey:
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "conflict", Err: appErr})
		case apperrors.ErrCodeTimeout:
			WriteError(w, ErrorParams{Code: http.StatusGatewayTimeout, ErrCode: "timeout", Err: appErr})
		case apperrors.ErrCodeCanceled:
			WriteError(w, ErrorParams{Code: http.StatusServiceUnavailable, ErrCode: "canceled", Err: appErr})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal_error", Err: errors.New("internal server error")})
		}
		return
	}

	WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal_error", Err: errors.New("internal server error")})
}
