package httpx

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/docai/flow-studio/internal/domain/auth"
)

func TestAIWriterGenerate(t *testing.T) {
	env := newTestEnv()
	cookie := env.seedSession("user-1", domainauth.RoleUser)

	w := env.do(postJSONWith("/api/ai-writer/generate",
		`{"prompt":"A cover letter for a product role","document_type":"cover-letter"}`, cookie))
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "cover-letter", body["document_type"])
	assert.True(t, strings.HasPrefix(body["content"].(string), "Dear Hiring Manager,"))
}

func TestAIWriterGenerate_RequiresAuth(t *testing.T) {
	env := newTestEnv()

	w := env.do(postJSON("/api/ai-writer/generate",
		`{"prompt":"anything","document_type":"email"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAIWriterGenerate_ValidationFields(t *testing.T) {
	env := newTestEnv()
	cookie := env.seedSession("user-1", domainauth.RoleUser)

	w := env.do(postJSONWith("/api/ai-writer/generate",
		`{"prompt":"","document_type":"email"}`, cookie))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "prompt", decodeBody(t, w)["field"])

	w = env.do(postJSONWith("/api/ai-writer/generate",
		`{"prompt":"hello","document_type":"novel"}`, cookie))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "document_type", decodeBody(t, w)["field"])
}

func TestAIWriterTypes(t *testing.T) {
	env := newTestEnv()
	cookie := env.seedSession("user-1", domainauth.RoleUser)

	w := env.do(apiGet("/api/ai-writer/types", cookie))
	require.Equal(t, http.StatusOK, w.Code)

	types := decodeBody(t, w)["document_types"].([]any)
	assert.Len(t, types, 6)
	assert.Contains(t, types, "cover-letter")
}
