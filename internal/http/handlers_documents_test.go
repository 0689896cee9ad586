package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/docai/flow-studio/internal/domain/auth"
	"github.com/docai/flow-studio/internal/domain/model"
)

func seedDocument(t *testing.T, env *testEnv, userID, title string, kind model.DocumentKind) *model.Document {
	t.Helper()
	doc, err := env.Documents.Create(context.Background(), &model.CreateDocumentRequest{
		UserID: userID,
		Title:  title,
		Kind:   kind,
	})
	require.NoError(t, err)
	return doc
}

func TestDocumentsCreate(t *testing.T) {
	env := newTestEnv()
	cookie := env.seedSession("user-1", domainauth.RoleUser)

	w := env.do(postJSONWith("/api/documents",
		`{"title":"My Resume","kind":"resume","content":{"sections":[]}}`, cookie))
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "user-1", body["user_id"])
	assert.Equal(t, "resume", body["kind"])
}

func TestDocumentsCreate_ValidationError(t *testing.T) {
	env := newTestEnv()
	cookie := env.seedSession("user-1", domainauth.RoleUser)

	w := env.do(postJSONWith("/api/documents", `{"title":"","kind":"resume"}`, cookie))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentsList_OwnerScopedAndKindFiltered(t *testing.T) {
	env := newTestEnv()
	seedDocument(t, env, "user-1", "My Resume", model.DocumentKindResume)
	seedDocument(t, env, "user-1", "Q1 Invoice", model.DocumentKindInvoice)
	seedDocument(t, env, "user-2", "Their Resume", model.DocumentKindResume)

	cookie := env.seedSession("user-1", domainauth.RoleUser)

	w := env.do(apiGet("/api/documents", cookie))
	require.Equal(t, http.StatusOK, w.Code)
	docs := decodeBody(t, w)["documents"].([]any)
	assert.Len(t, docs, 2)

	w = env.do(apiGet("/api/documents?kind=invoice", cookie))
	require.Equal(t, http.StatusOK, w.Code)
	docs = decodeBody(t, w)["documents"].([]any)
	assert.Len(t, docs, 1)

	w = env.do(apiGet("/api/documents?kind=spreadsheet", cookie))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "kind", decodeBody(t, w)["field"])
}

func TestDocumentsGet_OtherUsersDocumentIsAbsent(t *testing.T) {
	env := newTestEnv()
	doc := seedDocument(t, env, "user-1", "My Resume", model.DocumentKindResume)

	owner := env.seedSession("user-1", domainauth.RoleUser)
	w := env.do(apiGet("/api/documents/"+doc.ID, owner))
	require.Equal(t, http.StatusOK, w.Code)

	stranger := env.seedSession("user-2", domainauth.RoleUser)
	w = env.do(apiGet("/api/documents/"+doc.ID, stranger))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocumentsUpdate(t *testing.T) {
	env := newTestEnv()
	doc := seedDocument(t, env, "user-1", "My Resume", model.DocumentKindResume)
	cookie := env.seedSession("user-1", domainauth.RoleUser)

	r := httptest.NewRequest(http.MethodPatch, "/api/documents/"+doc.ID,
		strings.NewReader(`{"title":"Senior Resume","content":{"sections":["summary"]}}`))
	r.Header.Set("Accept", "application/json")
	r.AddCookie(cookie)
	w := env.do(r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Senior Resume", decodeBody(t, w)["title"])
}

func TestDocumentsDelete(t *testing.T) {
	env := newTestEnv()
	doc := seedDocument(t, env, "user-1", "My Resume", model.DocumentKindResume)
	cookie := env.seedSession("user-1", domainauth.RoleUser)

	r := httptest.NewRequest(http.MethodDelete, "/api/documents/"+doc.ID, nil)
	r.Header.Set("Accept", "application/json")
	r.AddCookie(cookie)
	w := env.do(r)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(apiGet("/api/documents/"+doc.ID, cookie))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
