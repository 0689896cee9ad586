package httpx

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/docai/flow-studio/internal/domain/auth"
)

func browserGet(path string, cookies ...*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	r.Header.Set("Accept", "text/html,application/xhtml+xml")
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func apiGet(path string, cookies ...*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	r.Header.Set("Accept", "application/json")
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestRequireAuth_BrowserRedirectsToLogin(t *testing.T) {
	env := newTestEnv()

	w := env.do(browserGet("/dashboard"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fdashboard", w.Header().Get("Location"))
}

func TestRequireAuth_APIGets401(t *testing.T) {
	env := newTestEnv()

	w := env.do(apiGet("/api/documents"))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication_required")
}

func TestRequireAuth_CookieWithoutStoreRecord(t *testing.T) {
	env := newTestEnv()

	// A cookie alone is not authentication; the store must resolve it.
	w := env.do(browserGet("/dashboard", &http.Cookie{Name: "session_id", Value: "forged"}))
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestRequireAuth_ValidSessionPasses(t *testing.T) {
	env := newTestEnv()
	cookie := env.seedSession("user-1", domainauth.RoleUser)

	w := env.do(browserGet("/dashboard", cookie))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_MismatchGoesHome(t *testing.T) {
	env := newTestEnv()
	cookie := env.seedSession("user-1", domainauth.RoleUser)

	// Authenticated but wrong role: home, not the login page.
	w := env.do(browserGet("/creator-dashboard", cookie))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRequireRole_MismatchAPIGets403(t *testing.T) {
	env := newTestEnv()
	cookie := env.seedSession("user-1", domainauth.RoleUser)

	w := env.do(apiGet("/api/creator/overview", cookie))
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient_permissions")
}

func TestRequireRole_CreatorPasses(t *testing.T) {
	env := newTestEnv()
	cookie := env.seedSession("creator-1", domainauth.RoleCreator)

	w := env.do(browserGet("/creator-dashboard", cookie))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_AdminAllowedOnCreatorRoutes(t *testing.T) {
	env := newTestEnv()
	cookie := env.seedSession("admin-1", domainauth.RoleAdmin)

	w := env.do(browserGet("/creator-dashboard", cookie))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_UnauthenticatedRedirectsToLogin(t *testing.T) {
	env := newTestEnv()

	w := env.do(browserGet("/creator-dashboard"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fcreator-dashboard", w.Header().Get("Location"))
}

func TestGuard_NotCachedAcrossNavigations(t *testing.T) {
	env := newTestEnv()
	cookie := env.seedSession("user-1", domainauth.RoleUser)

	w := env.do(browserGet("/dashboard", cookie))
	require.Equal(t, http.StatusOK, w.Code)

	// Session removed server-side: the very next navigation is gated again.
	require.NoError(t, env.Sessions.Delete(t.Context(), cookie.Value))
	w = env.do(browserGet("/dashboard", cookie))
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	env := newTestEnv()
	cookie := env.seedSession("user-1", domainauth.RoleUser)

	var sawSession bool
	handler := OptionalAuth(env.Auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawSession = GetUserSessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, browserGet("/", cookie))
	assert.True(t, sawSession)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, browserGet("/"))
	assert.False(t, sawSession)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecoverMiddleware(t *testing.T) {
	handler := Recover(slog.New(slog.DiscardHandler))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSafeRedirectPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/dashboard", "/dashboard"},
		{"/documents?kind=resume", "/documents?kind=resume"},
		{"", "/"},
		{"https://evil.example.com/phish", "/"},
		{"//evil.example.com", "/"},
		{"dashboard", "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, safeRedirectPath(tt.in), tt.in)
	}
}

func TestIsBrowserRequest(t *testing.T) {
	api := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	api.Header.Set("Accept", "text/html")
	assert.False(t, IsBrowserRequest(api))

	page := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	page.Header.Set("Accept", "text/html")
	assert.True(t, IsBrowserRequest(page))

	noAccept := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	assert.True(t, IsBrowserRequest(noAccept))

	jsonReq := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	jsonReq.Header.Set("Accept", "application/json")
	assert.False(t, IsBrowserRequest(jsonReq))
}
