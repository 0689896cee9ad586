package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	domainauth "github.com/docai/flow-studio/internal/domain/auth"
	mockauth "github.com/docai/flow-studio/internal/mocks/auth"
	mockrepos "github.com/docai/flow-studio/internal/mocks/repos"
	"github.com/docai/flow-studio/internal/service"
)

// testEnv bundles a router with the doubles behind it for assertions.
type testEnv struct {
	Router    http.Handler
	Auth      *service.AuthService
	Sessions  *mockauth.MemorySessionStore
	Templates *mockrepos.MemoryTemplateRepo
	Documents *mockrepos.MemoryDocumentRepo
	Apps      *mockrepos.MemoryCreatorApplicationRepo
}

// newTestEnv wires a full router against in-memory doubles with the
// standard credential pairs and a near-instant AI writer.
func newTestEnv() *testEnv {
	sessions := mockauth.NewMemorySessionStore()
	templates := mockrepos.NewMemoryTemplateRepo()
	documents := mockrepos.NewMemoryDocumentRepo()
	apps := mockrepos.NewMemoryCreatorApplicationRepo()

	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Authenticator: mockauth.NewFakeCredentialDirectory(),
		Provider:      mockauth.NewMockAuthProvider(),
		Sessions:      sessions,
		Roles:         mockauth.StaticRoleMapper{AdminGroup: "admins", CreatorGroup: "creators"},
	})

	router := NewRouter(RouterServices{
		Auth:      authSvc,
		Templates: service.NewTemplateService(service.TemplateServiceOptions{Templates: templates}),
		Documents: service.NewDocumentService(service.DocumentServiceOptions{Documents: documents}),
		AIWriter:  service.NewAIWriterService(service.AIWriterServiceOptions{Delay: time.Millisecond}),
		Creator: service.NewCreatorService(service.CreatorServiceOptions{
			Applications: apps,
			Templates:    templates,
		}),
		Logger: slog.New(slog.DiscardHandler),
	})

	return &testEnv{
		Router:    router,
		Auth:      authSvc,
		Sessions:  sessions,
		Templates: templates,
		Documents: documents,
		Apps:      apps,
	}
}

// seedSession stores a session directly and returns its cookie.
func (e *testEnv) seedSession(userID string, role domainauth.Role) *http.Cookie {
	sess := domainauth.Session{
		ID:          "sess-" + userID,
		UserID:      userID,
		DisplayName: "Test " + userID,
		Email:       userID + "@docai.test",
		Role:        role,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	if err := e.Sessions.Save(context.Background(), sess); err != nil {
		panic(err)
	}
	return &http.Cookie{Name: "session_id", Value: sess.ID}
}

// do runs a request through the router and returns the recorder.
func (e *testEnv) do(r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, r)
	return w
}
