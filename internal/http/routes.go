package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/docai/flow-studio/internal/domain/auth"
	"github.com/docai/flow-studio/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth      AuthServiceInterface
	Templates *service.TemplateService
	Documents *service.DocumentService
	AIWriter  *service.AIWriterService
	Creator   *service.CreatorService

	CookieDomain    string
	OIDCEnabled     bool
	OIDCRedirectURL string
	Logger          *slog.Logger
}

// NewRouter creates and configures the HTTP router. Route guards wrap
// individual routes, so each request re-evaluates the session; nothing
// is cached across navigations.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:             services.Auth,
		CookieDomain:    services.CookieDomain,
		OIDCEnabled:     services.OIDCEnabled,
		OIDCRedirectURL: services.OIDCRedirectURL,
		Logger:          services.Logger,
	}
	templateHandlers := &TemplateHandlers{Svc: services.Templates}
	documentHandlers := &DocumentHandlers{Svc: services.Documents}
	aiWriterHandlers := &AIWriterHandlers{Svc: services.AIWriter}
	creatorHandlers := &CreatorHandlers{Svc: services.Creator}

	requireAuth := RequireAuth(services.Auth)
	requireCreator := RequireRole(services.Auth, domainauth.RoleCreator, domainauth.RoleAdmin)
	requireAdmin := RequireRole(services.Auth, domainauth.RoleAdmin)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	// Auth
	mux.HandleFunc("POST /api/auth/login", authHandlers.PasswordLogin)
	mux.HandleFunc("POST /api/auth/register", authHandlers.Register)
	mux.HandleFunc("GET /auth/login", authHandlers.Login)
	mux.HandleFunc("GET /auth/callback", authHandlers.Callback)
	mux.HandleFunc("POST /auth/logout", authHandlers.Logout)
	mux.HandleFunc("GET /auth/status", authHandlers.Status)

	// Marketplace: browsing is public, publishing is creator-gated,
	// downloads need a signed-in user.
	mux.HandleFunc("GET /api/templates", templateHandlers.List)
	mux.HandleFunc("GET /api/templates/{id}", templateHandlers.Get)
	mux.Handle("POST /api/templates", requireCreator(http.HandlerFunc(templateHandlers.Create)))
	mux.Handle("PATCH /api/templates/{id}", requireCreator(http.HandlerFunc(templateHandlers.Update)))
	mux.Handle("DELETE /api/templates/{id}", requireCreator(http.HandlerFunc(templateHandlers.Delete)))
	mux.Handle("POST /api/templates/{id}/download", requireAuth(http.HandlerFunc(templateHandlers.Download)))

	// Documents
	mux.Handle("GET /api/documents", requireAuth(http.HandlerFunc(documentHandlers.List)))
	mux.Handle("POST /api/documents", requireAuth(http.HandlerFunc(documentHandlers.Create)))
	mux.Handle("GET /api/documents/{id}", requireAuth(http.HandlerFunc(documentHandlers.Get)))
	mux.Handle("PATCH /api/documents/{id}", requireAuth(http.HandlerFunc(documentHandlers.Update)))
	mux.Handle("DELETE /api/documents/{id}", requireAuth(http.HandlerFunc(documentHandlers.Delete)))

	// AI writer
	mux.Handle("POST /api/ai-writer/generate", requireAuth(http.HandlerFunc(aiWriterHandlers.Generate)))
	mux.Handle("GET /api/ai-writer/types", requireAuth(http.HandlerFunc(aiWriterHandlers.Types)))

	// Creator program
	mux.Handle("POST /api/creator/applications", requireAuth(http.HandlerFunc(creatorHandlers.Apply)))
	mux.Handle("GET /api/creator/applications/mine", requireAuth(http.HandlerFunc(creatorHandlers.MyApplication)))
	mux.Handle("GET /api/creator/applications", requireAdmin(http.HandlerFunc(creatorHandlers.ListApplications)))
	mux.Handle("POST /api/creator/applications/{id}/review", requireAdmin(http.HandlerFunc(creatorHandlers.Review)))
	mux.Handle("GET /api/creator/overview", requireCreator(http.HandlerFunc(creatorHandlers.Overview)))

	// Browser pages. Protected pages sit behind the same guards as the
	// API so direct navigation redirects before any shell is served.
	pages := &PageHandlers{}
	mux.Handle("GET /{$}", pages.Home())
	mux.Handle("GET /login", pages.Login())
	mux.Handle("GET /register", pages.Register())
	mux.Handle("GET /marketplace", pages.Marketplace())
	mux.Handle("GET /dashboard", requireAuth(pages.Dashboard()))
	mux.Handle("GET /documents", requireAuth(pages.Documents()))
	mux.Handle("GET /ai-writer", requireAuth(pages.AIWriter()))
	mux.Handle("GET /become-creator", requireAuth(pages.BecomeCreator()))
	mux.Handle("GET /creator-dashboard", requireCreator(pages.CreatorDashboard()))

	return mux
}
