package httpx

import (
	"html/template"
	"net/http"
)

// The SPA is served as a single shell; client-side routing takes over
// after load. Guarded page routes exist so direct navigation hits the
// server-side route guard before any shell is served.
var shellTemplate = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} · DocAI Flow Studio</title>
</head>
<body>
<div id="root" data-page="{{.Page}}"></div>
</body>
</html>
`))

type shellData struct {
	Title string
	Page  string
}

// PageHandlers serves the SPA shell for browser routes.
type PageHandlers struct{}

func (h *PageHandlers) shell(title, page string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := shellTemplate.Execute(w, shellData{Title: title, Page: page}); err != nil {
			// Client likely disconnected mid-write.
			return
		}
	}
}

// Home serves the public landing page.
func (h *PageHandlers) Home() http.HandlerFunc { return h.shell("Home", "home") }

// Login serves the sign-in page.
func (h *PageHandlers) Login() http.HandlerFunc { return h.shell("Sign In", "login") }

// Register serves the sign-up page.
func (h *PageHandlers) Register() http.HandlerFunc { return h.shell("Sign Up", "register") }

// Marketplace serves the public template marketplace page.
func (h *PageHandlers) Marketplace() http.HandlerFunc {
	return h.shell("Marketplace", "marketplace")
}

// Dashboard serves the user dashboard page.
func (h *PageHandlers) Dashboard() http.HandlerFunc { return h.shell("Dashboard", "dashboard") }

// Documents serves the document builder hub page.
func (h *PageHandlers) Documents() http.HandlerFunc { return h.shell("My Documents", "documents") }

// AIWriter serves the AI writer page.
func (h *PageHandlers) AIWriter() http.HandlerFunc { return h.shell("AI Writer", "ai-writer") }

// BecomeCreator serves the creator program application page.
func (h *PageHandlers) BecomeCreator() http.HandlerFunc {
	return h.shell("Become a Creator", "become-creator")
}

// CreatorDashboard serves the creator dashboard page.
func (h *PageHandlers) CreatorDashboard() http.HandlerFunc {
	return h.shell("Creator Dashboard", "creator-dashboard")
}
