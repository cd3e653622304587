package http

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"recruitment-tracker/internal/config"
	"recruitment-tracker/internal/security"
	"recruitment-tracker/internal/service"
)

type RouterDeps struct {
	AuthService        service.AuthService
	RecruitmentService service.RecruitmentService
	Guard              *security.AccessGuard
	Store              Pinger
	AllowedOrigins     []string
}

type route struct {
	method  string
	path    string
	handler http.HandlerFunc
}

// NewRouter builds the full handler. API routes are served both at the root
// and under /api.
func NewRouter(deps RouterDeps) http.Handler {
	authHandler := NewAuthHandler(deps.AuthService)
	recruitmentHandler := NewRecruitmentHandler(deps.RecruitmentService)
	pageHandler := NewPageHandler(deps.RecruitmentService)
	healthHandler := NewHealthHandler(deps.Store)
	authMiddleware := NewAuthMiddleware(deps.Guard)

	routes := []route{
		// Auth
		{http.MethodPost, "/auth", authHandler.Login},
		{http.MethodGet, "/auth/session", authHandler.Session},

		// Recruitments
		{http.MethodGet, "/recruitments/summary", recruitmentHandler.Summary},
		{http.MethodGet, "/recruitments", recruitmentHandler.List},
		{http.MethodPost, "/recruitments", recruitmentHandler.Create},
		{http.MethodPut, "/recruitments", recruitmentHandler.Update},
		{http.MethodDelete, "/recruitments", recruitmentHandler.Delete},

		// Operational
		{http.MethodGet, "/health", healthHandler.Health},
	}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed(nil))

	api := r.PathPrefix("/api").Subrouter()
	api.NotFoundHandler = r.NotFoundHandler
	api.MethodNotAllowedHandler = r.MethodNotAllowedHandler

	for _, sub := range []*mux.Router{api, r} {
		register(sub, routes, authMiddleware)
	}
	r.HandleFunc("/", pageHandler.Index).Methods(http.MethodGet, http.MethodHead)

	return WithLogging(CORS(deps.AllowedOrigins)(r))
}

func register(r *mux.Router, routes []route, auth *AuthMiddleware) {
	allowed := map[string][]string{}
	var order []string

	for _, rt := range routes {
		h := rt.handler
		if config.RequiredSecurity(rt.method, rt.path) != config.SecurityPublic {
			h = auth.RequireAdmin(h)
		}
		r.HandleFunc(rt.path, h).Methods(rt.method)

		if _, ok := allowed[rt.path]; !ok {
			order = append(order, rt.path)
		}
		allowed[rt.path] = append(allowed[rt.path], rt.method)
	}

	// Any other method on a known path gets 405 before auth is considered.
	for _, path := range order {
		r.HandleFunc(path, methodNotAllowed(allowed[path]))
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	ErrorResponse(w, http.StatusNotFound, "API endpoint not found")
}

func methodNotAllowed(allowed []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
		}
		ErrorResponse(w, http.StatusMethodNotAllowed, "Method "+r.Method+" Not Allowed")
	}
}
