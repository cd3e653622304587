package http

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"recruitment-tracker/internal/domain"
	"recruitment-tracker/internal/logger"
	"recruitment-tracker/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	Query   string
	Records []domain.Recruitment
	Summary domain.PayoutSummary
}

// PageHandler renders the public read-only table. It has no admin controls;
// mutations go through the JSON API with a bearer token.
type PageHandler struct {
	recruitmentService service.RecruitmentService
}

func NewPageHandler(recruitmentService service.RecruitmentService) *PageHandler {
	return &PageHandler{recruitmentService: recruitmentService}
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	records, err := h.recruitmentService.List(r.Context(), query)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to render page",
			"request_id", RequestIDFromContext(r.Context()),
			"error", err,
		)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{Query: query, Records: records, Summary: domain.Summarize(records)}
	if err := pageTemplate.Execute(w, data); err != nil {
		logger.ErrorContext(r.Context(), "Failed to execute page template", "error", err)
	}
}

// Pinger is the part of the store the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		logger.WarnContext(r.Context(), "Health check failed", "error", err)
		JSONResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
