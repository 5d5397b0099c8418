package http

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/covidboard/frontend"
	"github.com/secmon-lab/covidboard/pkg/domain/interfaces"
)

// UseCases bundles what the HTTP layer serves
type UseCases struct {
	dashboard interfaces.Dashboard
	snapshots interfaces.Snapshots
	renderer  interfaces.ChartRenderer
	exporter  interfaces.Exporter
}

// NewUseCases creates the dependency bundle of the server
func NewUseCases(dashboard interfaces.Dashboard, snapshots interfaces.Snapshots, renderer interfaces.ChartRenderer, exporter interfaces.Exporter) *UseCases {
	return &UseCases{
		dashboard: dashboard,
		snapshots: snapshots,
		renderer:  renderer,
		exporter:  exporter,
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	router chi.Router
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, addr string, uc *UseCases) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	h := &handler{uc: uc}

	// Health check
	router.Get("/health", handleHealth)

	router.Route("/api", func(r chi.Router) {
		r.Use(CORS)

		r.Get("/options", h.getOptions)
		r.Get("/states/{state}/counties", h.getCounties)

		r.Get("/series/state", h.getStateSeries)
		r.Get("/series/states", h.getAllStatesSeries)

		r.Get("/charts/state.png", h.getStateChart)
		r.Get("/charts/states.png", h.getAllStatesChart)

		r.Get("/export/state.xlsx", h.exportState)
		r.Get("/export/states.xlsx", h.exportAllStates)

		r.Get("/snapshot", h.getSnapshot)
		r.Get("/refreshes", h.listRefreshes)
		r.Get("/refreshes/{id}", h.getRefresh)
		r.Post("/refresh", h.postRefresh)
	})

	fs, err := frontend.GetHTTPFS()
	if err == nil {
		var spa *SPAHandler
		spa, err = NewSPAHandler(fs)
		if err == nil {
			ctxlog.From(ctx).Info("Serving frontend from embedded files")
			router.Handle("/*", spa)
		}
	}
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to get embedded frontend, using fallback",
			"error", err,
		)
		router.Get("/*", h.fallbackHome)
	}

	return &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router: router,
	}
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "covidboard",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}

// fallbackHome handles the root path when frontend is not available.
// The chart spans the default date range of the current dataset.
func (h *handler) fallbackHome(w http.ResponseWriter, r *http.Request) {
	body := `<p>The dataset is not loaded yet, so no chart is shown.</p>`
	opts, err := h.uc.dashboard.Options(r.Context())
	if err != nil {
		ctxlog.From(r.Context()).Warn("Failed to get dashboard options for fallback page", "error", err)
	} else if first, ok := opts.Dates.At(opts.DefaultFrom); ok {
		last, _ := opts.Dates.At(opts.DefaultTo)
		body = fmt.Sprintf(`<p>The chart below covers %s to %s.</p>
    <img src="/api/charts/states.png?from=%d&amp;to=%d" alt="Covid19 confirmed cases for all states">`,
			html.EscapeString(first.Label), html.EscapeString(last.Label),
			opts.DefaultFrom, opts.DefaultTo)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
    <title>Covid19 Dashboard</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif;
            margin: 2rem;
            color: #663399;
        }
        img { max-width: 100%%; }
    </style>
</head>
<body>
    <h1>Covid19 Dashboard</h1>
    <p>The frontend bundle is not available.</p>
    %s
    <p><a href="/api/options">Dashboard options</a> &middot; <a href="/api/snapshot">Snapshot</a></p>
</body>
</html>`, body); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write fallback home page", "error", err)
	}
}
