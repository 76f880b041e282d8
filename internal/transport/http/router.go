// Package httptransport assembles the service router. Feature handlers
// register their own subrouters; this package adds the operational surface
// around them: health, metrics, and the admin endpoints.
package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"auditlink/internal/audit"
	"auditlink/internal/platform/middleware"
	"auditlink/internal/transport/http/shared"
	dErrors "auditlink/pkg/domain-errors"
)

// Registrar is implemented by feature handlers that mount their own routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck probes one backing dependency.
type HealthCheck func(ctx context.Context) error

// Options carries everything the router needs beyond the feature handlers.
type Options struct {
	Logger         *slog.Logger
	AdminTokenHash string
	AuditLog       *audit.Publisher
	CatalogCache   interface{ Invalidate() }
	HealthChecks   map[string]HealthCheck
	Handlers       []Registrar
}

// NewRouter builds the full service router.
func NewRouter(opts Options) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", handleHealth(opts.HealthChecks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	for _, h := range opts.Handlers {
		h.Register(r)
	}

	adminRouter := chi.NewRouter()
	adminRouter.Use(middleware.Recovery(opts.Logger))
	adminRouter.Use(middleware.RequestID)
	adminRouter.Use(middleware.Logger(opts.Logger))
	adminRouter.Use(middleware.Timeout(10 * time.Second))
	adminRouter.Use(middleware.RequireAdminToken(opts.AdminTokenHash, opts.Logger))

	adminRouter.Post("/catalog/invalidate", handleCatalogInvalidate(opts.CatalogCache))
	adminRouter.Get("/audit/events", handleAuditEvents(opts.AuditLog))

	r.Mount("/admin", adminRouter)

	return r
}

func handleHealth(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := http.StatusOK
		components := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				components[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			components[name] = "ok"
		}

		body := map[string]any{"status": "ok"}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		if len(components) > 0 {
			body["components"] = components
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

func handleCatalogInvalidate(cache interface{ Invalidate() }) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cache == nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "catalog cache not configured"))
			return
		}
		cache.Invalidate()
		shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
	}
}

func handleAuditEvents(auditLog *audit.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if auditLog == nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "audit log not configured"))
			return
		}
		limit := 100
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "limit must be a positive integer"))
				return
			}
			limit = n
		}
		events, err := auditLog.List(r.Context(), limit)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		shared.WriteJSON(w, http.StatusOK, map[string]any{"events": events})
	}
}
