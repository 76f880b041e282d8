package coverage

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"auditlink/internal/platform/metrics"
	"auditlink/internal/platform/middleware"
	"auditlink/internal/transport/http/shared"
)

// Handler exposes coverage figures and the exportable report.
type Handler struct {
	calculator *Calculator
	logger     *slog.Logger
	metrics    *metrics.Metrics
	validator  middleware.TokenValidator
}

// NewHandler creates a coverage Handler.
func NewHandler(calculator *Calculator, logger *slog.Logger, m *metrics.Metrics, validator middleware.TokenValidator) *Handler {
	return &Handler{
		calculator: calculator,
		logger:     logger,
		metrics:    m,
		validator:  validator,
	}
}

// Register registers the coverage routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	coverageRouter := chi.NewRouter()
	coverageRouter.Use(middleware.Recovery(h.logger))
	coverageRouter.Use(middleware.RequestID)
	coverageRouter.Use(middleware.Logger(h.logger))
	coverageRouter.Use(middleware.Timeout(30 * time.Second))
	coverageRouter.Use(middleware.Latency(h.metrics))
	coverageRouter.Use(middleware.RequireAuth(h.validator, h.logger))

	coverageRouter.Get("/", h.handleSummary)
	coverageRouter.Get("/standard/{standard}", h.handleStandard)
	coverageRouter.Get("/report", h.handleReport)
	coverageRouter.Get("/report.csv", h.handleReportCSV)

	r.Mount("/coverage", coverageRouter)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.calculator.Summary(ctx)
	if err != nil {
		h.logError(r, "coverage summary failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleStandard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	breakdown, err := h.calculator.Standard(ctx, chi.URLParam(r, "standard"))
	if err != nil {
		h.logError(r, "standard coverage failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, breakdown)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := h.calculator.BuildReport(ctx)
	if err != nil {
		h.logError(r, "report build failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) handleReportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := h.calculator.BuildReport(ctx)
	if err != nil {
		h.logError(r, "report build failed", err)
		shared.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="coverage-report.csv"`)
	if err := report.WriteCSV(w); err != nil {
		// Headers are already out; all we can do is log.
		h.logError(r, "csv write failed", err)
	}
}

func (h *Handler) logError(r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg,
		"request_id", middleware.GetRequestID(r.Context()),
		"error", err.Error(),
	)
}
