// Package handler exposes the linking engine over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"auditlink/internal/link/models"
	"auditlink/internal/link/service"
	"auditlink/internal/link/store"
	"auditlink/internal/platform/metrics"
	"auditlink/internal/platform/middleware"
	"auditlink/internal/transport/http/shared"
	id "auditlink/pkg/domain"
	dErrors "auditlink/pkg/domain-errors"
)

// Engine defines the linking operations the handler delegates to.
type Engine interface {
	ManualLink(ctx context.Context, evidenceID id.EvidenceID, requirementIDs []id.RequirementID, attrs models.Attrs) (*models.BatchResult, error)
	BulkLink(ctx context.Context, evidenceIDs []id.EvidenceID, requirementIDs []id.RequirementID, attrs models.Attrs) (*models.BatchResult, error)
	AutoLink(ctx context.Context) (*models.AutoLinkResult, error)
	Unlink(ctx context.Context, evidenceID id.EvidenceID) (int, error)
	Clear(ctx context.Context, evidenceIDs []id.EvidenceID, requirementIDs []id.RequirementID) (int, error)
	Verify(ctx context.Context, linkIDs []id.LinkID) (*models.BatchResult, error)
	FindUnverified(ctx context.Context) ([]*models.Link, error)
	Status(ctx context.Context, evidenceID id.EvidenceID) (*service.StatusReport, error)
	List(ctx context.Context, filter store.Filter) ([]*models.Link, error)
}

// Handler handles link endpoints.
type Handler struct {
	engine    Engine
	logger    *slog.Logger
	metrics   *metrics.Metrics
	validator middleware.TokenValidator
}

// New creates a link Handler.
func New(engine Engine, logger *slog.Logger, m *metrics.Metrics, validator middleware.TokenValidator) *Handler {
	return &Handler{
		engine:    engine,
		logger:    logger,
		metrics:   m,
		validator: validator,
	}
}

// Register registers the link routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	linkRouter := chi.NewRouter()
	linkRouter.Use(middleware.Recovery(h.logger))
	linkRouter.Use(middleware.RequestID)
	linkRouter.Use(middleware.Logger(h.logger))
	linkRouter.Use(middleware.Timeout(30 * time.Second))
	linkRouter.Use(middleware.ContentTypeJSON)
	linkRouter.Use(middleware.Latency(h.metrics))
	linkRouter.Use(middleware.RequireAuth(h.validator, h.logger))

	linkRouter.Post("/", h.handleManualLink)
	linkRouter.Post("/bulk", h.handleBulkLink)
	linkRouter.Post("/auto", h.handleAutoLink)
	linkRouter.Post("/clear", h.handleClear)
	linkRouter.Post("/verify", h.handleVerify)
	linkRouter.Get("/", h.handleList)
	linkRouter.Get("/unverified", h.handleUnverified)
	linkRouter.Get("/status/{evidenceID}", h.handleStatus)
	linkRouter.Delete("/evidence/{evidenceID}", h.handleUnlink)

	r.Mount("/links", linkRouter)
}

type attrsPayload struct {
	Type        string   `json:"type,omitempty"`
	Strength    int      `json:"strength,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Priority    string   `json:"priority,omitempty"`
}

// toAttrs validates the enum fields up front so a bad type or priority is a
// 400, not a per-item invariant failure deep in the batch.
func (p attrsPayload) toAttrs() (models.Attrs, error) {
	attrs := models.Attrs{
		Strength:    p.Strength,
		Description: p.Description,
		Tags:        p.Tags,
	}
	if p.Type != "" {
		linkType, err := models.ParseLinkType(p.Type)
		if err != nil {
			return models.Attrs{}, err
		}
		attrs.Type = linkType
	}
	if p.Priority != "" {
		priority, err := models.ParsePriority(p.Priority)
		if err != nil {
			return models.Attrs{}, err
		}
		attrs.Priority = priority
	}
	return attrs, nil
}

type manualLinkRequest struct {
	EvidenceID     id.EvidenceID      `json:"evidence_id"`
	RequirementIDs []id.RequirementID `json:"requirement_ids"`
	attrsPayload
}

func (h *Handler) handleManualLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req manualLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.warn(ctx, "invalid manual link request", err)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	attrs, err := req.toAttrs()
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	result, err := h.engine.ManualLink(ctx, req.EvidenceID, req.RequirementIDs, attrs)
	if err != nil {
		h.writeEngineError(ctx, w, "manual link failed", err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, result)
}

type bulkLinkRequest struct {
	EvidenceIDs    []id.EvidenceID    `json:"evidence_ids"`
	RequirementIDs []id.RequirementID `json:"requirement_ids"`
	attrsPayload
}

func (h *Handler) handleBulkLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req bulkLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.warn(ctx, "invalid bulk link request", err)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	attrs, err := req.toAttrs()
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	result, err := h.engine.BulkLink(ctx, req.EvidenceIDs, req.RequirementIDs, attrs)
	if err != nil {
		h.writeEngineError(ctx, w, "bulk link failed", err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) handleAutoLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.engine.AutoLink(ctx)
	if err != nil {
		h.writeEngineError(ctx, w, "auto-link failed", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, result)
}

type clearRequest struct {
	EvidenceIDs    []id.EvidenceID    `json:"evidence_ids"`
	RequirementIDs []id.RequirementID `json:"requirement_ids"`
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req clearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.warn(ctx, "invalid clear request", err)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	removed, err := h.engine.Clear(ctx, req.EvidenceIDs, req.RequirementIDs)
	if err != nil {
		h.writeEngineError(ctx, w, "clear failed", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

type verifyRequest struct {
	LinkIDs []id.LinkID `json:"link_ids"`
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.warn(ctx, "invalid verify request", err)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.engine.Verify(ctx, req.LinkIDs)
	if err != nil {
		h.writeEngineError(ctx, w, "verify failed", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var filter store.Filter
	if raw := r.URL.Query().Get("evidence_id"); raw != "" {
		evidenceID, err := id.ParseEvidenceID(raw)
		if err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid evidence_id"))
			return
		}
		filter.EvidenceID = &evidenceID
	}
	if raw := r.URL.Query().Get("requirement_id"); raw != "" {
		requirementID, err := id.ParseRequirementID(raw)
		if err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid requirement_id"))
			return
		}
		filter.RequirementID = &requirementID
	}
	if raw := r.URL.Query().Get("verified"); raw != "" {
		verified, err := strconv.ParseBool(raw)
		if err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid verified"))
			return
		}
		filter.Verified = &verified
	}

	links, err := h.engine.List(ctx, filter)
	if err != nil {
		h.writeEngineError(ctx, w, "list links failed", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"links": links, "count": len(links)})
}

func (h *Handler) handleUnverified(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	links, err := h.engine.FindUnverified(ctx)
	if err != nil {
		h.writeEngineError(ctx, w, "list unverified failed", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"links": links, "count": len(links)})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	evidenceID, err := id.ParseEvidenceID(chi.URLParam(r, "evidenceID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid evidence id"))
		return
	}

	report, err := h.engine.Status(ctx, evidenceID)
	if err != nil {
		h.writeEngineError(ctx, w, "status derivation failed", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) handleUnlink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	evidenceID, err := id.ParseEvidenceID(chi.URLParam(r, "evidenceID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid evidence id"))
		return
	}

	removed, err := h.engine.Unlink(ctx, evidenceID)
	if err != nil {
		h.writeEngineError(ctx, w, "unlink failed", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

func (h *Handler) warn(ctx context.Context, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	)
}

func (h *Handler) writeEngineError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeInvalidInput, dErrors.CodeBadRequest, dErrors.CodeNotFound:
		h.warn(ctx, msg, err)
	default:
		h.logger.ErrorContext(ctx, msg,
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
	}
	shared.WriteError(w, err)
}
