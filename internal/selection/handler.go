package selection

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"auditlink/internal/platform/metrics"
	"auditlink/internal/platform/middleware"
	"auditlink/internal/transport/http/shared"
	id "auditlink/pkg/domain"
	dErrors "auditlink/pkg/domain-errors"
	"auditlink/pkg/requestcontext"
)

// Handler exposes the selection manager. The session key is the
// authenticated actor: each operator has one selection.
type Handler struct {
	manager   *Manager
	logger    *slog.Logger
	metrics   *metrics.Metrics
	validator middleware.TokenValidator
}

// NewHandler creates a selection Handler.
func NewHandler(manager *Manager, logger *slog.Logger, m *metrics.Metrics, validator middleware.TokenValidator) *Handler {
	return &Handler{
		manager:   manager,
		logger:    logger,
		metrics:   m,
		validator: validator,
	}
}

// Register registers the selection routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	selectionRouter := chi.NewRouter()
	selectionRouter.Use(middleware.Recovery(h.logger))
	selectionRouter.Use(middleware.RequestID)
	selectionRouter.Use(middleware.Logger(h.logger))
	selectionRouter.Use(middleware.Timeout(10 * time.Second))
	selectionRouter.Use(middleware.ContentTypeJSON)
	selectionRouter.Use(middleware.Latency(h.metrics))
	selectionRouter.Use(middleware.RequireAuth(h.validator, h.logger))

	selectionRouter.Get("/", h.handleGet)
	selectionRouter.Post("/evidence", h.handleToggleEvidence)
	selectionRouter.Put("/evidence", h.handleSelectAllEvidence)
	selectionRouter.Post("/requirements", h.handleToggleRequirement)
	selectionRouter.Delete("/", h.handleClear)

	r.Mount("/selection", selectionRouter)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	set, err := h.manager.Current(ctx, requestcontext.Actor(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"evidence_ids":    set.EvidenceIDs(),
		"requirement_ids": set.RequirementIDs(),
		"snapshot":        set.Snapshot(),
	})
}

type toggleEvidenceRequest struct {
	EvidenceID id.EvidenceID `json:"evidence_id"`
	Selected   bool          `json:"selected"`
}

func (h *Handler) handleToggleEvidence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req toggleEvidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.EvidenceID.IsNil() {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "evidence_id is required"))
		return
	}

	snapshot, err := h.manager.ToggleEvidence(ctx, requestcontext.Actor(ctx), req.EvidenceID, req.Selected)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, snapshot)
}

type selectAllRequest struct {
	EvidenceIDs []id.EvidenceID `json:"evidence_ids"`
}

func (h *Handler) handleSelectAllEvidence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req selectAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	snapshot, err := h.manager.SelectAllEvidence(ctx, requestcontext.Actor(ctx), req.EvidenceIDs)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, snapshot)
}

type toggleRequirementRequest struct {
	RequirementID id.RequirementID `json:"requirement_id"`
	Selected      bool             `json:"selected"`
}

func (h *Handler) handleToggleRequirement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req toggleRequirementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.RequirementID.IsNil() {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "requirement_id is required"))
		return
	}

	snapshot, err := h.manager.ToggleRequirement(ctx, requestcontext.Actor(ctx), req.RequirementID, req.Selected)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snapshot, err := h.manager.Clear(ctx, requestcontext.Actor(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, snapshot)
}
