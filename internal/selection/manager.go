package selection

import (
	"context"
	"log/slog"

	id "auditlink/pkg/domain"
	dErrors "auditlink/pkg/domain-errors"
)

// NotifyFunc is invoked after every selection mutation. It replaces the
// workspace re-render hook: purely a notification, never a data contract.
type NotifyFunc func(session string, snapshot Snapshot)

// Manager mediates selection mutations through the store and fires the
// change notification.
type Manager struct {
	store  Store
	logger *slog.Logger
	notify NotifyFunc
}

// ManagerOption configures optional Manager collaborators.
type ManagerOption func(*Manager)

// WithNotify installs a mutation listener.
func WithNotify(notify NotifyFunc) ManagerOption {
	return func(m *Manager) { m.notify = notify }
}

// NewManager creates a selection manager.
func NewManager(store Store, logger *slog.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{store: store, logger: logger}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ToggleEvidence selects or deselects one evidence item.
func (m *Manager) ToggleEvidence(ctx context.Context, session string, evidenceID id.EvidenceID, selected bool) (Snapshot, error) {
	return m.mutate(ctx, session, func(set *Set) bool {
		return set.ToggleEvidence(evidenceID, selected)
	})
}

// ToggleRequirement selects or deselects one requirement.
func (m *Manager) ToggleRequirement(ctx context.Context, session string, requirementID id.RequirementID, selected bool) (Snapshot, error) {
	return m.mutate(ctx, session, func(set *Set) bool {
		return set.ToggleRequirement(requirementID, selected)
	})
}

// SelectAllEvidence replaces the evidence selection with the visible ids.
func (m *Manager) SelectAllEvidence(ctx context.Context, session string, evidenceIDs []id.EvidenceID) (Snapshot, error) {
	return m.mutate(ctx, session, func(set *Set) bool {
		set.SelectAllEvidence(evidenceIDs)
		return true
	})
}

// Clear empties the selection. The cleared set is saved rather than
// dropped from the store, so a reloaded selection never reports an older
// revision than the clear notification carried.
func (m *Manager) Clear(ctx context.Context, session string) (Snapshot, error) {
	return m.mutate(ctx, session, func(set *Set) bool {
		set.Clear()
		return true
	})
}

// Current returns the selection without mutating it.
func (m *Manager) Current(ctx context.Context, session string) (*Set, error) {
	return m.load(ctx, session)
}

func (m *Manager) mutate(ctx context.Context, session string, apply func(*Set) bool) (Snapshot, error) {
	set, err := m.load(ctx, session)
	if err != nil {
		return Snapshot{}, err
	}
	changed := apply(set)
	if changed {
		if err := m.store.Save(ctx, session, set); err != nil {
			return Snapshot{}, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "save selection")
		}
	}
	snapshot := set.Snapshot()
	if changed {
		m.fire(session, snapshot)
	}
	return snapshot, nil
}

func (m *Manager) load(ctx context.Context, session string) (*Set, error) {
	set, err := m.store.Load(ctx, session)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "load selection")
	}
	return set, nil
}

func (m *Manager) fire(session string, snapshot Snapshot) {
	if m.notify == nil {
		return
	}
	m.notify(session, snapshot)
}
