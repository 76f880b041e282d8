package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is the append-only persistence boundary for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	List(ctx context.Context, limit int) ([]Event, error)
}

// Publisher captures structured audit events. It appends to the store
// synchronously and hands events to the worker inbox for external delivery;
// a full inbox drops the external copy rather than blocking domain logic.
type Publisher struct {
	store Store
	inbox chan<- Event
}

func NewPublisher(store Store, inbox chan<- Event) *Publisher {
	return &Publisher{store: store, inbox: inbox}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	if p.inbox != nil {
		select {
		case p.inbox <- event:
		default:
		}
	}
	return nil
}

func (p *Publisher) List(ctx context.Context, limit int) ([]Event, error) {
	return p.store.List(ctx, limit)
}
