package audit

import (
	"context"
	"log/slog"
)

// Sink delivers audit events to an external system.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Worker consumes audit events from a channel and forwards them to a sink.
// Delivery is best-effort: a failed publish is logged and the worker moves
// on, because audit events are already persisted by the publisher.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Publish(ctx, event); err != nil {
				w.logger.Warn("audit sink publish failed",
					"event_type", event.Type,
					"event_id", event.ID,
					"error", err)
			}
		}
	}
}
