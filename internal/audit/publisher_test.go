package audit

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_EmitFillsDefaults(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	p := NewPublisher(store, nil)

	err := p.Emit(ctx, Event{
		Type:      EventLinkCreated,
		Actor:     "auditor-1",
		SubjectID: "ev-1",
	})
	require.NoError(t, err)

	events, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.NotEmpty(t, events[0].ID)
	assert.False(t, events[0].Timestamp.IsZero())
	assert.Equal(t, EventLinkCreated, events[0].Type)
}

func TestPublisher_FullInboxDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	inbox := make(chan Event, 1)
	p := NewPublisher(NewInMemoryStore(), inbox)

	require.NoError(t, p.Emit(ctx, Event{Type: EventLinkCreated, SubjectID: "a"}))
	// Inbox is now full; the second emit must still succeed.
	require.NoError(t, p.Emit(ctx, Event{Type: EventLinkCreated, SubjectID: "b"}))

	events, err := p.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestInMemoryStore_ListNewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, eventType := range []string{EventLinkCreated, EventLinkVerified, EventLinksCleared} {
		require.NoError(t, store.Append(ctx, Event{
			ID:        eventType,
			Type:      eventType,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	events, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EventLinksCleared, events[0].Type)
	assert.Equal(t, EventLinkVerified, events[1].Type)
}

type failingSink struct {
	calls int
}

func (s *failingSink) Publish(context.Context, Event) error {
	s.calls++
	return errors.New("broker down")
}

func TestWorker_SinkFailureDoesNotStopRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	inbox := make(chan Event, 2)
	sink := &failingSink{}
	w := NewWorker(sink, inbox, slog.New(slog.DiscardHandler))

	inbox <- Event{Type: EventLinkCreated}
	inbox <- Event{Type: EventLinkVerified}

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	assert.Eventually(t, func() bool { return sink.calls == 2 },
		time.Second, 10*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
