package testutil

import (
	"net/http"
	"time"

	"auditlink/pkg/requestcontext"
)

// WithActor adds an acting-user identity to the request context, simulating
// what the auth middleware does for authenticated requests.
func WithActor(req *http.Request, actor string) *http.Request {
	ctx := requestcontext.WithActor(req.Context(), actor)
	return req.WithContext(ctx)
}

// WithTime pins the request clock so timestamp assertions are deterministic.
func WithTime(req *http.Request, t time.Time) *http.Request {
	ctx := requestcontext.WithTime(req.Context(), t)
	return req.WithContext(ctx)
}

// WithRequestID adds a correlation id to the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	ctx := requestcontext.WithRequestID(req.Context(), requestID)
	return req.WithContext(ctx)
}
