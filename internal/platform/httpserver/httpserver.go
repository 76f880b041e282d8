// Package httpserver builds the process HTTP server.
package httpserver

import (
	"net/http"
	"time"

	"auditlink/internal/platform/config"
)

// New builds an HTTP server from the server configuration. Write timeout
// stays above the per-route timeout middleware so handlers, not the server,
// produce the timeout response.
func New(cfg config.Server, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout,
		IdleTimeout:       2 * time.Minute,
	}
}
