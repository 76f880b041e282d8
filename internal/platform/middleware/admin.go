package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// RequireAdminToken guards maintenance endpoints (catalog invalidation) with
// a shared admin token. The configured value is a bcrypt hash so the
// plaintext never lives in the environment; plain comparison is kept for
// development setups that configure the raw token directly.
func RequireAdminToken(tokenOrHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get("X-Admin-Token")
			if tokenOrHash == "" || provided == "" || !tokenMatches(tokenOrHash, provided) {
				logger.WarnContext(r.Context(), "admin token rejected",
					"request_id", GetRequestID(r.Context()),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tokenMatches(tokenOrHash, provided string) bool {
	if len(tokenOrHash) > 4 && tokenOrHash[:4] == "$2a$" || len(tokenOrHash) > 4 && tokenOrHash[:4] == "$2b$" {
		return bcrypt.CompareHashAndPassword([]byte(tokenOrHash), []byte(provided)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(tokenOrHash), []byte(provided)) == 1
}
