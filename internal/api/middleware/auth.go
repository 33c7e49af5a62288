package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/kamillakovacs/craftbeerspa/internal/api/handlers"
)

// AdminAuth guards the operator endpoints with a shared token passed in the
// X-Admin-Token header
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				handlers.RespondForbidden(w, "admin endpoints are disabled")
				return
			}

			presented := r.Header.Get("X-Admin-Token")
			if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				handlers.RespondUnauthorized(w, "invalid admin token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
