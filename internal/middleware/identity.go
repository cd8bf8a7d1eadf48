package middleware

import (
	"net/http"
	"strings"

	"github.com/joanapinto/humsy/internal/ctxkeys"
)

// RequireUser resolves the caller from the X-User header and stores the id
// in the request context. Identity is delegated to the fronting proxy;
// requests without the header are rejected.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get("X-User"))
		if userID == "" {
			http.Error(w, "Missing X-User header", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctxkeys.WithUserID(r.Context(), userID)))
	})
}
