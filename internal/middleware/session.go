package middleware

import (
	"log/slog"
	"net/http"

	"github.com/pawsitivewalks/pawsitivewalks/internal/auth"
)

// SessionReader resolves the user bound to a request's session cookie.
type SessionReader interface {
	UserID(r *http.Request) (string, error)
}

// LoadSession attaches an auth.Principal to the request context when the
// session cookie resolves to a user. Session backend failures are logged and
// the request continues anonymously.
func LoadSession(sessions SessionReader, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := sessions.UserID(r)
			if err != nil {
				logger.Warn("session lookup failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
			}
			if userID != "" {
				r = r.WithContext(auth.WithPrincipal(r.Context(), &auth.Principal{UserID: userID}))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests without an authenticated principal.
// Must be applied after LoadSession.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.UserIDFromContext(r.Context()) == "" {
			writeJSONError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
