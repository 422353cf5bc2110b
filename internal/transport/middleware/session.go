package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/konjug-backend/pkg/ctxutil"
)

type sessionValidator interface {
	ValidateSessionToken(token string) (uuid.UUID, error)
}

// Session reads the session cookie and stores its user ID in the context.
// Requests without a cookie or with an invalid one continue anonymously;
// handlers that need a user decide how to reject them.
func Session(validator sessionValidator, cookieName string, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := validator.ValidateSessionToken(cookie.Value)
			if err != nil {
				logger.DebugContext(r.Context(), "session cookie rejected", slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctxutil.WithUserID(r.Context(), userID)))
		})
	}
}
