package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/lucaferrante/fornello-backend/pkg/logger"
)

const sessionIDHeader = "X-Session-Id"

type sessionKey struct{}

// Session resolves the anonymous cart session. A client without a
// session header gets a fresh id echoed back; subsequent requests must
// replay it to keep their cart.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(sessionIDHeader)
			if sessionID == "" || uuid.Validate(sessionID) != nil {
				sessionID = uuid.NewString()
			}

			w.Header().Set(sessionIDHeader, sessionID)

			ctx := context.WithValue(r.Context(), sessionKey{}, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionID returns the session id resolved by the Session middleware.
func SessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionKey{}).(string); ok {
		return id
	}
	return ""
}
