package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
)

type contextKey string

const (
	SessionIDKey contextKey = "sessionId"

	// SessionIDHeader carries the session id on routes without an {id} path segment
	SessionIDHeader = "X-Session-ID"
)

// RequireSession resolves the session id from the {id} path variable or the
// X-Session-ID header and stores it in the request context.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pathID := mux.Vars(r)["id"]
		headerID := r.Header.Get(SessionIDHeader)

		id := pathID
		switch {
		case pathID != "" && headerID != "" && pathID != headerID:
			http.Error(w, `{"error":"session id mismatch"}`, http.StatusBadRequest)
			return
		case id == "":
			id = headerID
		}
		if id == "" {
			http.Error(w, `{"error":"missing session id"}`, http.StatusBadRequest)
			return
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID extracts session ID from context
func GetSessionID(ctx context.Context) string {
	if v := ctx.Value(SessionIDKey); v != nil {
		return v.(string)
	}
	return ""
}
