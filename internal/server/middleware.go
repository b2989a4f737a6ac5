package server

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey int

const (
	ctxKeySession ctxKey = iota
	ctxKeyToken
)

func sessionMiddleware(sessions *Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "invalid or missing session token")
				return
			}

			sess, ok := sessions.Get(token)
			if !ok {
				writeError(w, http.StatusUnauthorized, "invalid or missing session token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeySession, sess)
			ctx = context.WithValue(ctx, ctxKeyToken, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func sessionFrom(r *http.Request) *gameSession {
	return r.Context().Value(ctxKeySession).(*gameSession)
}

func tokenFrom(r *http.Request) string {
	return r.Context().Value(ctxKeyToken).(string)
}
