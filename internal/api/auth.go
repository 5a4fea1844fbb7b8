package api

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
)

type ctxKey int

const playerKey ctxKey = iota

// bearer extracts the token of an Authorization: Bearer header.
func bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// requireStaticToken checks the shared API token.
func (s *Server) requireStaticToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.authToken != "" {
			token, ok := bearer(r)
			if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) != 1 {
				writeError(w, http.StatusUnauthorized, "Unauthorized - Invalid or missing authentication token")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requireSession resolves a session token to its player.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearer(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized - Missing authentication token")
			return
		}
		player, err := s.auth.Player(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized - Invalid authentication token")
			return
		}
		ctx := context.WithValue(r.Context(), playerKey, player)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func playerFrom(ctx context.Context) string {
	p, _ := ctx.Value(playerKey).(string)
	return p
}
