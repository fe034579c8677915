package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

// tokenIssuer signs and verifies HS256 tokens whose subject is a session id.
type tokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func newTokenIssuer(secret string, ttl time.Duration) *tokenIssuer {
	return &tokenIssuer{secret: []byte(secret), ttl: ttl}
}

// sign issues a token for sessionID.
func (t *tokenIssuer) sign(sessionID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(t.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := tok.SignedString(t.secret)
	return ss, exp, err
}

// verify returns the session id a valid token was issued for.
func (t *tokenIssuer) verify(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

// bearer extracts a token from "Authorization: Bearer <token>".
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// ctxSessionKey is the context key type for the authorized session id.
type ctxSessionKey struct{}

// requireSession enforces a valid token whose subject is the {id} route param.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearer(r)
		if tokenStr == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		sub, err := s.tokens.verify(tokenStr)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		if sub != chi.URLParam(r, "id") {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sub)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionID returns the id placed in context by requireSession.
func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(ctxSessionKey{}).(string)
	return id
}
