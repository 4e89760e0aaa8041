// internal/httpserver/auth.go
//
// Session tokens and API-key checks.
//
//   - POST /sessions issues an HS256 JWT whose "sid" claim names the session.
//     The token is returned in the body and set as an HttpOnly cookie.
//   - Session routes accept the token as "Authorization: Bearer <token>" or
//     via the cookie, and put the session ID into the request context.
//   - When an API key hash (bcrypt) is configured, creating a session requires
//     a matching X-API-Key header.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthConfig configures token signing and the optional API key.
type AuthConfig struct {
	Secret     string
	TTL        time.Duration
	APIKeyHash string
	CookieName string
	Secure     bool
}

func (a AuthConfig) cookieName() string {
	if a.CookieName == "" {
		return "quordle_token"
	}
	return a.CookieName
}

func (a AuthConfig) ttl() time.Duration {
	if a.TTL <= 0 {
		return 12 * time.Hour
	}
	return a.TTL
}

// ctxSessionKey is the context key type for the session ID.
type ctxSessionKey struct{}

var errBadToken = errors.New("invalid token")

// signToken creates an HS256 JWT carrying the session ID.
func (a AuthConfig) signToken(sessionID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(a.ttl())
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sessionID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(a.Secret))
	return ss, exp, err
}

// parseToken verifies tok and returns its session ID.
func (a AuthConfig) parseToken(tok string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(a.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return "", errBadToken
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errBadToken
	}
	return sid, nil
}

// checkAPIKey reports whether key matches the configured hash.
// With no hash configured every request passes.
func (a AuthConfig) checkAPIKey(key string) bool {
	if a.APIKeyHash == "" {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(a.APIKeyHash), []byte(key)) == nil
}

// setTokenCookie writes the session token cookie.
func (a AuthConfig) setTokenCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if a.Secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     a.cookieName(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   a.Secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a bearer token from the Authorization header or the cookie.
func (a AuthConfig) bearerOrCookie(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	if c, err := r.Cookie(a.cookieName()); err == nil {
		return c.Value
	}
	return ""
}

// requireSession enforces a valid token and injects the session ID.
func (s *Server) requireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := s.auth.bearerOrCookie(r)
			if tok == "" {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			sid, err := s.auth.parseToken(tok)
			if err != nil {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ctxSessionKey{}, sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionID returns the session ID placed by requireSession.
func sessionID(r *http.Request) string {
	sid, _ := r.Context().Value(ctxSessionKey{}).(string)
	return sid
}
