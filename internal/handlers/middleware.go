package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const PlayerContextKey ContextKey = "player"

const anonCookieName = "themeclash_player"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	jwtSecret []byte
	log       zerolog.Logger
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(jwtSecret string, log zerolog.Logger) *Middleware {
	return &Middleware{jwtSecret: []byte(jwtSecret), log: log}
}

// Identify resolves the player id for the request. A valid bearer token wins;
// otherwise an anonymous id is read from (or set as) a long-lived cookie, so
// unauthenticated players keep their streaks and daily sessions.
func (m *Middleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerID := m.playerFromToken(r)
		if playerID == "" {
			playerID = m.playerFromCookie(w, r)
		}
		ctx := context.WithValue(r.Context(), PlayerContextKey, playerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) playerFromToken(r *http.Request) string {
	if len(m.jwtSecret) == 0 {
		return ""
	}
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || auth[:len(prefix)] != prefix {
		return ""
	}

	token, err := jwt.Parse(auth[len(prefix):], func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	id, _ := claims["id"].(string)
	return id
}

func (m *Middleware) playerFromCookie(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(anonCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	playerID := "anon-" + uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     anonCookieName,
		Value:    playerID,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return playerID
}

// PlayerFromContext retrieves the player id from the request context.
func PlayerFromContext(ctx context.Context) string {
	id, _ := ctx.Value(PlayerContextKey).(string)
	return id
}

// Logging middleware logs HTTP requests
func (m *Middleware) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
