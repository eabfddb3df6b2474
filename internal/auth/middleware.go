package auth

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"keyVaultAPI/internal/models"
)

// Level is the authorization level applied to the secrets routes
type Level string

const (
	LevelAnonymous Level = "anonymous"
	LevelFunction  Level = "function"
	LevelBearer    Level = "bearer"
)

// ParseLevel accepts anonymous, function and bearer in any case
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(s)) {
	case "", LevelAnonymous:
		return LevelAnonymous, nil
	case LevelFunction:
		return LevelFunction, nil
	case LevelBearer:
		return LevelBearer, nil
	default:
		return "", fmt.Errorf("unknown authorization level %q", s)
	}
}

// Policy selects the middleware matching Level.
// Key must be set for LevelFunction and JWT for LevelBearer.
type Policy struct {
	Level Level
	Key   *FunctionKey
	JWT   JWT
	Log   *slog.Logger
}

// Middleware wraps next with the check of the configured level
func (p Policy) Middleware(next http.Handler) http.Handler {
	log := p.Log
	if log == nil {
		log = slog.Default()
	}

	switch p.Level {
	case LevelFunction:
		return FunctionKeyMiddleware(p.Key, log, next)
	case LevelBearer:
		return JWTMiddleware(p.JWT, log, next)
	default:
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithLevel(r.Context(), LevelAnonymous)))
		})
	}
}

// FunctionKeyMiddleware admits requests carrying the function key
func FunctionKeyMiddleware(key *FunctionKey, log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if key == nil || !key.Verify(KeyFromRequest(r)) {
			log.Warn("unauthorized request", "path", r.URL.Path, "remote", r.RemoteAddr)
			Unauthorized(w, "function key required")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithLevel(r.Context(), LevelFunction)))
	})
}

// JWTMiddleware validates JWT tokens and injects the subject into request context
func JWTMiddleware(jwtManager JWT, log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			Unauthorized(w, "Authorization header required")
			return
		}

		// Expect header in format "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			Unauthorized(w, "Authorization header must be Bearer <token>")
			return
		}

		if jwtManager == nil {
			Unauthorized(w, "Invalid or expired token")
			return
		}
		claims, err := jwtManager.Verify(parts[1])
		if err != nil {
			log.Warn("rejected bearer token", "path", r.URL.Path, "error", err)
			Unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := WithSubject(r.Context(), claims.Subject)
		ctx = WithLevel(ctx, LevelBearer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Unauthorized writes a 401 error envelope
func Unauthorized(w http.ResponseWriter, message string) {
	body, _ := json.Marshal(models.ErrorResponse{
		StatusCode: http.StatusUnauthorized,
		Message:    message,
	})
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write(body) //nolint:errcheck
}
