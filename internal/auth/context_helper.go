package auth

import "context"

type contextKey string

const (
	SubjectKey contextKey = "subject"
	LevelKey   contextKey = "authLevel"
)

// WithSubject injects the authenticated caller into the request context
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, SubjectKey, subject) //to avoid collisions - use custom key type
}

// GetSubject retrieves the authenticated caller from the request context
func GetSubject(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectKey).(string)
	return subject, ok
}

// WithLevel records the authorization level that admitted the request
func WithLevel(ctx context.Context, level Level) context.Context {
	return context.WithValue(ctx, LevelKey, level)
}

// GetLevel retrieves the authorization level that admitted the request
func GetLevel(ctx context.Context) (Level, bool) {
	level, ok := ctx.Value(LevelKey).(Level)
	return level, ok
}
