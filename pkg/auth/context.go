package auth

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// Session is the authenticated caller attached to a request context.
type Session struct {
	AccessToken string
	Claims      *CustomClaims
}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// SessionFromContext returns nil when the request is anonymous.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}

// UserIDFromContext returns uuid.Nil, false for anonymous requests.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	s := SessionFromContext(ctx)
	if s == nil || s.Claims == nil || s.Claims.UserID == uuid.Nil {
		return uuid.Nil, false
	}
	return s.Claims.UserID, true
}
