// Package ctxutil carries request scoped identity through a context.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type (
	userIDKey    struct{}
	requestIDKey struct{}
	trackerKey   struct{}
)

// WithUserID stores the authenticated user in the context and reports it
// to the UserTracker installed further up, if any.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	if t, ok := ctx.Value(trackerKey{}).(*UserTracker); ok {
		t.id = id
	}
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserIDFromCtx returns the authenticated user. A missing value and the nil
// UUID both report false.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromCtx returns the request ID, or "" if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// UserTracker lets an outer handler learn which user an inner handler
// authenticated. Contexts are immutable, so the value set by WithUserID is
// otherwise invisible to callers up the chain.
//
// A tracker belongs to one request and must not be shared across requests.
type UserTracker struct {
	id uuid.UUID
}

// TrackUser installs a new tracker in ctx.
func TrackUser(ctx context.Context) (context.Context, *UserTracker) {
	t := &UserTracker{}
	return context.WithValue(ctx, trackerKey{}, t), t
}

// UserID returns the last user stored below the tracker.
func (t *UserTracker) UserID() (uuid.UUID, bool) {
	if t == nil || t.id == uuid.Nil {
		return uuid.Nil, false
	}
	return t.id, true
}
