package admin

import (
	"context"
	"errors"
	"time"
)

// SessionCookie is the cookie carrying the opaque session identifier.
const SessionCookie = "admin_session"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionNotFound    = errors.New("session not found")
)

// Session is the server-side record behind an authenticated admin cookie.
// The store expires sessions a fixed TTL after their last write.
type Session struct {
	ID        string    `bson:"_id" json:"id"`
	Username  string    `bson:"username" json:"username"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SessionStore persists sessions keyed by their opaque id. Implementations
// own expiry; Get never returns an expired session.
type SessionStore interface {
	Put(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	// Delete removes a session. Deleting an absent session is not an
	// error; only a store failure is.
	Delete(ctx context.Context, id string) error
}
