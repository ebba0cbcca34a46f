package repository

import (
	"context"
	"time"
)

// Session is the server-side record behind a signed session token.
// Deleting it revokes the token before its expiry.
type Session struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IssuedAt time.Time `json:"issued_at"`
}

type SessionRepository interface {
	Put(ctx context.Context, s *Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
