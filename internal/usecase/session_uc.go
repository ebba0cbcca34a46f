package usecase

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"workgate/internal/domain"
	"workgate/internal/domain/model"
	"workgate/internal/domain/ports/repository"
)

// Compile-time check
var _ SessionUseCase = (*sessionUC)(nil)

// SessionUseCase establishes a session for a user whose payment was just
// verified. The gateway signature is the authentication event here — no
// password or second factor is checked. The token is backed by a TTL'd
// server-side record so it can be revoked before expiry.
type SessionUseCase interface {
	Establish(ctx context.Context, user *model.User) (token string, err error)
	Validate(ctx context.Context, token string) (*repository.Session, error)
	Logout(ctx context.Context, token string) error
}

type sessionClaims struct {
	Role      string `json:"role"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type sessionUC struct {
	sessions repository.SessionRepository
	secret   []byte
	ttl      time.Duration
	log      *zerolog.Logger
	// Shared across handler goroutines; the locked reader serializes
	// MonotonicEntropy access.
	entropy *ulid.LockedMonotonicReader
}

func NewSessionUseCase(sessions repository.SessionRepository, secret string, ttl time.Duration, logger *zerolog.Logger) *sessionUC {
	return &sessionUC{
		sessions: sessions,
		secret:   []byte(secret),
		ttl:      ttl,
		log:      logger,
		entropy: &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		},
	}
}

func (u *sessionUC) Establish(ctx context.Context, user *model.User) (string, error) {
	if user.IsZero() {
		return "", domain.ErrInvalidArgument
	}

	now := time.Now()
	sid := ulid.MustNew(ulid.Timestamp(now), u.entropy).String()
	s := &repository.Session{
		ID:       sid,
		UserID:   user.ID,
		Email:    user.Email,
		Role:     string(user.Role),
		IssuedAt: now,
	}
	if err := u.sessions.Put(ctx, s, u.ttl); err != nil {
		return "", err
	}

	claims := sessionClaims{
		Role:      string(user.Role),
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(u.secret)
	if err != nil {
		return "", err
	}

	u.log.Info().Str("user_id", user.ID).Str("session_id", sid).Msg("session established")
	return signed, nil
}

func (u *sessionUC) Validate(ctx context.Context, token string) (*repository.Session, error) {
	claims, err := u.parse(token)
	if err != nil {
		return nil, err
	}
	s, err := u.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (u *sessionUC) Logout(ctx context.Context, token string) error {
	claims, err := u.parse(token)
	if err != nil {
		// Nothing server-side to revoke for an unparsable token.
		return nil
	}
	return u.sessions.Delete(ctx, claims.SessionID)
}

func (u *sessionUC) parse(token string) (*sessionClaims, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return u.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrSessionNotFound
	}
	return &claims, nil
}
