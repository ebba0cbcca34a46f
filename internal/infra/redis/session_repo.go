package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"workgate/internal/domain"
	"workgate/internal/domain/ports/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo stores post-payment sessions in Redis. Records expire with the
// token TTL; deleting one revokes the token early.
type SessionRepo struct {
	client RedisClient
}

func NewSessionRepo(client RedisClient) *SessionRepo {
	return &SessionRepo{client: client}
}

func (s *SessionRepo) sessionKey(id string) string {
	return "session:" + id
}

func (s *SessionRepo) Put(ctx context.Context, sess *repository.Session, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.sessionKey(sess.ID), data, ttl)
}

func (s *SessionRepo) Get(ctx context.Context, id string) (*repository.Session, error) {
	data, err := s.client.Get(ctx, s.sessionKey(id))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var sess repository.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionRepo) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.sessionKey(id))
}
