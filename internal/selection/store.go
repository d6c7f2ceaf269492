package selection

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
	"github.com/lamuse/classtee-backend/pkg/redis"
)

const msgSessionNotFound = "selection session not found"

// SessionStore keeps selection sessions between events.
type SessionStore interface {
	Save(ctx context.Context, session Session) error
	Load(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}

// RedisSessionStore stores sessions as JSON; every save refreshes the TTL.
type RedisSessionStore struct {
	kv  redis.KeyValue
	ttl time.Duration
}

func NewRedisSessionStore(kv redis.KeyValue, ttl time.Duration) (*RedisSessionStore, error) {
	if kv == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &RedisSessionStore{kv: kv, ttl: ttl}, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, session Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode selection session")
	}
	if err := s.kv.Set(ctx, redis.Key(redis.SelectionPrefix, session.ID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store selection session")
	}
	return nil
}

func (s *RedisSessionStore) Load(ctx context.Context, id string) (Session, error) {
	raw, err := s.kv.Get(ctx, redis.Key(redis.SelectionPrefix, id))
	if err != nil {
		if redis.IsNil(err) {
			return Session{}, pkgerrors.New(pkgerrors.CodeNotFound, msgSessionNotFound)
		}
		return Session{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load selection session")
	}
	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return Session{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode selection session")
	}
	return session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.kv.Del(ctx, redis.Key(redis.SelectionPrefix, id)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete selection session")
	}
	return nil
}
