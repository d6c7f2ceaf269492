package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
	"github.com/lamuse/classtee-backend/pkg/redis"
)

const msgOrderNotFound = "order not found; please restart selection"

// DraftStore keeps drafts between checkout steps.
type DraftStore interface {
	Save(ctx context.Context, draft *Draft) error
	Load(ctx context.Context, id string) (*Draft, error)
	Delete(ctx context.Context, id string) error
	AcquireConfirmLock(ctx context.Context, id string) (bool, error)
	ReleaseConfirmLock(ctx context.Context, id string) error
}

// RedisDraftStore stores drafts as JSON under a TTL.
type RedisDraftStore struct {
	kv      redis.KeyValue
	ttl     time.Duration
	lockTTL time.Duration
}

// NewRedisDraftStore builds the store.
func NewRedisDraftStore(kv redis.KeyValue, ttl, lockTTL time.Duration) (*RedisDraftStore, error) {
	if kv == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 || lockTTL <= 0 {
		return nil, fmt.Errorf("draft and lock ttl must be positive")
	}
	return &RedisDraftStore{kv: kv, ttl: ttl, lockTTL: lockTTL}, nil
}

func (s *RedisDraftStore) Save(ctx context.Context, draft *Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode order draft")
	}
	if err := s.kv.Set(ctx, redis.Key(redis.DraftPrefix, draft.ID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store order draft")
	}
	return nil
}

func (s *RedisDraftStore) Load(ctx context.Context, id string) (*Draft, error) {
	raw, err := s.kv.Get(ctx, redis.Key(redis.DraftPrefix, id))
	if err != nil {
		if redis.IsNil(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgOrderNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order draft")
	}
	var draft Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode order draft")
	}
	return &draft, nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, id string) error {
	if err := s.kv.Del(ctx, redis.Key(redis.DraftPrefix, id)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order draft")
	}
	return nil
}

func (s *RedisDraftStore) AcquireConfirmLock(ctx context.Context, id string) (bool, error) {
	ok, err := s.kv.SetNX(ctx, redis.Key(redis.ConfirmLockPrefix, id), "1", s.lockTTL)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire confirmation lock")
	}
	return ok, nil
}

func (s *RedisDraftStore) ReleaseConfirmLock(ctx context.Context, id string) error {
	if err := s.kv.Del(ctx, redis.Key(redis.ConfirmLockPrefix, id)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release confirmation lock")
	}
	return nil
}
