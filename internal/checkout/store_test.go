package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
	"github.com/lamuse/classtee-backend/pkg/redis"
	"github.com/lamuse/classtee-backend/pkg/redis/redistest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisDraftStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := redistest.NewMemory()
	store, err := NewRedisDraftStore(kv, time.Hour, time.Minute)
	require.NoError(t, err)

	draft := &Draft{ID: "order-1", Summary: sampleSummary(t), CouponDiscount: 360, CouponApplied: true}
	require.NoError(t, store.Save(ctx, draft))
	assert.True(t, kv.Has("classtee:draft:order-1"))

	loaded, err := store.Load(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, draft.Summary.Quantities, loaded.Summary.Quantities)
	assert.Equal(t, int64(6840), loaded.PayableTotal())

	require.NoError(t, store.Delete(ctx, "order-1"))
	_, err = store.Load(ctx, "order-1")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestRedisDraftStoreConfirmLock(t *testing.T) {
	ctx := context.Background()
	kv := redistest.NewMemory()
	store, err := NewRedisDraftStore(kv, time.Hour, time.Minute)
	require.NoError(t, err)

	ok, err := store.AcquireConfirmLock(ctx, "order-1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = store.AcquireConfirmLock(ctx, "order-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.ReleaseConfirmLock(ctx, "order-1"))
	assert.False(t, kv.Has(redis.Key(redis.ConfirmLockPrefix, "order-1")))
}

func TestRedisDraftStoreBackendFailure(t *testing.T) {
	kv := redistest.NewMemory()
	kv.Err = errors.New("connection refused")
	store, err := NewRedisDraftStore(kv, time.Hour, time.Minute)
	require.NoError(t, err)

	_, err = store.Load(context.Background(), "order-1")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDependency))
}

func TestNewRedisDraftStoreValidatesArgs(t *testing.T) {
	_, err := NewRedisDraftStore(nil, time.Hour, time.Minute)
	assert.Error(t, err)
	_, err = NewRedisDraftStore(redistest.NewMemory(), 0, time.Minute)
	assert.Error(t, err)
}
