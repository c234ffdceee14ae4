package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniRedis(t *testing.T) *miniredis.Miniredis {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	Rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = Rdb.Close()
		mr.Close()
	})
	return mr
}

func TestTryLockAndUnLock(t *testing.T) {
	mr := setupMiniRedis(t)
	ctx := context.Background()

	ok, err := TryLock(ctx, "lock:test", "owner-a", time.Minute, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = TryLock(ctx, "lock:test", "owner-b", time.Minute, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	// 非持有者不能释放
	UnLock(ctx, "lock:test", "owner-b")
	assert.True(t, mr.Exists("lock:test"))

	UnLock(ctx, "lock:test", "owner-a")
	assert.False(t, mr.Exists("lock:test"))
}

func TestTryLockExpires(t *testing.T) {
	mr := setupMiniRedis(t)
	ctx := context.Background()

	ok, err := TryLock(ctx, "lock:ttl", "a", time.Second, 1)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	ok, err = TryLock(ctx, "lock:ttl", "b", time.Second, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGetValueMissingKey(t *testing.T) {
	setupMiniRedis(t)
	ctx := context.Background()

	val, err := GetValue(ctx, "nope")
	require.NoError(t, err)
	assert.Equal(t, "", val)

	require.NoError(t, SetWithExpiration(ctx, "k", "v", time.Minute))
	val, err = GetValue(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	require.NoError(t, DeleteKey(ctx, "k"))
	val, _ = GetValue(ctx, "k")
	assert.Equal(t, "", val)
}
