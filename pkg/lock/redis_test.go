package lock

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// redisLockerForTest connects to the Redis named by ESMIGRATE_TEST_REDIS, or skips
func redisLockerForTest(t *testing.T) *RedisLocker {
	addr := os.Getenv("ESMIGRATE_TEST_REDIS")
	if addr == "" {
		t.Skip("ESMIGRATE_TEST_REDIS not set")
	}

	options := DefaultRedisOptions()
	options.Address = addr
	locker := OpenRedisLocker(options)
	t.Cleanup(func() { locker.Close() })

	require.NoError(t, locker.client.Ping(context.Background()).Err())
	return locker
}

func TestRedisLocker_Exclusive(t *testing.T) {
	locker := redisLockerForTest(t)
	ctx := context.Background()
	key := "esmigrate:test:" + uuid.NewString()

	token, err := locker.Lock(ctx, key, time.Minute)
	require.NoError(t, err)

	_, err = locker.Lock(ctx, key, time.Minute)
	assert.ErrorIs(t, err, ErrLockHeld)

	assert.ErrorIs(t, locker.Unlock(ctx, key, "someone-else"), ErrNotOwner)
	require.NoError(t, locker.Unlock(ctx, key, token))

	token, err = locker.Lock(ctx, key, time.Minute)
	require.NoError(t, err)
	require.NoError(t, locker.Unlock(ctx, key, token))
}

func TestRedisLocker_Expiry(t *testing.T) {
	locker := redisLockerForTest(t)
	ctx := context.Background()
	key := "esmigrate:test:" + uuid.NewString()

	stale, err := locker.Lock(ctx, key, 50*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)

	fresh, err := locker.Lock(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.ErrorIs(t, locker.Unlock(ctx, key, stale), ErrNotOwner)
	require.NoError(t, locker.Unlock(ctx, key, fresh))
}
