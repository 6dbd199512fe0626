package libs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMemoryRateStoreCountsWithinWindow(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := NewMemoryRateStore(time.Hour)
	defer store.Close()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	ctx := context.Background()
	for i := int64(1); i <= 3; i++ {
		count, resetAt, err := store.Hit(ctx, "10.0.0.1", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, count)
		assert.Equal(t, now.Add(time.Minute), resetAt)
	}

	count, _, err := store.Hit(ctx, "10.0.0.2", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "keys are independent")

	now = now.Add(time.Minute)
	count, resetAt, err := store.Hit(ctx, "10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "a new window starts at resetAt")
	assert.Equal(t, now.Add(time.Minute), resetAt)
}

func TestMemoryRateStoreEvictsExpired(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := NewMemoryRateStore(time.Hour)
	defer store.Close()

	now := time.Now()
	store.now = func() time.Time { return now }

	_, _, err := store.Hit(context.Background(), "a", time.Second)
	require.NoError(t, err)
	_, _, err = store.Hit(context.Background(), "b", time.Hour)
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	store.evictExpired()
	assert.Equal(t, 1, store.Len())
}

func TestMemoryRateStoreConcurrentHits(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := NewMemoryRateStore(10 * time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = store.Hit(context.Background(), "shared", time.Minute)
		}()
	}
	wg.Wait()

	count, _, err := store.Hit(context.Background(), "shared", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(51), count)

	store.Close()
	store.Close()
}

func TestRedisRateStoreSurfacesClientErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	require.NoError(t, client.Close())

	store := NewRedisRateStore(client, "")
	_, _, err := store.Hit(context.Background(), "10.0.0.1", time.Minute)
	assert.Error(t, err)
}
