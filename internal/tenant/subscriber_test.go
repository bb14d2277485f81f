package tenant

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirbridge/dirbridge/internal/directory"
)

func TestNewSubscriberConnectFailure(t *testing.T) {
	cache := NewCache(setupTestDB(t))

	subscriber, err := NewSubscriber(cache, "127.0.0.1:1", "", 0)
	require.Error(t, err)
	assert.Nil(t, subscriber)
}

func TestSubscriberEvictsOneNode(t *testing.T) {
	redis := miniredis.RunT(t)

	db := setupTestDB(t)
	seedNode(t, db, "service:id:sql:local", map[string]string{ParameterBaseDN: "dc=sample,dc=com"})

	cache := NewCache(db)

	before, err := cache.Get("service:id:sql:local")
	require.NoError(t, err)

	subscriber, err := NewSubscriber(cache, redis.Addr(), "", 0)
	require.NoError(t, err)
	defer subscriber.Close() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- subscriber.Run(ctx) }()

	// The subscription is established asynchronously; publish until the
	// eviction is observed.
	require.Eventually(t, func() bool {
		require.NoError(t, subscriber.Publish(ctx, "service:id:sql:local"))

		after, errGet := cache.Get("service:id:sql:local")
		require.NoError(t, errGet)

		return after != before
	}, 5*time.Second, 50*time.Millisecond, "expected the bundle to be rebuilt after invalidation")

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("subscriber did not stop on context cancellation")
	}
}

func TestSubscriberEvictsAll(t *testing.T) {
	redis := miniredis.RunT(t)

	db := setupTestDB(t)
	seedNode(t, db, "service:id:sql:one", map[string]string{ParameterBaseDN: "dc=one,dc=com"})
	seedNode(t, db, "service:id:sql:two", map[string]string{ParameterBaseDN: "dc=two,dc=com"})

	cache := NewCache(db)

	one, err := cache.Get("service:id:sql:one")
	require.NoError(t, err)
	two, err := cache.Get("service:id:sql:two")
	require.NoError(t, err)

	subscriber, err := NewSubscriber(cache, redis.Addr(), "", 0)
	require.NoError(t, err)
	defer subscriber.Close() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go subscriber.Run(ctx) //nolint:errcheck

	require.Eventually(t, func() bool {
		require.NoError(t, subscriber.Publish(ctx, EvictAll))

		var oneAfter, twoAfter *directory.Bundle

		oneAfter, err = cache.Get("service:id:sql:one")
		require.NoError(t, err)
		twoAfter, err = cache.Get("service:id:sql:two")
		require.NoError(t, err)

		return oneAfter != one && twoAfter != two
	}, 5*time.Second, 50*time.Millisecond, "expected both bundles to be rebuilt")
}
