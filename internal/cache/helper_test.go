package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTestRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	Client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { Client = nil })
}

type payload struct {
	Name string `json:"name"`
	N    int    `json:"n"`
}

func TestGetSetJSON(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	var missing payload
	found, err := GetJSON(ctx, "absent", &missing)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "key", payload{Name: "a", N: 1}, time.Minute))

	var got payload
	found, err = GetJSON(ctx, "key", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "a", N: 1}, got)
}

func TestCacheAside(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *payload) func() error {
		return func() error {
			calls++
			*dest = payload{Name: "fetched", N: calls}
			return nil
		}
	}

	var first payload
	require.NoError(t, CacheAside(ctx, "p", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "fetched", first.Name)

	// Second read is served from the cache
	var second payload
	require.NoError(t, CacheAside(ctx, "p", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestCacheAsideFetchError(t *testing.T) {
	withTestRedis(t)

	wantErr := errors.New("source down")
	var dest payload
	err := CacheAside(context.Background(), "err", &dest, time.Minute, func() error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestInvalidate(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, "gone", payload{Name: "x"}, time.Minute))
	Invalidate(ctx, "gone")

	var got payload
	found, err := GetJSON(ctx, "gone", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHelpersNoopWithoutRedis(t *testing.T) {
	Client = nil

	var got payload
	found, err := GetJSON(context.Background(), "k", &got)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(context.Background(), "k", payload{}, time.Minute))
	Invalidate(context.Background(), "k")
}
