package kv_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/rhpisos/quoting-api/internal/kv"
)

func TestMemoryRoundTrip(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	data, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v"), data)
}

func TestMemoryFailWrites(t *testing.T) {
	store := kv.NewMemory()
	store.FailWrites = errors.New("disk full")
	require.Error(t, store.Set(context.Background(), "k", []byte("v")))
}

func TestRedisRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := kv.NewRedis(client)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "quote:number", []byte("13801")))
	data, ok, err := store.Get(ctx, "quote:number")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "13801", string(data))
}

func TestJSONHelpers(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	store := kv.NewMemory()
	ctx := context.Background()

	ok, err := kv.GetJSON(ctx, store, "p", &payload{})
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, kv.SetJSON(ctx, store, "p", payload{Name: "epoxy", Count: 3}))

	var got payload
	ok, err = kv.GetJSON(ctx, store, "p", &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, payload{Name: "epoxy", Count: 3}, got)
}
