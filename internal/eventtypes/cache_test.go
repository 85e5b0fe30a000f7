package eventtypes

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	types []EventType
	calls int
}

func (f *fakeCatalog) List(_ context.Context) ([]EventType, error) {
	f.calls++
	return f.types, nil
}

func (f *fakeCatalog) IconFor(_ context.Context, value string) (string, error) {
	f.calls++
	for _, et := range f.types {
		if et.Value == value {
			return et.Icon, nil
		}
	}
	return "", nil
}

func setupCache(t *testing.T) (*Cache, *fakeCatalog, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	source := &fakeCatalog{types: []EventType{
		{Value: "badminton", Label: "Badminton", Icon: "fas fa-feather"},
		{Value: "soccer", Label: "Soccer", Icon: "fas fa-futbol"},
	}}
	return NewCache(source, client), source, mr
}

func TestCache_IconFor(t *testing.T) {
	ctx := context.Background()

	t.Run("second lookup is served from redis", func(t *testing.T) {
		cache, source, _ := setupCache(t)

		icon, err := cache.IconFor(ctx, "badminton")
		require.NoError(t, err)
		assert.Equal(t, "fas fa-feather", icon)
		assert.Equal(t, 1, source.calls)

		icon, err = cache.IconFor(ctx, "badminton")
		require.NoError(t, err)
		assert.Equal(t, "fas fa-feather", icon)
		assert.Equal(t, 1, source.calls)
	})

	t.Run("unknown categories are negatively cached", func(t *testing.T) {
		cache, source, _ := setupCache(t)

		icon, err := cache.IconFor(ctx, "curling")
		require.NoError(t, err)
		assert.Equal(t, "", icon)
		assert.Equal(t, 1, source.calls)

		icon, err = cache.IconFor(ctx, "curling")
		require.NoError(t, err)
		assert.Equal(t, "", icon)
		assert.Equal(t, 1, source.calls)
	})

	t.Run("expired entry falls through to the source", func(t *testing.T) {
		cache, source, mr := setupCache(t)

		_, err := cache.IconFor(ctx, "soccer")
		require.NoError(t, err)
		mr.FastForward(cacheTTL * 2)

		icon, err := cache.IconFor(ctx, "soccer")
		require.NoError(t, err)
		assert.Equal(t, "fas fa-futbol", icon)
		assert.Equal(t, 2, source.calls)
	})

	t.Run("redis being down degrades to direct reads", func(t *testing.T) {
		cache, source, mr := setupCache(t)
		mr.Close()

		icon, err := cache.IconFor(ctx, "badminton")
		require.NoError(t, err)
		assert.Equal(t, "fas fa-feather", icon)
		assert.Equal(t, 1, source.calls)
	})
}

func TestCache_List(t *testing.T) {
	ctx := context.Background()

	t.Run("caches the whole catalog", func(t *testing.T) {
		cache, source, _ := setupCache(t)

		types, err := cache.List(ctx)
		require.NoError(t, err)
		assert.Len(t, types, 2)
		assert.Equal(t, 1, source.calls)

		types, err = cache.List(ctx)
		require.NoError(t, err)
		assert.Len(t, types, 2)
		assert.Equal(t, 1, source.calls)
	})

	t.Run("corrupt entry is repopulated", func(t *testing.T) {
		cache, source, mr := setupCache(t)
		require.NoError(t, mr.Set(catalogKey, "{not json"))

		types, err := cache.List(ctx)
		require.NoError(t, err)
		assert.Len(t, types, 2)
		assert.Equal(t, 1, source.calls)
	})
}
