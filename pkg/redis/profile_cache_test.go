package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firmdesk.backend/internal/domain/entities"
	"firmdesk.backend/pkg/redis"
)

func setupCache(t *testing.T) (*miniredis.Miniredis, *redis.ProfileCache) {
	t.Helper()

	mr := miniredis.RunT(t)
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	return mr, redis.NewProfileCache(time.Minute)
}

func TestProfileCache_PutGetInvalidate(t *testing.T) {
	_, cache := setupCache(t)
	ctx := context.Background()

	inf := &entities.Influencer{ID: "inf_123", Name: "Asha Rao", Email: "asha@example.com"}
	require.NoError(t, cache.Put(ctx, inf))

	got, err := cache.Get(ctx, "inf_123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Asha Rao", got.Name)

	require.NoError(t, cache.Invalidate(ctx, "inf_123"))

	got, err = cache.Get(ctx, "inf_123")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProfileCache_MissIsNotAnError(t *testing.T) {
	_, cache := setupCache(t)

	got, err := cache.Get(context.Background(), "inf_never_seen")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProfileCache_CorruptEntryDropped(t *testing.T) {
	mr, cache := setupCache(t)
	require.NoError(t, mr.Set("influencer:profile:inf_123", "{not json"))

	got, err := cache.Get(context.Background(), "inf_123")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("influencer:profile:inf_123"))
}

func TestProfileCache_EntriesExpire(t *testing.T) {
	mr, cache := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, &entities.Influencer{ID: "inf_123"}))
	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, "inf_123")
	require.NoError(t, err)
	assert.Nil(t, got)
}
