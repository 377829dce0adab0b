package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"firmdesk.backend/internal/domain/entities"
)

const profileKeyPrefix = "influencer:profile:"

// ProfileCache is a read-through cache for influencer profiles. Writers
// must invalidate after every successful update.
type ProfileCache struct {
	ttl time.Duration
}

// NewProfileCache creates a profile cache with the given TTL
func NewProfileCache(ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProfileCache{ttl: ttl}
}

// Get returns the cached profile, or nil on a miss. Cache errors are
// returned so callers can decide to fall through; a plain miss is not an
// error.
func (c *ProfileCache) Get(ctx context.Context, id string) (*entities.Influencer, error) {
	raw, err := Get(ctx, profileKeyPrefix+id)
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var inf entities.Influencer
	if err := json.Unmarshal([]byte(raw), &inf); err != nil {
		// Corrupt entry: drop it and treat as a miss
		_ = Del(ctx, profileKeyPrefix+id)
		return nil, nil
	}
	return &inf, nil
}

// Put stores a profile
func (c *ProfileCache) Put(ctx context.Context, inf *entities.Influencer) error {
	raw, err := json.Marshal(inf)
	if err != nil {
		return err
	}
	return Set(ctx, profileKeyPrefix+inf.ID, raw, c.ttl)
}

// Invalidate drops a cached profile
func (c *ProfileCache) Invalidate(ctx context.Context, id string) error {
	return Del(ctx, profileKeyPrefix+id)
}
