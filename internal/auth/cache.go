package auth

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ProfileCache keeps resolved profiles in Redis for the token lifetime, so a
// profile's role is fetched once per session rather than on every request.
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache builds a cache. A nil client disables caching.
func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	return &ProfileCache{client: client, ttl: ttl}
}

func cacheKey(userID string) string {
	return "profile:" + userID
}

// Get returns the cached profile, or nil on miss or error.
func (c *ProfileCache) Get(ctx context.Context, userID string) *domain.Profile {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := c.client.Get(ctx, cacheKey(userID)).Bytes()
	if err != nil {
		return nil
	}
	var profile domain.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil
	}
	return &profile
}

// Set stores the profile, ignoring cache errors.
func (c *ProfileCache) Set(ctx context.Context, profile *domain.Profile) {
	if c == nil || c.client == nil || profile == nil {
		return
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, cacheKey(profile.ID), raw, c.ttl).Err()
}

// Invalidate drops the cached profile, used after role or status changes.
func (c *ProfileCache) Invalidate(ctx context.Context, userID string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, cacheKey(userID)).Err()
}
