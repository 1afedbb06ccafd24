package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/lucid-hq/lucid-api/internal/auth"
	"github.com/redis/go-redis/v9"
)

// CachedAuthenticator wraps an auth.Authenticator with a Redis read-through
// cache so the hot path does not hit Postgres on every request. Cache keys
// are derived from a hash of the token, never the token itself. Negative
// results are not cached: an invalid token always goes to the source.
type CachedAuthenticator struct {
	source auth.Authenticator
	client *redis.Client
	ttl    time.Duration
}

// NewCachedAuthenticator creates the caching decorator.
func NewCachedAuthenticator(
	source auth.Authenticator, client *redis.Client, ttl time.Duration,
) *CachedAuthenticator {
	return &CachedAuthenticator{
		source: source,
		client: client,
		ttl:    ttl,
	}
}

func (c *CachedAuthenticator) Authenticate(ctx context.Context, token string) (*auth.User, error) {
	key := c.cacheKey(token)

	if user, err := c.getFromCache(ctx, key); err == nil {
		return user, nil
	}

	user, err := c.source.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	c.cacheUser(ctx, key, user)

	return user, nil
}

func (c *CachedAuthenticator) cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))

	return "auth:" + hex.EncodeToString(sum[:])
}

func (c *CachedAuthenticator) getFromCache(ctx context.Context, key string) (*auth.User, error) {
	result, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, redis.Nil
	}

	return &auth.User{
		ID:    result["id"],
		Email: result["email"],
		Plan:  result["plan"],
	}, nil
}

func (c *CachedAuthenticator) cacheUser(ctx context.Context, key string, user *auth.User) {
	// Best effort: a cache write failure never fails the request.
	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, "id", user.ID, "email", user.Email, "plan", user.Plan)
	pipe.Expire(ctx, key, c.ttl)
	_, _ = pipe.Exec(ctx)
}
