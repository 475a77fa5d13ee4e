package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SignedURLCache keeps presigned URLs for their TTL so repeated views of the
// same image do not re-sign on every request.
type SignedURLCache struct {
	rdb *redis.Client
}

func NewSignedURLCache(rdb *redis.Client) *SignedURLCache {
	return &SignedURLCache{rdb: rdb}
}

func (c *SignedURLCache) Get(ctx context.Context, key string) (string, error) {
	return c.rdb.Get(ctx, "signed_url:"+key).Result()
}

func (c *SignedURLCache) Set(ctx context.Context, key, val string, ttl time.Duration) error {
	return c.rdb.Set(ctx, "signed_url:"+key, val, ttl).Err()
}
