package cache

import (
	"context"
	"errors"
	"time"

	pkgredis "github.com/kokiddp/elkcms/internal/pkg/redis"
	"github.com/redis/go-redis/v9"
)

// Redis adapts the application Redis client to the Store contract.
// Flush removes only keys under the configured prefix, never the whole
// database the instance may share with other tenants.
type Redis struct {
	client *pkgredis.Client
	prefix string
}

// NewRedis wraps an established Redis client. The prefix namespaces every
// key written through this store.
func NewRedis(client *pkgredis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "elkcms:"
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Has(ctx context.Context, key string) (bool, error) {
	return r.client.Exists(ctx, r.prefix+key)
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Raw().Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *Redis) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+key, value, ttl)
}

func (r *Redis) Forget(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key)
}

func (r *Redis) Flush(ctx context.Context) error {
	rdb := r.client.Raw()
	iter := rdb.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
