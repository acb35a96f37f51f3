package storage

import (
	"context"
	"errors"
	"time"

	"overcooked-storefront/cart-svc/internal/cart"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps cart entries in Redis, refreshing the TTL on every save.
type RedisStorage struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisStorage(client *redis.Client, ttl time.Duration) *RedisStorage {
	return &RedisStorage{Client: client, TTL: ttl}
}

func (r *RedisStorage) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cart.ErrNotFound
	}
	return data, err
}

func (r *RedisStorage) Save(ctx context.Context, key string, data []byte) error {
	return r.Client.Set(ctx, key, data, r.TTL).Err()
}

func (r *RedisStorage) Remove(ctx context.Context, key string) error {
	return r.Client.Del(ctx, key).Err()
}

var _ cart.Storage = (*RedisStorage)(nil)
