package storage_test

import (
	"context"
	"testing"
	"time"

	"overcooked-storefront/cart-svc/internal/cart"
	"overcooked-storefront/cart-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *storage.RedisStorage) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, storage.NewRedisStorage(client, time.Hour)
}

func TestRedisStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, s := setupRedis(t)

	_, err := s.Load(ctx, "cart:abc")
	assert.ErrorIs(t, err, cart.ErrNotFound)

	require.NoError(t, s.Save(ctx, "cart:abc", []byte(`[]`)))
	data, err := s.Load(ctx, "cart:abc")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
	assert.Equal(t, time.Hour, mr.TTL("cart:abc"))

	require.NoError(t, s.Remove(ctx, "cart:abc"))
	assert.False(t, mr.Exists("cart:abc"))
}

func TestRedisStorage_CartExpires(t *testing.T) {
	ctx := context.Background()
	mr, s := setupRedis(t)

	require.NoError(t, s.Save(ctx, "cart:abc", []byte(`[]`)))
	mr.FastForward(2 * time.Hour)

	_, err := s.Load(ctx, "cart:abc")
	assert.ErrorIs(t, err, cart.ErrNotFound)
}
