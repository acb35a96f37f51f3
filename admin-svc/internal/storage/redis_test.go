package storage_test

import (
	"context"
	"testing"
	"time"

	"overcooked-storefront/admin-svc/internal/domain"
	"overcooked-storefront/admin-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisSessionStore_Lifecycle(t *testing.T) {
	mr, client := setupRedis(t)
	store := storage.NewRedisSessionStore(client, time.Hour)
	ctx := context.Background()

	session := domain.Session{Token: "tok", UserID: "u1", Email: "admin@example.com", ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second)}
	require.NoError(t, store.Create(ctx, session))
	assert.Equal(t, time.Hour, mr.TTL("session:tok"))

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, session.UserID, got.UserID)
	assert.True(t, session.ExpiresAt.Equal(got.ExpiresAt))

	require.NoError(t, store.Delete(ctx, "tok"))
	_, err = store.Get(ctx, "tok")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRedisSessionStore_Expires(t *testing.T) {
	mr, client := setupRedis(t)
	store := storage.NewRedisSessionStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, domain.Session{Token: "tok", UserID: "u1"}))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "tok")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func sampleOrder(id string) domain.OrderPlacedMessage {
	return domain.OrderPlacedMessage{
		Type:    "order_placed",
		OrderID: id,
		Items: []domain.OrderItem{
			{ProductID: "burger", Name: "Burger", Price: decimal.RequireFromString("28.90"), Quantity: 2},
			{ProductID: "soda", Name: "Soda", Price: decimal.RequireFromString("6.00"), Quantity: 1},
		},
		Total: decimal.RequireFromString("63.80"),
	}
}

func TestRedisAggregates_RecordOrder(t *testing.T) {
	_, client := setupRedis(t)
	agg := storage.NewRedisAggregates(client, 30*24*time.Hour)
	ctx := context.Background()

	require.NoError(t, agg.RecordOrder(ctx, "2025-05-05", sampleOrder("o1")))
	require.NoError(t, agg.RecordOrder(ctx, "2025-05-05", sampleOrder("o2")))

	series, missing, err := agg.DailyRevenue(ctx, []string{"2025-05-04", "2025-05-05"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-05-04"}, missing)
	require.Len(t, series, 2)
	assert.True(t, series[0].Revenue.IsZero())
	assert.Equal(t, int64(0), series[0].Orders)
	assert.True(t, series[1].Revenue.Equal(decimal.RequireFromString("127.60")), "revenue %s", series[1].Revenue)
	assert.Equal(t, int64(2), series[1].Orders)

	top, err := agg.TopProducts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "burger", top[0].ProductID)
	assert.Equal(t, "Burger", top[0].Name)
	assert.Equal(t, int64(4), top[0].Quantity)
	assert.True(t, top[0].Revenue.Equal(decimal.RequireFromString("115.60")))

	revenue, orders, ok, err := agg.Totals(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(2), orders)
	assert.True(t, revenue.Equal(decimal.RequireFromString("127.60")))
}

func TestRedisAggregates_Empty(t *testing.T) {
	_, client := setupRedis(t)
	agg := storage.NewRedisAggregates(client, time.Hour)
	ctx := context.Background()

	_, missing, err := agg.DailyRevenue(ctx, []string{"2025-05-05"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-05-05"}, missing)

	top, err := agg.TopProducts(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, top)

	_, _, ok, err := agg.Totals(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
