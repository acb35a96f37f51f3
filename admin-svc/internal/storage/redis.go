package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"overcooked-storefront/admin-svc/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: ttl}
}

func (s *RedisSessionStore) SessionKey(token string) string {
	return "session:" + token
}

func (s *RedisSessionStore) Create(ctx context.Context, session domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.SessionKey(session.Token), payload, s.TTL).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	payload, err := s.Client.Get(ctx, s.SessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	return s.Client.Del(ctx, s.SessionKey(token)).Err()
}

const (
	keyProductQty     = "dashboard:products:quantity"
	keyProductRevenue = "dashboard:products:revenue"
	keyProductNames   = "dashboard:products:names"
	keyRevenueTotal   = "dashboard:revenue:total"
	keyOrdersTotal    = "dashboard:orders:total"
)

// RedisAggregates keeps running dashboard counters. Money is stored in cents.
type RedisAggregates struct {
	Client    *redis.Client
	Retention time.Duration
}

func NewRedisAggregates(client *redis.Client, retention time.Duration) *RedisAggregates {
	return &RedisAggregates{Client: client, Retention: retention}
}

func dailyRevenueKey(date string) string { return "dashboard:revenue:daily:" + date }
func dailyOrdersKey(date string) string  { return "dashboard:orders:daily:" + date }

func cents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

func fromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}

// RecordOrder adds an order to the counters of the given day.
func (a *RedisAggregates) RecordOrder(ctx context.Context, date string, msg domain.OrderPlacedMessage) error {
	_, err := a.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		total := cents(msg.Total)
		pipe.IncrBy(ctx, dailyRevenueKey(date), total)
		pipe.Expire(ctx, dailyRevenueKey(date), a.Retention)
		pipe.Incr(ctx, dailyOrdersKey(date))
		pipe.Expire(ctx, dailyOrdersKey(date), a.Retention)
		pipe.IncrBy(ctx, keyRevenueTotal, total)
		pipe.Incr(ctx, keyOrdersTotal)

		for _, item := range msg.Items {
			lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			pipe.ZIncrBy(ctx, keyProductQty, float64(item.Quantity), item.ProductID)
			pipe.ZIncrBy(ctx, keyProductRevenue, float64(cents(lineTotal)), item.ProductID)
			pipe.HSet(ctx, keyProductNames, item.ProductID, item.Name)
		}
		return nil
	})
	return err
}

// DailyRevenue returns one entry per date. Dates without counters come back
// zeroed and are listed in missing; they had no orders, or their keys were
// flushed or expired.
func (a *RedisAggregates) DailyRevenue(ctx context.Context, dates []string) (series []domain.DailyRevenue, missing []string, err error) {
	if len(dates) == 0 {
		return nil, nil, nil
	}

	keys := make([]string, 0, len(dates)*2)
	for _, date := range dates {
		keys = append(keys, dailyRevenueKey(date), dailyOrdersKey(date))
	}
	values, err := a.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, nil, err
	}

	series = make([]domain.DailyRevenue, 0, len(dates))
	for i, date := range dates {
		revenue, hasRevenue := parseCounter(values[2*i])
		orders, _ := parseCounter(values[2*i+1])
		if !hasRevenue {
			missing = append(missing, date)
		}
		series = append(series, domain.DailyRevenue{Date: date, Revenue: fromCents(revenue), Orders: orders})
	}
	return series, missing, nil
}

func (a *RedisAggregates) TopProducts(ctx context.Context, limit int) ([]domain.ProductSales, error) {
	ranked, err := a.Client.ZRevRangeWithScores(ctx, keyProductQty, 0, int64(limit-1)).Result()
	if err != nil || len(ranked) == 0 {
		return nil, err
	}

	ids := make([]string, 0, len(ranked))
	for _, z := range ranked {
		ids = append(ids, z.Member.(string))
	}
	names, err := a.Client.HMGet(ctx, keyProductNames, ids...).Result()
	if err != nil {
		return nil, err
	}

	products := make([]domain.ProductSales, 0, len(ranked))
	for i, z := range ranked {
		revenue, err := a.Client.ZScore(ctx, keyProductRevenue, ids[i]).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, err
		}
		name, _ := names[i].(string)
		products = append(products, domain.ProductSales{
			ProductID: ids[i],
			Name:      name,
			Quantity:  int64(z.Score),
			Revenue:   fromCents(int64(revenue)),
		})
	}
	return products, nil
}

// Totals reports ok=false when the counters do not exist.
func (a *RedisAggregates) Totals(ctx context.Context) (revenue decimal.Decimal, orders int64, ok bool, err error) {
	values, err := a.Client.MGet(ctx, keyRevenueTotal, keyOrdersTotal).Result()
	if err != nil {
		return decimal.Zero, 0, false, err
	}
	total, ok := parseCounter(values[0])
	orders, _ = parseCounter(values[1])
	return fromCents(total), orders, ok, nil
}

func parseCounter(v interface{}) (int64, bool) {
	s, isString := v.(string)
	if !isString {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
