package service

import (
	"context"
	"time"

	"overcooked-storefront/admin-svc/internal/domain"
	"overcooked-storefront/pkg/logx"

	"github.com/shopspring/decimal"
)

const (
	dateLayout       = "2006-01-02"
	topProductsLimit = 5
	recentOrderLimit = 10
)

// DashboardService reads the Redis counters first and falls back to
// PostgreSQL when they are missing or Redis is unavailable.
type DashboardService struct {
	orders     OrderRepository
	aggregates Aggregates
	loc        *time.Location
	now        func() time.Time
}

func NewDashboardService(orders OrderRepository, aggregates Aggregates, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{orders: orders, aggregates: aggregates, loc: loc, now: time.Now}
}

func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

func (s *DashboardService) Dashboard(ctx context.Context, days int) (*domain.Dashboard, error) {
	if days <= 0 {
		days = 7
	}

	revenue, err := s.revenueSeries(ctx, days)
	if err != nil {
		return nil, err
	}
	top, err := s.topProducts(ctx)
	if err != nil {
		return nil, err
	}
	total, count, err := s.totals(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.orders.RecentOrders(ctx, recentOrderLimit)
	if err != nil {
		return nil, err
	}

	return &domain.Dashboard{
		TotalRevenue: total,
		OrderCount:   count,
		Revenue:      revenue,
		TopProducts:  top,
		RecentOrders: recent,
	}, nil
}

func (s *DashboardService) RecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = recentOrderLimit
	}
	return s.orders.RecentOrders(ctx, limit)
}

func (s *DashboardService) revenueSeries(ctx context.Context, days int) ([]domain.DailyRevenue, error) {
	today := s.now().In(s.loc)
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, -(days - 1))

	dates := make([]string, days)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i).Format(dateLayout)
	}

	series, missing, err := s.aggregates.DailyRevenue(ctx, dates)
	if err == nil && len(missing) == 0 {
		return series, nil
	}
	if err != nil || len(series) != len(dates) {
		if err != nil {
			logx.Warn().Err(err).Msg("redis revenue unavailable, using database")
		}
		series = make([]domain.DailyRevenue, len(dates))
		for i, date := range dates {
			series[i] = domain.DailyRevenue{Date: date, Revenue: decimal.Zero}
		}
		missing = dates
	}

	rows, err := s.orders.RevenueSince(ctx, start, s.loc)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]domain.DailyRevenue, len(rows))
	for _, row := range rows {
		byDate[row.Date] = row
	}

	// Only days Redis has no counters for are taken from the database.
	fill := make(map[string]bool, len(missing))
	for _, date := range missing {
		fill[date] = true
	}
	for i := range series {
		if row, found := byDate[series[i].Date]; found && fill[series[i].Date] {
			series[i] = row
		}
	}
	return series, nil
}

func (s *DashboardService) topProducts(ctx context.Context) ([]domain.ProductSales, error) {
	top, err := s.aggregates.TopProducts(ctx, topProductsLimit)
	if err == nil && len(top) > 0 {
		return top, nil
	}
	if err != nil {
		logx.Warn().Err(err).Msg("redis top products unavailable, using database")
	}
	return s.orders.TopProducts(ctx, topProductsLimit)
}

func (s *DashboardService) totals(ctx context.Context) (decimal.Decimal, int64, error) {
	revenue, count, ok, err := s.aggregates.Totals(ctx)
	if err == nil && ok {
		return revenue, count, nil
	}
	if err != nil {
		logx.Warn().Err(err).Msg("redis totals unavailable, using database")
	}
	return s.orders.Totals(ctx)
}
