package service

import (
	"context"
	"encoding/json"
	"time"

	"overcooked-storefront/admin-svc/internal/domain"
	"overcooked-storefront/pkg/logx"
)

const orderPlaced = "order_placed"

type Consumer struct {
	Reader     MessageReader
	Orders     OrderRepository
	Aggregates Aggregates
	Location   *time.Location
}

func NewConsumer(reader MessageReader, orders OrderRepository, aggregates Aggregates, loc *time.Location) *Consumer {
	if loc == nil {
		loc = time.UTC
	}
	return &Consumer{
		Reader:     reader,
		Orders:     orders,
		Aggregates: aggregates,
		Location:   loc,
	}
}

// Start reads order events until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	logx.Info().Msg("starting order consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logx.Info().Msg("order consumer stopped")
				return
			}
			logx.Error().Err(err).Msg("error reading message")
			continue
		}

		var msg domain.OrderPlacedMessage
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			logx.Error().Err(err).Str("key", string(message.Key)).Msg("error unmarshaling message")
			continue
		}

		if err := c.ProcessOrder(ctx, msg); err != nil {
			logx.Error().Err(err).Str("order_id", msg.OrderID).Msg("error processing order")
		}
	}
}

// ProcessOrder persists the order and, the first time it is seen, adds it to
// the dashboard counters.
func (c *Consumer) ProcessOrder(ctx context.Context, msg domain.OrderPlacedMessage) error {
	if msg.Type != orderPlaced || msg.OrderID == "" {
		return nil
	}

	inserted, err := c.Orders.SaveOrder(ctx, msg)
	if err != nil {
		return err
	}
	if !inserted {
		logx.Debug().Str("order_id", msg.OrderID).Msg("order already processed")
		return nil
	}

	date := msg.Timestamp.In(c.Location).Format(dateLayout)
	if err := c.Aggregates.RecordOrder(ctx, date, msg); err != nil {
		logx.Warn().Err(err).Str("order_id", msg.OrderID).Msg("failed to update dashboard aggregates")
	}

	logx.Info().Str("order_id", msg.OrderID).Int("items", len(msg.Items)).Str("total", msg.Total.StringFixed(2)).Msg("order recorded")
	return nil
}
