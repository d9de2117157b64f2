package engine

import (
	"context"
	"testing"

	orderbookv1 "github.com/powerex/intraday/internal/domain/orderbook/v1"
	"github.com/powerex/intraday/internal/usecase/orderbook"
	"github.com/powerex/intraday/pkg/config"
	"github.com/powerex/intraday/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "intraday-simulator",
			Environment: "test",
			LogLevel:    "error",
		},
		Session: config.SessionConfig{
			TradingDay:     "2025-01-15",
			Area:           "DE-LU",
			IncomingOrders: 2,
			RandSeed:       1,
		},
	}
}

func newTestEngine(t *testing.T, cfg *config.Config) (*Engine, *orderbook.Head) {
	t.Helper()
	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.ErrorLevel))
	require.NoError(t, err)

	head := orderbook.NewHead(log)
	return NewEngine(head, log, cfg), head
}

func TestEngine_Run(t *testing.T) {
	engine, head := newTestEngine(t, testConfig())

	require.NoError(t, engine.Run(context.Background()))

	book := head.Current()
	// 96 seeded + 1 batch + 2 sorted inserts, minus the traded pair and the
	// cancelled opening bid, on each side
	assert.Equal(t, orderbookv1.SeedBlocks+1, book.BidCount())
	assert.Equal(t, orderbookv1.SeedBlocks+1, book.AskCount())

	bid, ok := book.BestBid()
	require.True(t, ok)
	assert.True(t, bid.PriceEurMWh.Equal(decimal.New(820, -1)))

	ask, ok := book.BestAsk()
	require.True(t, ok)
	// the opening ask traded away; the next block's ask leads
	assert.Equal(t, "S1", ask.ID)
}

func TestEngine_Run_InvalidTradingDay(t *testing.T) {
	cfg := testConfig()
	cfg.Session.TradingDay = "not-a-date"
	engine, _ := newTestEngine(t, cfg)

	assert.Error(t, engine.Run(context.Background()))
}

func TestEngine_IncomingBatch(t *testing.T) {
	cfg := testConfig()
	cfg.Session.IncomingOrders = 10
	engine, _ := newTestEngine(t, cfg)

	day, err := cfg.Session.Day()
	require.NoError(t, err)

	batch := engine.incomingBatch(day)
	require.Len(t, batch, 10)

	low := decimal.New(610, -1)
	high := decimal.New(640, -1)
	for i, o := range batch {
		if i%2 == 0 {
			assert.Equal(t, orderbookv1.SideBuy, o.Side)
		} else {
			assert.Equal(t, orderbookv1.SideSell, o.Side)
		}
		assert.NotEmpty(t, o.ID)
		assert.True(t, o.PriceEurMWh.Cmp(low) >= 0)
		assert.True(t, o.PriceEurMWh.Cmp(high) < 0)
		assert.False(t, o.DeliveryStart.Before(day))
		assert.True(t, o.DeliveryStart.Before(day.Add(orderbookv1.SeedBlocks*orderbookv1.BlockDuration)))
	}
}
