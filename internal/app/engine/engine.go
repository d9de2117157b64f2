// Package engine drives one scripted trading session against the versioned
// book head: seed the configured delivery day, bulk-submit a generated batch
// of incoming orders, sorted-insert the aggressive ones, sweep the top of
// book for crossing pairs, cancel, and render the outcome.
package engine

import (
	"context"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	orderbookv1 "github.com/powerex/intraday/internal/domain/orderbook/v1"
	"github.com/powerex/intraday/internal/usecase/orderbook"
	"github.com/powerex/intraday/pkg/config"
	"github.com/powerex/intraday/pkg/errors"
	"github.com/powerex/intraday/pkg/logger"
	"github.com/powerex/intraday/pkg/util"
	"github.com/shopspring/decimal"
)

// Engine is the session driver for the intraday simulator.
type Engine struct {
	head   *orderbook.Head
	logger *logger.Logger
	config *config.Config
	opts   *Options
	rng    *rand.Rand
}

// NewEngine creates a new Engine with the default options.
func NewEngine(head *orderbook.Head, log *logger.Logger, cfg *config.Config) *Engine {
	return NewEngineWithOptions(head, log, cfg, DefaultEngineOptions())
}

// NewEngineWithOptions creates a new Engine with custom options.
func NewEngineWithOptions(head *orderbook.Head, log *logger.Logger, cfg *config.Config, opts *Options) *Engine {
	return &Engine{
		head:   head,
		logger: log.WithFields(logger.Field{Key: "area", Value: cfg.Session.Area}),
		config: cfg,
		opts:   opts,
		rng:    rand.New(rand.NewSource(cfg.Session.RandSeed)),
	}
}

// Run executes one scripted session. Every log line of the run carries the
// same generated request id.
func (e *Engine) Run(ctx context.Context) error {
	ctx = util.WithRequestID(ctx, "")

	day, err := e.config.Session.Day()
	if err != nil {
		e.logger.ErrorContext(ctx, err,
			logger.Field{Key: "tradingDay", Value: e.config.Session.TradingDay},
			logger.Field{Key: "severity", Value: errors.SeverityCritical},
		)
		return errors.Tracer(errors.SessionRunError).Wrap(err)
	}

	book := e.head.Seed(ctx, day)
	midnight := mustBestBidStart(book)

	// Bulk intake: the generated batch lands appended, not sorted; only the
	// aggressive orders below go through sorted insertion.
	e.head.AddRange(ctx, e.incomingBatch(midnight))

	// An aggressive bid/ask pair at noon tightens the noon block without
	// crossing the day's best ask.
	noon := midnight.Add(48 * orderbookv1.BlockDuration)
	e.head.InsertSorted(ctx, orderbookv1.NewTradeOrder(
		e.orderID(), noon, orderbookv1.BlockDuration,
		decimal.New(25, 0), decimal.New(820, -1), orderbookv1.SideBuy,
	))
	e.head.InsertSorted(ctx, orderbookv1.NewTradeOrder(
		e.orderID(), noon, orderbookv1.BlockDuration,
		decimal.New(25, 0), decimal.New(780, -1), orderbookv1.SideSell,
	))

	// A bid outranking everything, on the opening block: it tops the book,
	// shares the opening ask's delivery interval, and crosses its price, so
	// the sweep below trades exactly this pair and then stops.
	e.head.InsertSorted(ctx, orderbookv1.NewTradeOrder(
		e.orderID(), midnight, orderbookv1.BlockDuration,
		decimal.New(5, 0), decimal.New(830, -1), orderbookv1.SideBuy,
	))

	trades := 0
	for trades < e.opts.MatchSweepLimit && e.head.MatchTopOfBook(ctx) {
		trades++
	}
	e.logger.InfoContext(ctx, "Match sweep finished",
		logger.Field{Key: "trades", Value: trades},
	)

	e.head.Cancel(ctx, "B0")

	return e.render(ctx)
}

// incomingBatch generates orders inside the seeded spread, spread across the
// day's blocks, alternating sides.
func (e *Engine) incomingBatch(midnight time.Time) []orderbookv1.TradeOrder {
	orders := make([]orderbookv1.TradeOrder, 0, e.config.Session.IncomingOrders)
	for i := 0; i < e.config.Session.IncomingOrders; i++ {
		side := orderbookv1.SideBuy
		if i%2 == 1 {
			side = orderbookv1.SideSell
		}
		block := e.rng.Intn(orderbookv1.SeedBlocks)

		orders = append(orders, orderbookv1.NewTradeOrder(
			e.orderID(),
			midnight.Add(time.Duration(block)*orderbookv1.BlockDuration),
			orderbookv1.BlockDuration,
			decimal.New(5+e.rng.Int63n(20), 0),    // 5..24 MW
			decimal.New(610+e.rng.Int63n(30), -1), // 61.0..63.9 EUR/MWh
			side,
		))
	}
	return orders
}

// render logs the session outcome and proves the snapshot round-trips.
func (e *Engine) render(ctx context.Context) error {
	snap := e.head.Snapshot()
	buf, err := snap.Encode()
	if err != nil {
		e.logger.ErrorContext(ctx, err,
			logger.Field{Key: "severity", Value: errors.SeverityHigh},
		)
		return err
	}

	book := e.head.Current()
	fields := []logger.Field{
		{Key: "bids", Value: book.BidCount()},
		{Key: "asks", Value: book.AskCount()},
		{Key: "snapshotBytes", Value: len(buf)},
	}
	if bid, ok := book.BestBid(); ok {
		fields = append(fields,
			logger.Field{Key: "bestBidPriceEurMWh", Value: bid.PriceEurMWh},
			logger.Field{Key: "bestBidDelivery", Value: bid.DeliveryStart},
		)
	}
	if ask, ok := book.BestAsk(); ok {
		fields = append(fields,
			logger.Field{Key: "bestAskPriceEurMWh", Value: ask.PriceEurMWh},
			logger.Field{Key: "bestAskDelivery", Value: ask.DeliveryStart},
		)
	}
	e.logger.InfoContext(ctx, "Session finished", fields...)
	return nil
}

func (e *Engine) orderID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), e.rng).String()
}

// mustBestBidStart returns the delivery start of the opening block of a
// freshly seeded book.
func mustBestBidStart(book *orderbookv1.OrderBook) time.Time {
	bid, ok := book.BestBid()
	if !ok {
		panic("engine: seeded book has no bids")
	}
	return bid.DeliveryStart
}
