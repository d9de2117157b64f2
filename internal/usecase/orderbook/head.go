// Package orderbook manages which version of the persistent book is
// "current". The core operations are pure and version-producing; this layer
// is the coordinating caller the core leaves out: writers derive the next
// version under a single-writer lock and publish it through an atomically
// swapped pointer, while readers load whatever version is current without
// ever blocking. Readers holding an older version keep a fully valid book.
package orderbook

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	orderbookv1 "github.com/powerex/intraday/internal/domain/orderbook/v1"
	snapshotv1 "github.com/powerex/intraday/internal/domain/snapshot/v1"
	"github.com/powerex/intraday/pkg/logger"
)

// Head is the atomically swapped reference to the current book version.
type Head struct {
	mu      sync.Mutex // serializes writers; readers never take it
	current atomic.Pointer[orderbookv1.OrderBook]
	logger  *logger.Logger
}

// NewHead returns a head pointing at an empty book.
func NewHead(log *logger.Logger) *Head {
	h := &Head{logger: log}
	h.current.Store(orderbookv1.NewOrderBook())
	return h
}

// Current returns the book version that is current right now. The returned
// book never changes; later writes move the head to new versions instead.
func (h *Head) Current() *orderbookv1.OrderBook {
	return h.current.Load()
}

// Seed replaces the current version with the opening book for day.
func (h *Head) Seed(ctx context.Context, day time.Time) *orderbookv1.OrderBook {
	h.mu.Lock()
	defer h.mu.Unlock()

	book := orderbookv1.Seed(day)
	h.current.Store(book)

	h.logger.InfoContext(ctx, "Book seeded",
		logger.Field{Key: "tradingDay", Value: day.Format("2006-01-02")},
		logger.Field{Key: "bids", Value: book.BidCount()},
		logger.Field{Key: "asks", Value: book.AskCount()},
	)
	return book
}

// AddRange bulk-appends a batch of incoming orders and publishes the result.
// The appended tail is unsorted until the caller follows up with sorted
// insertion or a re-seed; see the core operation's contract.
func (h *Head) AddRange(ctx context.Context, orders []orderbookv1.TradeOrder) *orderbookv1.OrderBook {
	h.mu.Lock()
	defer h.mu.Unlock()

	book := h.current.Load().AddRange(orders)
	h.current.Store(book)

	h.logger.InfoContext(ctx, "Batch appended",
		logger.Field{Key: "orders", Value: len(orders)},
		logger.Field{Key: "bids", Value: book.BidCount()},
		logger.Field{Key: "asks", Value: book.AskCount()},
	)
	return book
}

// InsertSorted places one order at its sorted position and publishes the result.
func (h *Head) InsertSorted(ctx context.Context, order orderbookv1.TradeOrder) *orderbookv1.OrderBook {
	h.mu.Lock()
	defer h.mu.Unlock()

	book := h.current.Load().InsertSorted(order)
	h.current.Store(book)

	h.logger.InfoContext(ctx, "Order inserted",
		logger.Field{Key: "orderID", Value: order.ID},
		logger.Field{Key: "side", Value: order.Side},
		logger.Field{Key: "priceEurMWh", Value: order.PriceEurMWh},
		logger.Field{Key: "deliveryStart", Value: order.DeliveryStart},
	)
	return book
}

// Cancel removes the first order matching orderID and reports whether the
// book changed. An unknown id leaves the head untouched.
func (h *Head) Cancel(ctx context.Context, orderID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	prev := h.current.Load()
	book := prev.Cancel(orderID)
	if book == prev {
		h.logger.WarnContext(ctx, "Cancel for unknown order",
			logger.Field{Key: "orderID", Value: orderID},
		)
		return false
	}
	h.current.Store(book)

	h.logger.InfoContext(ctx, "Order cancelled",
		logger.Field{Key: "orderID", Value: orderID},
		logger.Field{Key: "bids", Value: book.BidCount()},
		logger.Field{Key: "asks", Value: book.AskCount()},
	)
	return true
}

// MatchTopOfBook attempts a single top-of-book trade and reports whether one
// executed. Callers sweep by invoking it until it returns false.
func (h *Head) MatchTopOfBook(ctx context.Context) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	prev := h.current.Load()
	bid, _ := prev.BestBid()
	ask, _ := prev.BestAsk()

	book := prev.MatchTopOfBook()
	if book == prev {
		return false
	}
	h.current.Store(book)

	h.logger.InfoContext(ctx, "Trade executed",
		logger.Field{Key: "bidOrderID", Value: bid.ID},
		logger.Field{Key: "askOrderID", Value: ask.ID},
		logger.Field{Key: "bidPriceEurMWh", Value: bid.PriceEurMWh},
		logger.Field{Key: "askPriceEurMWh", Value: ask.PriceEurMWh},
		logger.Field{Key: "deliveryStart", Value: bid.DeliveryStart},
	)
	return true
}

// Snapshot captures the current version as a value view for rendering or
// external serialization.
func (h *Head) Snapshot() *snapshotv1.Snapshot {
	book := h.current.Load()

	return &snapshotv1.Snapshot{
		TakenAt: time.Now().UTC(),
		Bids:    bookOrders(book.Bids()),
		Asks:    bookOrders(book.Asks()),
	}
}

func bookOrders(orders []orderbookv1.TradeOrder) []snapshotv1.BookOrder {
	out := make([]snapshotv1.BookOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, snapshotv1.BookOrder{
			OrderID:       o.ID,
			Side:          string(o.Side),
			DeliveryStart: o.DeliveryStart,
			Duration:      o.Duration,
			VolumeMW:      o.VolumeMW,
			PriceEurMWh:   o.PriceEurMWh,
		})
	}
	return out
}
