// Package orderbookv1 holds the persistent order book for fixed power
// delivery intervals. An OrderBook is one immutable version of the book:
// every operation is a pure function returning the next version, and prior
// versions stay valid for any reader still holding them. Versions share the
// unchanged parts of their sequences, so deriving a new version costs
// O(log n) rather than a full copy.
package orderbookv1

import (
	"fmt"
	"time"

	"github.com/powerex/intraday/pkg/immutable"
	"github.com/shopspring/decimal"
)

// Seeding constants for one trading day: 96 consecutive quarter-hour blocks.
const (
	SeedBlocks    = 96
	BlockDuration = 15 * time.Minute
)

// Exact seed quantities: 10 MW per block, bids from 60.0 stepping down and
// asks from 65.0 stepping up by 0.1 EUR/MWh per block.
var (
	seedVolumeMW = decimal.New(10, 0)
	seedBidBase  = decimal.New(600, -1)
	seedAskBase  = decimal.New(650, -1)
)

// OrderBook is an immutable snapshot of both sides of the book. bids are
// ordered by bidBefore (price descending, delivery start ascending) and asks
// by askBefore (price ascending, delivery start ascending). Instances must
// never be mutated after construction; operations that change nothing return
// the receiver itself.
type OrderBook struct {
	bids *immutable.List[TradeOrder]
	asks *immutable.List[TradeOrder]
}

// NewOrderBook returns an empty book.
func NewOrderBook() *OrderBook {
	return &OrderBook{
		bids: immutable.New[TradeOrder](),
		asks: immutable.New[TradeOrder](),
	}
}

// Seed builds the opening book for one trading day: one bid ("B<i>") and one
// ask ("S<i>") per quarter-hour block starting at the day's midnight. The
// generated prices happen to come out pre-sorted, but the seed path does not
// rely on that: both sides are accumulated in a builder scratchpad, ordered
// once per batch, and converted to the persistent structure in a single step.
func Seed(day time.Time) *OrderBook {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	bids := immutable.NewBuilder[TradeOrder]()
	asks := immutable.NewBuilder[TradeOrder]()
	for i := 0; i < SeedBlocks; i++ {
		start := midnight.Add(time.Duration(i) * BlockDuration)
		step := decimal.New(int64(i), -1)

		bids.Append(TradeOrder{
			ID:            fmt.Sprintf("B%d", i),
			DeliveryStart: start,
			Duration:      BlockDuration,
			VolumeMW:      seedVolumeMW,
			PriceEurMWh:   seedBidBase.Sub(step),
			Side:          SideBuy,
		})
		asks.Append(TradeOrder{
			ID:            fmt.Sprintf("S%d", i),
			DeliveryStart: start,
			Duration:      BlockDuration,
			VolumeMW:      seedVolumeMW,
			PriceEurMWh:   seedAskBase.Add(step),
			Side:          SideSell,
		})
	}
	bids.Sort(bidBefore)
	asks.Sort(askBefore)

	return &OrderBook{bids: bids.Build(), asks: asks.Build()}
}

// AddRange partitions orders by side and appends them at the end of the
// matching sequence in input order. It deliberately trades order-invariant
// preservation for throughput: appended orders land after the sorted portion
// regardless of price, so callers needing the sort invariant kept intact must
// use InsertSorted per order (or re-sort) instead. Existing elements are
// never reordered. An empty input returns the receiver unchanged.
func (b *OrderBook) AddRange(orders []TradeOrder) *OrderBook {
	bids, asks := b.bids, b.asks
	for _, o := range orders {
		mustSide(o.Side)
		if o.IsBuy() {
			bids = bids.Append(o)
		} else {
			asks = asks.Append(o)
		}
	}
	if bids == b.bids && asks == b.asks {
		return b
	}
	return &OrderBook{bids: bids, asks: asks}
}

// Cancel removes the first order whose ID equals orderID, scanning bids in
// sequence order before asks. At most one order is removed even when ids are
// duplicated. An unknown id is not an error: the receiver is returned
// unchanged.
func (b *OrderBook) Cancel(orderID string) *OrderBook {
	if i, ok := indexOfID(b.bids, orderID); ok {
		return &OrderBook{bids: b.bids.Remove(i), asks: b.asks}
	}
	if i, ok := indexOfID(b.asks, orderID); ok {
		return &OrderBook{bids: b.bids, asks: b.asks.Remove(i)}
	}
	return b
}

// MatchTopOfBook executes at most one trade: when the best bid and best ask
// cover the same delivery interval and the bid price is at or above the ask
// price, both top orders leave the book. In every other case, including an
// empty side, the receiver is returned unchanged. Callers wanting to exhaust
// all crossing pairs call repeatedly until the book stops changing; the
// operation never searches deeper than the two top elements.
func (b *OrderBook) MatchTopOfBook() *OrderBook {
	if b.bids.Len() == 0 || b.asks.Len() == 0 {
		return b
	}
	bid := b.bids.Get(0)
	ask := b.asks.Get(0)
	if !bid.DeliveryStart.Equal(ask.DeliveryStart) {
		return b
	}
	if bid.PriceEurMWh.Cmp(ask.PriceEurMWh) < 0 {
		return b
	}
	return &OrderBook{bids: b.bids.Remove(0), asks: b.asks.Remove(0)}
}

// InsertSorted places order into its side at the position preserving that
// side's sort invariant. A binary search locates the first resting order that
// outranks the new one; insertion lands just before it, which puts the new
// order to the right of any equal-key run (stable append-among-equals). The
// other side is returned by reference, not copied.
func (b *OrderBook) InsertSorted(order TradeOrder) *OrderBook {
	mustSide(order.Side)
	if order.IsBuy() {
		i := b.bids.Search(func(resting TradeOrder) bool {
			return bidBefore(order, resting)
		})
		return &OrderBook{bids: b.bids.Insert(i, order), asks: b.asks}
	}
	i := b.asks.Search(func(resting TradeOrder) bool {
		return askBefore(order, resting)
	})
	return &OrderBook{bids: b.bids, asks: b.asks.Insert(i, order)}
}

// BidCount returns the number of resting bids.
func (b *OrderBook) BidCount() int {
	return b.bids.Len()
}

// AskCount returns the number of resting asks.
func (b *OrderBook) AskCount() int {
	return b.asks.Len()
}

// Bids copies the bid sequence into a slice in book order.
func (b *OrderBook) Bids() []TradeOrder {
	return b.bids.Slice()
}

// Asks copies the ask sequence into a slice in book order.
func (b *OrderBook) Asks() []TradeOrder {
	return b.asks.Slice()
}

// BestBid returns the top bid, if any.
func (b *OrderBook) BestBid() (TradeOrder, bool) {
	if b.bids.Len() == 0 {
		return TradeOrder{}, false
	}
	return b.bids.Get(0), true
}

// BestAsk returns the top ask, if any.
func (b *OrderBook) BestAsk() (TradeOrder, bool) {
	if b.asks.Len() == 0 {
		return TradeOrder{}, false
	}
	return b.asks.Get(0), true
}

func indexOfID(side *immutable.List[TradeOrder], id string) (int, bool) {
	found := -1
	side.ForEach(func(i int, o TradeOrder) bool {
		if o.ID == id {
			found = i
			return false
		}
		return true
	})
	return found, found >= 0
}
