package orderbookv1

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Side identifies which half of the book an order belongs to.
type Side string

const (
	// SideBuy marks an order as a bid.
	SideBuy Side = "buy"
	// SideSell marks an order as an ask.
	SideSell Side = "sell"
)

// TradeOrder is an immutable order for one power delivery interval. Orders
// are plain values compared field by field; the ID carries whatever meaning
// the caller assigns it, and the book does not enforce its uniqueness.
type TradeOrder struct {
	ID            string          `json:"id"`
	DeliveryStart time.Time       `json:"deliveryStart"`
	Duration      time.Duration   `json:"duration"`
	VolumeMW      decimal.Decimal `json:"volumeMW"`
	PriceEurMWh   decimal.Decimal `json:"priceEurMWh"`
	Side          Side            `json:"side"`
}

// NewTradeOrder creates a new order for the given delivery interval. Volume
// and price are taken as-is; business validity is the caller's concern.
func NewTradeOrder(id string, start time.Time, duration time.Duration, volumeMW, priceEurMWh decimal.Decimal, side Side) TradeOrder {
	return TradeOrder{
		ID:            id,
		DeliveryStart: start,
		Duration:      duration,
		VolumeMW:      volumeMW,
		PriceEurMWh:   priceEurMWh,
		Side:          side,
	}
}

// IsBuy checks if the order is a bid (buy) order.
func (o TradeOrder) IsBuy() bool {
	return o.Side == SideBuy
}

// IsSell checks if the order is an ask (sell) order.
func (o TradeOrder) IsSell() bool {
	return o.Side == SideSell
}

// DeliveryEnd returns the end of the delivery interval.
func (o TradeOrder) DeliveryEnd() time.Time {
	return o.DeliveryStart.Add(o.Duration)
}

// mustSide panics when an order with a side outside {buy, sell} reaches an
// insertion path. That is a programming error in the caller, not a condition
// the book recovers from.
func mustSide(side Side) {
	switch side {
	case SideBuy, SideSell:
	default:
		panic(fmt.Sprintf("orderbook: unknown side %q", side))
	}
}
