// Package snapshotv1 defines the value-typed view of one order book version.
// The book itself is memory-resident only; an integrating system that needs
// durability serializes this view with whatever transport it owns.
package snapshotv1

import (
	"encoding/json"
	"time"

	"github.com/powerex/intraday/pkg/errors"
	"github.com/shopspring/decimal"
)

// Snapshot represents both sides of one order book version at the moment it
// was taken.
type Snapshot struct {
	TakenAt time.Time   `json:"takenAt"`
	Bids    []BookOrder `json:"bids"`
	Asks    []BookOrder `json:"asks"`
}

// BookOrder represents a resting order in the snapshot with its details.
type BookOrder struct {
	OrderID       string          `json:"orderID"`
	Side          string          `json:"side"`
	DeliveryStart time.Time       `json:"deliveryStart"`
	Duration      time.Duration   `json:"duration"`
	VolumeMW      decimal.Decimal `json:"volumeMW"`
	PriceEurMWh   decimal.Decimal `json:"priceEurMWh"`
}

// Encode serializes the snapshot to JSON for external consumers.
func (s *Snapshot) Encode() ([]byte, error) {
	buf, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Tracer(errors.SnapshotMarshalError).Wrap(err)
	}
	return buf, nil
}

// Decode restores a snapshot from its JSON form.
func Decode(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Tracer(errors.SnapshotUnmarshalError).Wrap(err)
	}
	return &s, nil
}
