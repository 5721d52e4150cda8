package models

import "time"

// Payment flag values on an in-house order. The backend moves the flag
// 0 -> 1 exactly once, through the settlement flow.
const (
	PaymentOpen = 0
	PaymentPaid = 1
)

// InHouseOrder is one seated table's open order as reported by the
// backend. Line items are fetched separately and live in the order store,
// keyed by OrderID; a missing entry means "not yet loaded", not "empty".
type InHouseOrder struct {
	OrderID   uint      `json:"order_id"`
	SeatID    uint      `json:"seat_id"`
	OrderDate time.Time `json:"order_date"`
	Payment   int       `json:"payment"`
	Subtotal  float64   `json:"subtotal"`
}

func (o *InHouseOrder) Paid() bool {
	return o.Payment == PaymentPaid
}

// ItemsToPrepare returns the line items that still have an unserved
// remainder. Display partition only; completion checks use the same
// predicate per item.
func ItemsToPrepare(items []OrderLineItem) []OrderLineItem {
	var out []OrderLineItem
	for _, it := range items {
		if it.Outstanding() {
			out = append(out, it)
		}
	}
	return out
}

// ServedItems returns the line items with anything served at all,
// partially served ones included. Overlaps with ItemsToPrepare.
func ServedItems(items []OrderLineItem) []OrderLineItem {
	var out []OrderLineItem
	for _, it := range items {
		if it.ServedQuantity != 0 {
			out = append(out, it)
		}
	}
	return out
}
