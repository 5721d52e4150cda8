package models

// Item status values as shown to the operator. Only "preparing" and
// "complete" describe an item at rest; "cancel" is an action the operator
// selects, never a stored state.
const (
	ItemStatusPreparing = "preparing"
	ItemStatusComplete  = "complete"
	ItemStatusCancel    = "cancel"
)

type OrderLineItem struct {
	OrderID        uint    `json:"order_id"`
	ProductID      uint    `json:"product_id"`
	ProductName    string  `json:"product_name"`
	Quantity       int     `json:"quantity"`
	ServedQuantity int     `json:"served_quantity"`
	Price          float64 `json:"price"`
	// Status is derived from the quantity pair on every fetch; the
	// backend never stores it.
	Status string `json:"status,omitempty"`
}

// DeriveStatus reconstructs the display status from the quantity pair.
// The degenerate 0/0 item stays "preparing".
func (it *OrderLineItem) DeriveStatus() string {
	if it.Quantity > 0 && it.ServedQuantity == it.Quantity {
		return ItemStatusComplete
	}
	return ItemStatusPreparing
}

// Outstanding reports whether the item still has an unserved remainder.
func (it *OrderLineItem) Outstanding() bool {
	return it.Quantity != it.ServedQuantity
}
