package models

import "time"

// Online order statuses driven by the operator dropdown.
const (
	OnlineStatusPreparing = "preparing"
	OnlineStatusDelivery  = "out for delivery"
	OnlineStatusDelivered = "delivered"
)

type OnlineOrder struct {
	OrderID   uint      `json:"order_id"`
	OrderDate time.Time `json:"order_date"`
	Status    string    `json:"status"`
	Amount    float64   `json:"amount"`
}

func (o *OnlineOrder) Delivered() bool {
	return o.Status == OnlineStatusDelivered
}
