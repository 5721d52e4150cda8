package models

// Seat availability as the backend stores it.
const (
	SeatOccupied  = 0
	SeatAvailable = 1
)

// Seat is the table reference an open in-house order points at. Freeing
// the seat is the first settlement phase, not a side effect of payment.
type Seat struct {
	SeatID       uint `json:"seat_id"`
	Availability int  `json:"availability"`
}
