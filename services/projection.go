package services

import (
	"fmt"
	"time"

	"github.com/yeremiapane/restaurant-backoffice/models"
)

// DateRange is an optional inclusive calendar-date window. Either bound
// may be absent.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// ParseDateRange reads "2006-01-02" formatted bounds; empty strings
// leave the bound open.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	if start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid start date %q", start)
		}
		r.Start = &t
	}
	if end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid end date %q", end)
		}
		r.End = &t
	}
	return r, nil
}

// Contains compares on calendar dates, both bounds inclusive.
func (r DateRange) Contains(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if r.Start != nil {
		start := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, time.UTC)
		if day.Before(start) {
			return false
		}
	}
	if r.End != nil {
		end := time.Date(r.End.Year(), r.End.Month(), r.End.Day(), 0, 0, 0, 0, time.UTC)
		if day.After(end) {
			return false
		}
	}
	return true
}

// PartitionInHouse splits the snapshot into open orders and completed
// (paid) ones, the latter optionally date-bounded. Pure: re-derived on
// every call, nothing is kept.
func PartitionInHouse(orders []models.InHouseOrder, r DateRange) (open, completed []models.InHouseOrder) {
	for _, o := range orders {
		if !o.Paid() {
			open = append(open, o)
			continue
		}
		if r.Contains(o.OrderDate) {
			completed = append(completed, o)
		}
	}
	return open, completed
}

// PartitionOnline splits online orders into undelivered and delivered,
// with the same optional window on the delivered side.
func PartitionOnline(orders []models.OnlineOrder, r DateRange) (open, completed []models.OnlineOrder) {
	for _, o := range orders {
		if !o.Delivered() {
			open = append(open, o)
			continue
		}
		if r.Contains(o.OrderDate) {
			completed = append(completed, o)
		}
	}
	return open, completed
}
