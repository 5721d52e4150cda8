package services

import (
	"errors"
	"fmt"

	"github.com/yeremiapane/restaurant-backoffice/models"
	"github.com/yeremiapane/restaurant-backoffice/utils"
)

// Settlement phases, in the order they run. Releasing the seat comes
// first; the order is marked paid only once the table is free.
const (
	PhaseTableRelease = "table_release"
	PhasePayment      = "payment"
)

// ErrOrderNotFulfilled rejects a confirmation attempt while unserved
// items remain. Raised before any backend call.
var ErrOrderNotFulfilled = errors.New("Order not fulfilled")

// SettlementError reports which phase a failed settlement reached. A
// failure in the payment phase leaves a freed table and an unpaid order;
// there is no automatic compensation, the operator reconciles manually.
type SettlementError struct {
	Phase string
	Err   error
}

func (e *SettlementError) Error() string {
	return fmt.Sprintf("settlement failed at %s: %v", e.Phase, e.Err)
}

func (e *SettlementError) Unwrap() error {
	return e.Err
}

// SettlementService runs the two-step side effect of payment
// confirmation as a single logical unit with a fixed ordering.
type SettlementService struct {
	Client      *BackendClient
	Store       *OrderStore
	Fulfillment *FulfillmentService
}

func NewSettlementService(client *BackendClient, store *OrderStore, fulfillment *FulfillmentService) *SettlementService {
	return &SettlementService{Client: client, Store: store, Fulfillment: fulfillment}
}

// ConfirmPayment settles one in-house order:
//
//  1. release the seat (availability -> 1),
//  2. mark the order paid.
//
// Step 2 never runs if step 1 fails. Precondition: no outstanding line
// items; a violation short-circuits with ErrOrderNotFulfilled before
// anything goes on the wire. On full success the in-house collection is
// re-fetched and the current-order selection cleared.
func (ss *SettlementService) ConfirmPayment(order models.InHouseOrder) error {
	outstanding, loaded := ss.Fulfillment.Outstanding(order.OrderID)
	if !loaded {
		fetched, err := ss.Fulfillment.RefreshDetails(order.OrderID)
		if err != nil {
			return err
		}
		outstanding = models.ItemsToPrepare(fetched)
	}
	if len(outstanding) > 0 {
		return ErrOrderNotFulfilled
	}

	if _, err := ss.Client.UpdateTableStatus(order.SeatID, models.SeatAvailable); err != nil {
		return &SettlementError{Phase: PhaseTableRelease, Err: err}
	}
	utils.InfoLogger.Printf("Seat %d released for order %d", order.SeatID, order.OrderID)

	if _, err := ss.Client.UpdatePayment(order.OrderID); err != nil {
		// Known inconsistency window: the seat is already free but
		// the order is still unpaid. Reported, never rolled back.
		utils.ErrorLogger.Printf("Order %d: seat freed but payment not recorded: %v", order.OrderID, err)
		return &SettlementError{Phase: PhasePayment, Err: err}
	}
	utils.InfoLogger.Printf("Payment confirmed for order %d", order.OrderID)

	if orders, err := ss.Client.ListInHouseOrders(); err != nil {
		utils.ErrorLogger.Printf("(ConfirmPayment) refresh in-house orders: %v", err)
	} else {
		ss.Store.SetInHouseOrders(orders)
	}
	ss.Store.DropDetails(order.OrderID)
	ss.Store.ClearCurrentOrder()
	return nil
}
