package services

import (
	"errors"
	"fmt"

	"github.com/yeremiapane/restaurant-backoffice/models"
	"github.com/yeremiapane/restaurant-backoffice/utils"
)

var (
	ErrUnknownStatus = errors.New("unknown item status")
	ErrItemNotFound  = errors.New("order item not found")
)

// FulfillmentService applies line-item transitions for in-house orders.
// Local state is never mutated optimistically: every successful backend
// call is followed by a re-fetch of the authoritative item set, so the
// store converges even when calls interleave with the poller.
type FulfillmentService struct {
	Client *BackendClient
	Store  *OrderStore
}

func NewFulfillmentService(client *BackendClient, store *OrderStore) *FulfillmentService {
	return &FulfillmentService{Client: client, Store: store}
}

// RefreshDetails re-fetches one order's line items into the store.
func (fs *FulfillmentService) RefreshDetails(orderID uint) ([]models.OrderLineItem, error) {
	items, err := fs.Client.GetOrderDetails(orderID)
	if err != nil {
		return nil, err
	}
	fs.Store.SetDetails(orderID, items)
	return items, nil
}

// LoadUnpaidDetails fetches line items for every open order. Paid orders
// never re-fetch their details; they are shown by date and id alone.
// Individual failures are logged and skipped.
func (fs *FulfillmentService) LoadUnpaidDetails() {
	for _, order := range fs.Store.InHouseOrders() {
		if order.Paid() {
			fs.Store.DropDetails(order.OrderID)
			continue
		}
		if _, err := fs.RefreshDetails(order.OrderID); err != nil {
			utils.ErrorLogger.Printf("(LoadUnpaidDetails) order %d: %v", order.OrderID, err)
		}
	}
}

// UpdateItemStatus performs the transition the operator selected for one
// line item. "complete" raises served_quantity to quantity; "cancel"
// lowers quantity to served_quantity, voiding the unserved remainder.
// The two converge on the same derived status but stay distinct backend
// calls because the inventory effect differs. "preparing" is the resting
// selection and performs nothing.
func (fs *FulfillmentService) UpdateItemStatus(orderID, productID uint, target string) (string, error) {
	item, err := fs.findItem(orderID, productID)
	if err != nil {
		return "", err
	}

	var message string
	switch target {
	case models.ItemStatusPreparing:
		return "", nil
	case models.ItemStatusComplete:
		message, err = fs.Client.UpdateServedQuantity(orderID, productID, item.Quantity)
	case models.ItemStatusCancel:
		message, err = fs.Client.UpdateQuantity(orderID, productID, item.ServedQuantity)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, target)
	}
	if err != nil {
		return "", err
	}

	if _, err := fs.RefreshDetails(orderID); err != nil {
		// The mutation went through; only the convergence fetch
		// failed. The next poll tick repairs the snapshot.
		utils.ErrorLogger.Printf("(UpdateItemStatus) refetch order %d: %v", orderID, err)
	}
	return message, nil
}

// Outstanding returns the order's unserved line items and whether its
// details are loaded at all.
func (fs *FulfillmentService) Outstanding(orderID uint) ([]models.OrderLineItem, bool) {
	items, loaded := fs.Store.Details(orderID)
	if !loaded {
		return nil, false
	}
	return models.ItemsToPrepare(items), true
}

func (fs *FulfillmentService) findItem(orderID, productID uint) (models.OrderLineItem, error) {
	items, loaded := fs.Store.Details(orderID)
	if !loaded {
		fetched, err := fs.RefreshDetails(orderID)
		if err != nil {
			return models.OrderLineItem{}, err
		}
		items = fetched
	}
	for _, it := range items {
		if it.ProductID == productID {
			return it, nil
		}
	}
	return models.OrderLineItem{}, ErrItemNotFound
}
