package services

import (
	"sync"

	"github.com/yeremiapane/restaurant-backoffice/models"
)

// OrderStore is the process-wide snapshot of what the backend last told
// us: the two order collections, the per-order line-item map and the
// current order selected for settlement. It never originates state; the
// backend stays the single source of truth and every successful mutation
// is followed by a re-fetch into this store.
type OrderStore struct {
	mu sync.RWMutex

	inHouse []models.InHouseOrder
	online  []models.OnlineOrder
	// details is keyed by order id. Absence means "not yet loaded",
	// not "empty order".
	details map[uint][]models.OrderLineItem

	currentOrder *models.InHouseOrder
}

func NewOrderStore() *OrderStore {
	return &OrderStore{
		details: make(map[uint][]models.OrderLineItem),
	}
}

func (s *OrderStore) SetInHouseOrders(orders []models.InHouseOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inHouse = orders
}

func (s *OrderStore) InHouseOrders() []models.InHouseOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.InHouseOrder, len(s.inHouse))
	copy(out, s.inHouse)
	return out
}

func (s *OrderStore) InHouseOrder(orderID uint) (models.InHouseOrder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.inHouse {
		if o.OrderID == orderID {
			return o, true
		}
	}
	return models.InHouseOrder{}, false
}

func (s *OrderStore) SetOnlineOrders(orders []models.OnlineOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.online = orders
}

func (s *OrderStore) OnlineOrders() []models.OnlineOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.OnlineOrder, len(s.online))
	copy(out, s.online)
	return out
}

func (s *OrderStore) SetDetails(orderID uint, items []models.OrderLineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details[orderID] = items
}

// Details returns the loaded line items for an order. The second result
// distinguishes "not loaded" from "loaded and empty".
func (s *OrderStore) Details(orderID uint) ([]models.OrderLineItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, ok := s.details[orderID]
	if !ok {
		return nil, false
	}
	out := make([]models.OrderLineItem, len(items))
	copy(out, items)
	return out, true
}

// DropDetails forgets the line items of an order, used once an order is
// paid and leaves the fulfillment flow.
func (s *OrderStore) DropDetails(orderID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.details, orderID)
}

func (s *OrderStore) SetCurrentOrder(order models.InHouseOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := order
	s.currentOrder = &o
}

func (s *OrderStore) CurrentOrder() (models.InHouseOrder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentOrder == nil {
		return models.InHouseOrder{}, false
	}
	return *s.currentOrder, true
}

// ClearCurrentOrder drops the selection so a confirmation dialog cannot
// be replayed against stale state.
func (s *OrderStore) ClearCurrentOrder() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentOrder = nil
}

// Reset empties every collection, used on sign-out.
func (s *OrderStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inHouse = nil
	s.online = nil
	s.details = make(map[uint][]models.OrderLineItem)
	s.currentOrder = nil
}
