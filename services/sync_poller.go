package services

import (
	"sync"
	"time"

	"github.com/yeremiapane/restaurant-backoffice/utils"
)

// SyncPoller re-fetches the order collections from the backend on a
// fixed period while a session token exists. There is exactly one poller
// per process; Start is idempotent so navigations can never stack
// duplicate timers. A failed tick logs and waits for the next one, the
// period itself is the retry mechanism.
type SyncPoller struct {
	Client      *BackendClient
	Store       *OrderStore
	Fulfillment *FulfillmentService
	Interval    time.Duration

	mu       sync.Mutex
	stopChan chan struct{}
}

func NewSyncPoller(client *BackendClient, store *OrderStore, fulfillment *FulfillmentService) *SyncPoller {
	return &SyncPoller{
		Client:      client,
		Store:       store,
		Fulfillment: fulfillment,
		Interval:    5 * time.Second,
	}
}

// Start launches the polling goroutine. Calling it while running is a
// no-op.
func (p *SyncPoller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopChan != nil {
		return
	}
	p.stopChan = make(chan struct{})

	go func(stop chan struct{}) {
		ticker := time.NewTicker(p.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				p.tick()
			case <-stop:
				return
			}
		}
	}(p.stopChan)

	utils.InfoLogger.Printf("Sync poller started (interval %v)", p.Interval)
}

// Stop tears the timer down. Safe to call when not running.
func (p *SyncPoller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopChan == nil {
		return
	}
	close(p.stopChan)
	p.stopChan = nil
	utils.InfoLogger.Println("Sync poller stopped")
}

func (p *SyncPoller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopChan != nil
}

// tick runs one refresh pass: online orders, then in-house orders, then
// line items for the open ones, sequentially. Each fetch tolerates
// failure on its own; a bad tick never cancels future ticks.
func (p *SyncPoller) tick() {
	// The token is re-read every tick so a sign-out mid-cycle stops
	// the fetching even before Stop lands.
	if p.Client.Token() == "" {
		return
	}

	if orders, err := p.Client.ListOnlineOrders(); err != nil {
		utils.ErrorLogger.Printf("(SyncPoller) online orders: %v", err)
	} else {
		p.Store.SetOnlineOrders(orders)
	}

	if orders, err := p.Client.ListInHouseOrders(); err != nil {
		utils.ErrorLogger.Printf("(SyncPoller) in-house orders: %v", err)
	} else {
		p.Store.SetInHouseOrders(orders)
	}

	p.Fulfillment.LoadUnpaidDetails()
}
