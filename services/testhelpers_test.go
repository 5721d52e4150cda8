package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/yeremiapane/restaurant-backoffice/models"
	"github.com/yeremiapane/restaurant-backoffice/utils"
)

func init() {
	utils.InitLogger()
}

// fakeBackend is a stateful stand-in for the backend of record. It
// applies the same mutations the real one would, so the re-fetch after
// each successful call converges the client the way production does.
type fakeBackend struct {
	mu sync.Mutex

	inHouse []models.InHouseOrder
	online  []models.OnlineOrder
	details map[uint][]models.OrderLineItem

	// calls records every request path in arrival order.
	calls []string
	// payloads keeps the decoded body of the last request per path.
	payloads map[string]map[string]interface{}
	// fail maps a path to the error message it should reject with.
	fail map[string]string

	server *httptest.Server
}

func newFakeBackend() *fakeBackend {
	fb := &fakeBackend{
		details:  make(map[uint][]models.OrderLineItem),
		payloads: make(map[string]map[string]interface{}),
		fail:     make(map[string]string),
	}
	fb.server = httptest.NewServer(http.HandlerFunc(fb.handle))
	return fb
}

func (fb *fakeBackend) Close() {
	fb.server.Close()
}

func (fb *fakeBackend) URL() string {
	return fb.server.URL
}

func (fb *fakeBackend) failWith(path, message string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.fail[path] = message
}

func (fb *fakeBackend) callCount(path string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	n := 0
	for _, p := range fb.calls {
		if p == path {
			n++
		}
	}
	return n
}

func (fb *fakeBackend) callLog() []string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := make([]string, len(fb.calls))
	copy(out, fb.calls)
	return out
}

func (fb *fakeBackend) lastPayload(path string) map[string]interface{} {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.payloads[path]
}

func (fb *fakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	path := r.URL.Path
	fb.calls = append(fb.calls, path)

	var body map[string]interface{}
	_ = json.NewDecoder(r.Body).Decode(&body)
	fb.payloads[path] = body

	if msg, ok := fb.fail[path]; ok {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
		return
	}

	num := func(key string) uint {
		v, _ := body[key].(float64)
		return uint(v)
	}

	switch path {
	case "/api/user/adminSignIn":
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "backend-token"})

	case "/api/inhouseorder/list":
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"orders": fb.inHouse})

	case "/api/inhouseorder/getDetails":
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"order_details": fb.details[num("order_id")],
		})

	case "/api/inhouseorder/updateServedQuantity":
		orderID, productID := num("order_id"), num("product_id")
		quantity := int(body["quantity"].(float64))
		items := fb.details[orderID]
		for i := range items {
			if items[i].ProductID == productID {
				items[i].ServedQuantity = quantity
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Served quantity updated"})

	case "/api/inhouseorder/updateQuantity":
		orderID, productID := num("order_id"), num("product_id")
		served := int(body["served_quantity"].(float64))
		items := fb.details[orderID]
		for i := range items {
			if items[i].ProductID == productID {
				items[i].Quantity = served
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Quantity updated"})

	case "/api/inhouseorder/updateTableStatus":
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Table status updated"})

	case "/api/inhouseorder/updatePayment":
		orderID := num("order_id")
		for i := range fb.inHouse {
			if fb.inHouse[i].OrderID == orderID {
				fb.inHouse[i].Payment = models.PaymentPaid
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Payment updated"})

	case "/api/order/list":
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"orders": fb.online})

	case "/api/order/updateStatus":
		orderID := num("order_id")
		status, _ := body["status"].(string)
		for i := range fb.online {
			if fb.online[i].OrderID == orderID {
				fb.online[i].Status = status
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Order status updated"})

	default:
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "unknown endpoint"})
	}
}
