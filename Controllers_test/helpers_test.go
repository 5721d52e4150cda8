package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/yeremiapane/restaurant-backoffice/config"
	"github.com/yeremiapane/restaurant-backoffice/database"
	"github.com/yeremiapane/restaurant-backoffice/models"
	"github.com/yeremiapane/restaurant-backoffice/router"
	"github.com/yeremiapane/restaurant-backoffice/services"
	"github.com/yeremiapane/restaurant-backoffice/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
}

// fakeBackend mimics just enough of the backend of record for the
// handler tests: sign-in, both order collections, details and the
// settlement calls.
type fakeBackend struct {
	mu       sync.Mutex
	inHouse  []models.InHouseOrder
	online   []models.OnlineOrder
	details  map[uint][]models.OrderLineItem
	calls    []string
	fail     map[string]string
	server   *httptest.Server
	adminJWT string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	fb := &fakeBackend{
		details: make(map[uint][]models.OrderLineItem),
		fail:    make(map[string]string),
	}

	// The backend token carries account type 0 for admins; the console
	// reads it without verifying.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"type": 0.0})
	signed, err := token.SignedString([]byte("upstream-secret"))
	if err != nil {
		t.Fatalf("signing fake backend token: %v", err)
	}
	fb.adminJWT = signed

	fb.server = httptest.NewServer(http.HandlerFunc(fb.handle))
	t.Cleanup(fb.server.Close)
	return fb
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

func (fb *fakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	path := r.URL.Path
	fb.calls = append(fb.calls, path)

	var body map[string]interface{}
	_ = json.NewDecoder(r.Body).Decode(&body)

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
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid Username or Password"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"token": fb.adminJWT})

	case "/api/inhouseorder/list":
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"orders": fb.inHouse})

	case "/api/inhouseorder/getDetails":
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"order_details": fb.details[num("order_id")]})

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

	case "/api/inhouseorder/updateTableStatus", "/api/inhouseorder/updatePayment":
		if path == "/api/inhouseorder/updatePayment" {
			orderID := num("order_id")
			for i := range fb.inHouse {
				if fb.inHouse[i].OrderID == orderID {
					fb.inHouse[i].Payment = models.PaymentPaid
				}
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})

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

	case "/api/product/listall":
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"products": []models.Product{}})

	case "/api/user/list":
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"users": []models.Staff{}})

	default:
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "unknown endpoint"})
	}
}

type consoleFixture struct {
	backend *fakeBackend
	engine  *gin.Engine
	store   *services.OrderStore
	client  *services.BackendClient
	poller  *services.SyncPoller
	token   string
}

// newConsole wires the full console against a fake backend, with an
// in-memory local store and the default "confirm" passcode.
func newConsole(t *testing.T, fb *fakeBackend) *consoleFixture {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	sessions, err := database.NewSessionStore(db)
	if err != nil {
		t.Fatalf("migrate store: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("confirm"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash passcode: %v", err)
	}

	client := services.NewBackendClient(fb.server.URL)
	store := services.NewOrderStore()
	fulfillment := services.NewFulfillmentService(client, store)
	settlement := services.NewSettlementService(client, store, fulfillment)
	poller := services.NewSyncPoller(client, store, fulfillment)
	t.Cleanup(poller.Stop)

	engine := router.SetupRouter(router.Deps{
		Config: &config.Config{
			BackendURL:             fb.server.URL,
			SettlementPasscodeHash: string(hashed),
		},
		Client:      client,
		Store:       store,
		Poller:      poller,
		Fulfillment: fulfillment,
		Settlement:  settlement,
		Sessions:    sessions,
	})

	consoleToken, err := utils.GenerateToken(t.Name(), models.RoleAdmin)
	if err != nil {
		t.Fatalf("console token: %v", err)
	}
	client.SetToken(fb.adminJWT)

	return &consoleFixture{
		backend: fb,
		engine:  engine,
		store:   store,
		client:  client,
		poller:  poller,
		token:   consoleToken,
	}
}

func (cf *consoleFixture) do(t *testing.T, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reqBody)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cf.token != "" {
		req.Header.Set("Authorization", "Bearer "+cf.token)
	}

	w := httptest.NewRecorder()
	cf.engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}
