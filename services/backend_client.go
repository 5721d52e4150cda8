package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/yeremiapane/restaurant-backoffice/models"
)

// ErrServerUnavailable covers transport failures where no response was
// received at all. Callers surface it verbatim to the operator.
var ErrServerUnavailable = errors.New("server error, please try again later")

// ServerError is a non-success response from the backend. The backend's
// own message is preferred over anything generic.
type ServerError struct {
	Code    int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Code)
}

// BackendClient talks to the backend of record. Every call is a POST
// carrying the session token in the request header; a 200 status is the
// only success signal, anything else is an error.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client

	tokenMu sync.RWMutex
	token   string
}

func NewBackendClient(baseURL string) *BackendClient {
	return &BackendClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken installs the session token used on every subsequent call.
// Only the sign-in/out flow writes it.
func (c *BackendClient) SetToken(token string) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()
	c.token = token
}

func (c *BackendClient) ClearToken() {
	c.SetToken("")
}

func (c *BackendClient) Token() string {
	c.tokenMu.RLock()
	defer c.tokenMu.RUnlock()
	return c.token
}

// post sends one backend call and decodes the success payload into out.
// A missing response maps to ErrServerUnavailable, a non-200 response to
// a ServerError carrying the backend's message.
func (c *BackendClient) post(path string, payload interface{}, out interface{}) error {
	if payload == nil {
		payload = struct{}{}
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling request: %v", err)
	}

	url := fmt.Sprintf("%s/api/%s", c.baseURL, path)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("token", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &errResp)
		return &ServerError{Code: resp.StatusCode, Message: errResp.Message}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("error unmarshaling response: %v", err)
		}
	}
	return nil
}

// SignIn authenticates against the backend and returns the session token.
func (c *BackendClient) SignIn(username, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	err := c.post("user/adminSignIn", map[string]interface{}{
		"username": username,
		"password": password,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *BackendClient) ListInHouseOrders() ([]models.InHouseOrder, error) {
	var resp struct {
		Orders []models.InHouseOrder `json:"orders"`
	}
	if err := c.post("inhouseorder/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// GetOrderDetails fetches the line items for one in-house order. The
// derived status is filled in on the way out.
func (c *BackendClient) GetOrderDetails(orderID uint) ([]models.OrderLineItem, error) {
	var resp struct {
		OrderDetails []models.OrderLineItem `json:"order_details"`
	}
	err := c.post("inhouseorder/getDetails", map[string]interface{}{
		"order_id": orderID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	for i := range resp.OrderDetails {
		resp.OrderDetails[i].Status = resp.OrderDetails[i].DeriveStatus()
	}
	return resp.OrderDetails, nil
}

// UpdateServedQuantity marks an item fully served by raising
// served_quantity to the given quantity.
func (c *BackendClient) UpdateServedQuantity(orderID, productID uint, quantity int) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.post("inhouseorder/updateServedQuantity", map[string]interface{}{
		"order_id":   orderID,
		"product_id": productID,
		"quantity":   quantity,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// UpdateQuantity voids the unserved remainder of an item by lowering
// quantity to what has already been served. Not a delete: the served
// part keeps its accounting effect.
func (c *BackendClient) UpdateQuantity(orderID, productID uint, servedQuantity int) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.post("inhouseorder/updateQuantity", map[string]interface{}{
		"order_id":        orderID,
		"product_id":      productID,
		"served_quantity": servedQuantity,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *BackendClient) UpdateTableStatus(seatID uint, availability int) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.post("inhouseorder/updateTableStatus", models.Seat{
		SeatID:       seatID,
		Availability: availability,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *BackendClient) UpdatePayment(orderID uint) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.post("inhouseorder/updatePayment", map[string]interface{}{
		"order_id": orderID,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *BackendClient) ListOnlineOrders() ([]models.OnlineOrder, error) {
	var resp struct {
		Orders []models.OnlineOrder `json:"orders"`
	}
	if err := c.post("order/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

func (c *BackendClient) UpdateOnlineOrderStatus(orderID uint, status string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.post("order/updateStatus", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *BackendClient) ListProducts() ([]models.Product, error) {
	var resp struct {
		Products []models.Product `json:"products"`
	}
	if err := c.post("product/listall", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

func (c *BackendClient) AddProduct(p models.Product) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.post("product/add", p, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *BackendClient) EditProduct(p models.Product) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.post("product/edit", p, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *BackendClient) RemoveProduct(productID uint) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.post("product/remove", map[string]interface{}{
		"product_id": productID,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *BackendClient) ListStaff() ([]models.Staff, error) {
	var resp struct {
		Users []models.Staff `json:"users"`
	}
	if err := c.post("user/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (c *BackendClient) AddStaff(username, password, name, role string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.post("user/add", map[string]interface{}{
		"username": username,
		"password": password,
		"name":     name,
		"role":     role,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *BackendClient) EditStaff(s models.Staff) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.post("user/edit", s, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *BackendClient) RemoveStaff(userID uint) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.post("user/remove", map[string]interface{}{
		"user_id": userID,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}
