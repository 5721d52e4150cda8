package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-backoffice/models"
	"github.com/yeremiapane/restaurant-backoffice/services"
	"github.com/yeremiapane/restaurant-backoffice/utils"
	"golang.org/x/crypto/bcrypt"
)

type InHouseOrderController struct {
	Store       *services.OrderStore
	Fulfillment *services.FulfillmentService
	Settlement  *services.SettlementService
	// PasscodeHash is the bcrypt hash of the supervisor passcode
	// required before a payment confirmation runs.
	PasscodeHash string
}

func NewInHouseOrderController(store *services.OrderStore, fulfillment *services.FulfillmentService, settlement *services.SettlementService, passcodeHash string) *InHouseOrderController {
	return &InHouseOrderController{
		Store:        store,
		Fulfillment:  fulfillment,
		Settlement:   settlement,
		PasscodeHash: passcodeHash,
	}
}

type inHouseOrderView struct {
	models.InHouseOrder
	ItemsToPrepare []models.OrderLineItem `json:"items_to_prepare"`
	ServedItems    []models.OrderLineItem `json:"served_items"`
	DetailsLoaded  bool                   `json:"details_loaded"`
}

// GetOrders returns the two display partitions: open orders with their
// outstanding/served item views, and paid orders optionally bounded by
// an inclusive date range. Both are re-derived from the snapshot on
// every request.
func (ic *InHouseOrderController) GetOrders(c *gin.Context) {
	dateRange, err := services.ParseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	open, completed := services.PartitionInHouse(ic.Store.InHouseOrders(), dateRange)

	views := make([]inHouseOrderView, 0, len(open))
	for _, order := range open {
		items, loaded := ic.Store.Details(order.OrderID)
		views = append(views, inHouseOrderView{
			InHouseOrder:   order,
			ItemsToPrepare: models.ItemsToPrepare(items),
			ServedItems:    models.ServedItems(items),
			DetailsLoaded:  loaded,
		})
	}

	utils.RespondJSON(c, http.StatusOK, "In-house orders", gin.H{
		"open_orders":      views,
		"completed_orders": completed,
	})
}

// GetOrderDetails serves the order summary popup: served lines with
// their amounts and the formatted subtotal.
func (ic *InHouseOrderController) GetOrderDetails(c *gin.Context) {
	var req struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	items, loaded := ic.Store.Details(req.OrderID)
	if !loaded {
		fetched, err := ic.Fulfillment.RefreshDetails(req.OrderID)
		if err != nil {
			respondBackendError(c, err)
			return
		}
		items = fetched
	}

	order, _ := ic.Store.InHouseOrder(req.OrderID)

	type servedLine struct {
		models.OrderLineItem
		Amount float64 `json:"amount"`
	}
	served := make([]servedLine, 0)
	for _, it := range models.ServedItems(items) {
		served = append(served, servedLine{
			OrderLineItem: it,
			Amount:        float64(it.ServedQuantity) * it.Price,
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Order details", gin.H{
		"order_details": items,
		"served_items":  served,
		"subtotal":      utils.FormatCurrency(order.Subtotal),
	})
}

// UpdateItemStatus applies the operator's selection for one line item.
func (ic *InHouseOrderController) UpdateItemStatus(c *gin.Context) {
	var req struct {
		OrderID   uint   `json:"order_id" binding:"required"`
		ProductID uint   `json:"product_id" binding:"required"`
		Status    string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	message, err := ic.Fulfillment.UpdateItemStatus(req.OrderID, req.ProductID, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrUnknownStatus) || errors.Is(err, services.ErrItemNotFound) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		respondBackendError(c, err)
		return
	}

	if message == "" {
		message = "Status updated"
	}
	utils.RespondJSON(c, http.StatusOK, message, nil)
}

// ConfirmPayment settles an order after checking the supervisor
// passcode. Validation failures never reach the backend.
func (ic *InHouseOrderController) ConfirmPayment(c *gin.Context) {
	var req struct {
		OrderID  uint   `json:"order_id" binding:"required"`
		Passcode string `json:"passcode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(ic.PasscodeHash), []byte(req.Passcode)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Invalid password"))
		return
	}

	order, ok := ic.Store.InHouseOrder(req.OrderID)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("Order not found"))
		return
	}
	if order.Paid() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Order already paid"))
		return
	}

	ic.Store.SetCurrentOrder(order)

	if err := ic.Settlement.ConfirmPayment(order); err != nil {
		if errors.Is(err, services.ErrOrderNotFulfilled) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		var settleErr *services.SettlementError
		if errors.As(err, &settleErr) {
			utils.RespondJSON(c, http.StatusBadGateway, settlementFailureMessage(settleErr), gin.H{
				"phase": settleErr.Phase,
				"cause": settleErr.Err.Error(),
			})
			return
		}
		respondBackendError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payment confirmed!", nil)
}

func settlementFailureMessage(err *services.SettlementError) string {
	if err.Phase == services.PhaseTableRelease {
		return "Failed to update table status."
	}
	return "Failed to update payment status."
}
