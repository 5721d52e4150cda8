package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-backoffice/models"
	"github.com/yeremiapane/restaurant-backoffice/services"
	"github.com/yeremiapane/restaurant-backoffice/utils"
)

type OnlineOrderController struct {
	Client *services.BackendClient
	Store  *services.OrderStore
}

func NewOnlineOrderController(client *services.BackendClient, store *services.OrderStore) *OnlineOrderController {
	return &OnlineOrderController{Client: client, Store: store}
}

// GetOrders splits the online snapshot into undelivered and delivered
// orders, the delivered side optionally date-bounded.
func (oc *OnlineOrderController) GetOrders(c *gin.Context) {
	dateRange, err := services.ParseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	open, completed := services.PartitionOnline(oc.Store.OnlineOrders(), dateRange)

	utils.RespondJSON(c, http.StatusOK, "Online orders", gin.H{
		"open_orders":      open,
		"completed_orders": completed,
	})
}

// UpdateStatus moves an online order along preparing / out for delivery
// / delivered. Reaching delivered refreshes the collection so the order
// shifts partition right away instead of waiting for the next tick.
func (oc *OnlineOrderController) UpdateStatus(c *gin.Context) {
	var req struct {
		OrderID uint   `json:"order_id" binding:"required"`
		Status  string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	switch req.Status {
	case models.OnlineStatusPreparing, models.OnlineStatusDelivery, models.OnlineStatusDelivered:
	default:
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown order status %q", req.Status))
		return
	}

	message, err := oc.Client.UpdateOnlineOrderStatus(req.OrderID, req.Status)
	if err != nil {
		respondBackendError(c, err)
		return
	}

	if req.Status == models.OnlineStatusDelivered {
		if orders, err := oc.Client.ListOnlineOrders(); err != nil {
			utils.ErrorLogger.Printf("(UpdateStatus) refresh online orders: %v", err)
		} else {
			oc.Store.SetOnlineOrders(orders)
		}
	}

	if message == "" {
		message = "Status updated"
	}
	utils.RespondJSON(c, http.StatusOK, message, nil)
}
