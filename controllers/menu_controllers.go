package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-backoffice/models"
	"github.com/yeremiapane/restaurant-backoffice/services"
	"github.com/yeremiapane/restaurant-backoffice/utils"
)

// MenuController passes catalog editing through to the backend. The
// console keeps no product state of its own.
type MenuController struct {
	Client *services.BackendClient
}

func NewMenuController(client *services.BackendClient) *MenuController {
	return &MenuController{Client: client}
}

func (mc *MenuController) List(c *gin.Context) {
	products, err := mc.Client.ListProducts()
	if err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product list", gin.H{"products": products})
}

func (mc *MenuController) Add(c *gin.Context) {
	var req models.Product
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("product name is required"))
		return
	}

	message, err := mc.Client.AddProduct(req)
	if err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, nil)
}

func (mc *MenuController) Edit(c *gin.Context) {
	var req models.Product
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.ProductID == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("product_id is required"))
		return
	}

	message, err := mc.Client.EditProduct(req)
	if err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, nil)
}

func (mc *MenuController) Remove(c *gin.Context) {
	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	message, err := mc.Client.RemoveProduct(req.ProductID)
	if err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, nil)
}
