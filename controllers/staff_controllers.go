package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-backoffice/models"
	"github.com/yeremiapane/restaurant-backoffice/services"
	"github.com/yeremiapane/restaurant-backoffice/utils"
)

// StaffController proxies staff administration to the backend. All of
// its routes sit behind the admin role check.
type StaffController struct {
	Client *services.BackendClient
}

func NewStaffController(client *services.BackendClient) *StaffController {
	return &StaffController{Client: client}
}

func (sc *StaffController) List(c *gin.Context) {
	staff, err := sc.Client.ListStaff()
	if err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Staff list", gin.H{"users": staff})
}

func (sc *StaffController) Add(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	message, err := sc.Client.AddStaff(req.Username, req.Password, req.Name, req.Role)
	if err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, nil)
}

func (sc *StaffController) Edit(c *gin.Context) {
	var req models.Staff
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	message, err := sc.Client.EditStaff(req)
	if err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, nil)
}

func (sc *StaffController) Remove(c *gin.Context) {
	var req struct {
		UserID uint `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	message, err := sc.Client.RemoveStaff(req.UserID)
	if err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, nil)
}
