package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-backoffice/database"
	"github.com/yeremiapane/restaurant-backoffice/models"
	"github.com/yeremiapane/restaurant-backoffice/utils"
)

// PreferenceController keeps the "last active menu" label in the local
// store so the console reopens where the operator left off.
type PreferenceController struct {
	Sessions *database.SessionStore
}

func NewPreferenceController(sessions *database.SessionStore) *PreferenceController {
	return &PreferenceController{Sessions: sessions}
}

func (pc *PreferenceController) GetCurrentMenu(c *gin.Context) {
	value, err := pc.Sessions.GetPreference(models.PrefCurrentMenu)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if value == "" {
		value = "Dashboard"
	}
	utils.RespondJSON(c, http.StatusOK, "Current menu", gin.H{"menu": value})
}

func (pc *PreferenceController) SetCurrentMenu(c *gin.Context) {
	var req struct {
		Menu string `json:"menu" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := pc.Sessions.SetPreference(models.PrefCurrentMenu, req.Menu); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu updated", nil)
}
