package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-backoffice/services"
	"github.com/yeremiapane/restaurant-backoffice/utils"
)

// respondBackendError maps a backend client failure onto the console
// response. Server-reported messages pass through verbatim; transport
// failures collapse to the generic retry message.
func respondBackendError(c *gin.Context, err error) {
	var serverErr *services.ServerError
	if errors.As(err, &serverErr) {
		code := serverErr.Code
		if code < 400 || code > 599 {
			code = http.StatusBadGateway
		}
		utils.RespondError(c, code, serverErr)
		return
	}
	if errors.Is(err, services.ErrServerUnavailable) {
		utils.RespondError(c, http.StatusBadGateway, services.ErrServerUnavailable)
		return
	}
	utils.RespondError(c, http.StatusInternalServerError, err)
}
