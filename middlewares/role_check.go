package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-backoffice/models"
	"github.com/yeremiapane/restaurant-backoffice/utils"
)

// AdminOnly locks routes behind the admin role from the console session.
// Staff administration and catalog editing are admin surfaces.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		if userRole != models.RoleAdmin {
			utils.RespondError(c, http.StatusForbidden, fmt.Errorf("admin access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
