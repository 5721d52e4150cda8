package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-backoffice/config"
	"github.com/yeremiapane/restaurant-backoffice/controllers"
	"github.com/yeremiapane/restaurant-backoffice/database"
	"github.com/yeremiapane/restaurant-backoffice/middlewares"
	"github.com/yeremiapane/restaurant-backoffice/services"
)

// Deps collects everything the route handlers need.
type Deps struct {
	Config      *config.Config
	Client      *services.BackendClient
	Store       *services.OrderStore
	Poller      *services.SyncPoller
	Fulfillment *services.FulfillmentService
	Settlement  *services.SettlementService
	Sessions    *database.SessionStore
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	authCtrl := controllers.NewAuthController(d.Client, d.Store, d.Poller, d.Sessions)
	inHouseCtrl := controllers.NewInHouseOrderController(d.Store, d.Fulfillment, d.Settlement, d.Config.SettlementPasscodeHash)
	onlineCtrl := controllers.NewOnlineOrderController(d.Client, d.Store)
	menuCtrl := controllers.NewMenuController(d.Client)
	staffCtrl := controllers.NewStaffController(d.Client)
	prefCtrl := controllers.NewPreferenceController(d.Sessions)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signin", middlewares.NewStrictRateLimiter(), authCtrl.SignIn)
			auth.POST("/signout", middlewares.AuthMiddleware(), authCtrl.SignOut)
		}

		protected := api.Group("")
		protected.Use(middlewares.AuthMiddleware())
		{
			inhouse := protected.Group("/inhouseorders")
			{
				inhouse.GET("", inHouseCtrl.GetOrders)
				inhouse.POST("/details", inHouseCtrl.GetOrderDetails)
				inhouse.POST("/items/status", inHouseCtrl.UpdateItemStatus)
				inhouse.POST("/confirm-payment", inHouseCtrl.ConfirmPayment)
			}

			online := protected.Group("/orders")
			{
				online.GET("", onlineCtrl.GetOrders)
				online.POST("/status", onlineCtrl.UpdateStatus)
			}

			menu := protected.Group("/menu", middlewares.AdminOnly())
			{
				menu.GET("", menuCtrl.List)
				menu.POST("/add", menuCtrl.Add)
				menu.POST("/edit", menuCtrl.Edit)
				menu.POST("/remove", menuCtrl.Remove)
			}

			staff := protected.Group("/staff", middlewares.AdminOnly())
			{
				staff.GET("", staffCtrl.List)
				staff.POST("/add", staffCtrl.Add)
				staff.POST("/edit", staffCtrl.Edit)
				staff.POST("/remove", staffCtrl.Remove)
			}

			prefs := protected.Group("/preferences")
			{
				prefs.GET("/menu", prefCtrl.GetCurrentMenu)
				prefs.PUT("/menu", prefCtrl.SetCurrentMenu)
			}
		}
	}

	return r
}
