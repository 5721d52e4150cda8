package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/yeremiapane/restaurant-backoffice/database"
	"github.com/yeremiapane/restaurant-backoffice/models"
	"github.com/yeremiapane/restaurant-backoffice/services"
	"github.com/yeremiapane/restaurant-backoffice/utils"
)

type AuthController struct {
	Client   *services.BackendClient
	Store    *services.OrderStore
	Poller   *services.SyncPoller
	Sessions *database.SessionStore
}

func NewAuthController(client *services.BackendClient, store *services.OrderStore, poller *services.SyncPoller, sessions *database.SessionStore) *AuthController {
	return &AuthController{Client: client, Store: store, Poller: poller, Sessions: sessions}
}

// SignIn authenticates the operator against the backend, persists the
// backend token, issues the console's own session token and brings the
// poller up.
func (ac *AuthController) SignIn(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// The backend rejects whitespace in credentials; strip it the way
	// the sign-in form does.
	username := strings.ReplaceAll(req.Username, " ", "")
	password := strings.ReplaceAll(req.Password, " ", "")

	backendToken, err := ac.Client.SignIn(username, password)
	if err != nil {
		respondBackendError(c, err)
		return
	}

	role := roleFromBackendToken(backendToken)

	ac.Client.SetToken(backendToken)
	if err := ac.Sessions.SaveSession(backendToken, username, role); err != nil {
		utils.ErrorLogger.Printf("(SignIn) persisting session: %v", err)
	}

	consoleToken, err := utils.GenerateToken(username, role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	ac.initialLoad(role)
	ac.Poller.Start()

	utils.InfoLogger.Printf("Operator %s signed in (role=%s)", username, role)
	utils.RespondJSON(c, http.StatusOK, "Signed in", gin.H{
		"token": consoleToken,
		"role":  role,
	})
}

// SignOut revokes the console session, clears the persisted backend
// token and tears the poller down.
func (ac *AuthController) SignOut(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if token := strings.TrimPrefix(authHeader, "Bearer "); token != "" {
		utils.BlacklistToken(token)
	}

	ac.Poller.Stop()
	ac.Client.ClearToken()
	ac.Store.Reset()
	if err := ac.Sessions.ClearSession(); err != nil {
		utils.ErrorLogger.Printf("(SignOut) clearing session: %v", err)
	}

	utils.RespondJSON(c, http.StatusOK, "Signed out", nil)
}

// initialLoad mirrors the post-sign-in fetch sequence: both order
// collections for everyone, catalog and staff for admins. Failures only
// log; the poller converges the rest.
func (ac *AuthController) initialLoad(role string) {
	if orders, err := ac.Client.ListOnlineOrders(); err != nil {
		utils.ErrorLogger.Printf("(SignIn) online orders: %v", err)
	} else {
		ac.Store.SetOnlineOrders(orders)
	}
	if orders, err := ac.Client.ListInHouseOrders(); err != nil {
		utils.ErrorLogger.Printf("(SignIn) in-house orders: %v", err)
	} else {
		ac.Store.SetInHouseOrders(orders)
	}

	if role != models.RoleAdmin {
		return
	}
	if _, err := ac.Client.ListProducts(); err != nil {
		utils.ErrorLogger.Printf("(SignIn) product list: %v", err)
	}
	if _, err := ac.Client.ListStaff(); err != nil {
		utils.ErrorLogger.Printf("(SignIn) staff list: %v", err)
	}
}

// roleFromBackendToken picks the account type out of the backend token
// without verifying it; the backend signed it and validates it on every
// call anyway. Type 0 is an admin account.
func roleFromBackendToken(token string) string {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return models.RoleStaff
	}
	if t, ok := claims["type"].(float64); ok && t == 0 {
		return models.RoleAdmin
	}
	return models.RoleStaff
}
