package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/restaurant-backoffice/config"
	"github.com/yeremiapane/restaurant-backoffice/database"
	"github.com/yeremiapane/restaurant-backoffice/middlewares"
	"github.com/yeremiapane/restaurant-backoffice/router"
	"github.com/yeremiapane/restaurant-backoffice/services"
	"github.com/yeremiapane/restaurant-backoffice/utils"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	cfg := config.Load()

	if cfg.SettlementPasscodeHash == "" {
		// Development fallback matching the legacy console passcode.
		utils.InfoLogger.Println("Warning: SETTLEMENT_PASSCODE_HASH not set, using default passcode")
		hashed, err := bcrypt.GenerateFromPassword([]byte("confirm"), bcrypt.DefaultCost)
		if err != nil {
			utils.ErrorLogger.Fatalf("Failed to hash default passcode: %v", err)
		}
		cfg.SettlementPasscodeHash = string(hashed)
	}

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to open local store: %v", err)
	}

	sessions, err := database.NewSessionStore(db)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate local store: %v", err)
	}

	client := services.NewBackendClient(cfg.BackendURL)
	store := services.NewOrderStore()
	fulfillment := services.NewFulfillmentService(client, store)
	settlement := services.NewSettlementService(client, store, fulfillment)

	poller := services.NewSyncPoller(client, store, fulfillment)
	poller.Interval = cfg.PollInterval

	// A persisted token from a previous run resumes the session: the
	// client picks it up and the poller starts straight away.
	if session, err := sessions.LoadSession(); err != nil {
		utils.ErrorLogger.Printf("Failed to read persisted session: %v", err)
	} else if session != nil {
		client.SetToken(session.Token)
		poller.Start()
		utils.InfoLogger.Printf("Resumed session for %s", session.Username)
	}
	defer poller.Stop()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.SetupRouter(router.Deps{
		Config:      cfg,
		Client:      client,
		Store:       store,
		Poller:      poller,
		Fulfillment: fulfillment,
		Settlement:  settlement,
		Sessions:    sessions,
	})

	// 50 requests per second per IP across the whole surface.
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	utils.InfoLogger.Printf("Backoffice console listening on port %s (backend %s)", cfg.Port, cfg.BackendURL)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
