package config

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config carries everything the console reads from the environment.
type Config struct {
	BackendURL string
	Port       string
	// PollInterval is how often the order collections are re-fetched
	// from the backend while a session token exists.
	PollInterval time.Duration
	// SettlementPasscodeHash is the bcrypt hash of the supervisor
	// passcode required to confirm a payment.
	SettlementPasscodeHash string
}

func Load() *Config {
	cfg := &Config{
		BackendURL:             os.Getenv("BACKEND_URL"),
		Port:                   os.Getenv("PORT"),
		PollInterval:           5 * time.Second,
		SettlementPasscodeHash: os.Getenv("SETTLEMENT_PASSCODE_HASH"),
	}

	if cfg.BackendURL == "" {
		log.Printf("Warning: BACKEND_URL is not set, using http://localhost:4000")
		cfg.BackendURL = "http://localhost:4000"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if raw := os.Getenv("POLL_INTERVAL_MS"); raw != "" {
		if d, err := time.ParseDuration(raw + "ms"); err == nil && d > 0 {
			cfg.PollInterval = d
		} else {
			log.Printf("Warning: invalid POLL_INTERVAL_MS %q, keeping %v", raw, cfg.PollInterval)
		}
	}

	return cfg
}

// InitDB opens the console's local store. MySQL when STORE_DSN points at
// one, an on-disk SQLite file otherwise. The store only keeps the
// session token and console preferences; order data is never persisted.
func InitDB() (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	if dsn := os.Getenv("STORE_DSN"); dsn != "" {
		return gorm.Open(mysql.Open(dsn), gormCfg)
	}

	path := os.Getenv("STORE_PATH")
	if path == "" {
		path = "backoffice.db"
	}
	return gorm.Open(sqlite.Open(path), gormCfg)
}
