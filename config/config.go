package config

import (
	"fmt"
	"sync"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// Database
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBMaxConns  int32  `envconfig:"DB_MAX_CONNS" default:"25"`

	// HTTP server
	HTTPPort uint16 `envconfig:"HTTP_PORT" default:"8080"`

	// Auth
	JWTSecret     string `envconfig:"JWT_SECRET"`
	TokenTTLHours int    `envconfig:"TOKEN_TTL_HOURS" default:"72"`

	// Coins
	StartingCoins int64 `envconfig:"STARTING_COINS" default:"0"`

	// Lottery. The house edge keeps expected payout below fair odds; it must
	// stay below 1.0.
	LotteryHouseEdge float64 `envconfig:"LOTTERY_HOUSE_EDGE" default:"0.95"`

	// Bounded ledger views
	TransactionViewLimit int `envconfig:"TRANSACTION_VIEW_LIMIT" default:"50"`

	// Campaign sweep schedule (cron spec, hourly by default)
	CampaignSweepSpec string `envconfig:"CAMPAIGN_SWEEP_SPEC" default:"0 * * * *"`

	// Environment: "development", "production" or "test"
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if cfg.LotteryHouseEdge <= 0 || cfg.LotteryHouseEdge >= 1 {
		return nil, fmt.Errorf("LOTTERY_HOUSE_EDGE must be in (0, 1), got %v", cfg.LotteryHouseEdge)
	}

	if cfg.Environment != "test" {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
	}

	return &cfg, nil
}
