// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (stores, services) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Purchase Store Drivers

const (
	PurchaseStoreMemory = "memory"
	PurchaseStoreRedis  = "redis"
	PurchaseStoreBadger = "badger"
)

// # Configuration Schema

// Config holds all runtime configuration for the Open Reader API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"3000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// RequireTestEnv gates /api/v1 behind the X-Test-Env header (testnet builds).
	RequireTestEnv bool `env:"REQUIRE_TEST_ENV" envDefault:"true"`

	// Relational Database (PostgreSQL). Empty keeps proposals in memory.
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath overrides the embedded SQL migrations with a directory on disk.
	MigrationPath string `env:"MIGRATION_PATH"`

	// Purchase store selection and backend settings
	PurchaseStore string `env:"PURCHASE_STORE" envDefault:"memory"`
	RedisURL      string `env:"REDIS_URL"`
	BadgerPath    string `env:"BADGER_PATH"    envDefault:"./data/purchases"`

	// Catalog fixtures
	CatalogDir    string `env:"CATALOG_DIR"`
	CatalogLocale string `env:"CATALOG_LOCALE" envDefault:"ru"`

	// Mock Telegram Stars invoices
	InvoiceBaseURL string `env:"INVOICE_BASE_URL" envDefault:"https://t.me/test-stars-invoice"`

	// Proposal file storage
	StorageDir       string `env:"STORAGE_DIR"        envDefault:"./storage/ton"`
	StoragePublicURL string `env:"STORAGE_PUBLIC_URL" envDefault:"https://ton.storage/mock"`

	// Telegram identity for proposal voting
	TelegramBotToken   string        `env:"TELEGRAM_BOT_TOKEN"`
	AllowedTelegramIDs []string      `env:"ALLOWED_TELEGRAM_IDS" envSeparator:","`
	SessionSecret      string        `env:"SESSION_SECRET"`
	VoterTokenTTL      time.Duration `env:"VOTER_TOKEN_TTL"   envDefault:"24h"`
	InitDataMaxAge     time.Duration `env:"INIT_DATA_MAX_AGE" envDefault:"24h"`

	// Cross-Origin Resource Sharing
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"https://web.telegram.org"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate enforces cross-field requirements env tags cannot express.
func (c *Config) validate() error {
	switch c.PurchaseStore {
	case PurchaseStoreMemory, PurchaseStoreBadger:
	case PurchaseStoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: REDIS_URL is required when PURCHASE_STORE=%s", PurchaseStoreRedis)
		}
	default:
		return fmt.Errorf("config: unknown PURCHASE_STORE %q", c.PurchaseStore)
	}

	for _, id := range c.AllowedTelegramIDs {
		trimmed := strings.TrimSpace(id)
		if trimmed == "" {
			continue
		}
		if _, err := strconv.ParseInt(trimmed, 10, 64); err != nil {
			return fmt.Errorf("config: ALLOWED_TELEGRAM_IDS contains non-numeric id %q", id)
		}
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// VotingEnabled reports whether Telegram voter tokens can be issued.
func (c *Config) VotingEnabled() bool {
	return c.TelegramBotToken != "" && c.SessionSecret != ""
}

// VoterAllowList returns the configured voter ids as an immutable set.
//
// It is computed once at startup and injected into the proposal service.
func (c *Config) VoterAllowList() AllowList {
	return NewAllowList(c.AllowedTelegramIDs...)
}

// # Allow List

// AllowList is a read-only set of Telegram user ids.
type AllowList struct {
	ids map[string]struct{}
}

// NewAllowList builds an [AllowList], trimming blanks.
func NewAllowList(ids ...string) AllowList {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			set[trimmed] = struct{}{}
		}
	}
	return AllowList{ids: set}
}

// Contains reports whether id is allowed.
func (a AllowList) Contains(id string) bool {
	_, ok := a.ids[id]
	return ok
}

// Len returns the number of allowed ids.
func (a AllowList) Len() int {
	return len(a.ids)
}
