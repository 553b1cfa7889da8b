package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the BudgetKeeper CLI.
//
// Fields:
//   - MongoURI: connection string of the hosted document database.
//   - DatabaseName: database holding per-user collections.
//   - CacheDSN: path of the local SQLite cache (key material, offline data).
//   - QueryTimeout: per-operation deadline for remote store calls.
//   - SharedSecret: optional pre-shared value enabling deterministic key
//     derivation; read from the environment only, never from flags or JSON.
//   - AuthTokenSecret: HMAC secret used to validate the hosted auth
//     provider's session tokens; environment only.
type Config struct {
	MongoURI        string
	DatabaseName    string
	CacheDSN        string
	QueryTimeout    time.Duration
	SharedSecret    string
	AuthTokenSecret string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.MongoURI = "mongodb://127.0.0.1:27017"
	c.DatabaseName = "budgetkeeper"
	c.CacheDSN = "budgetkeeper.db"
	c.QueryTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), command-line flags (if present), and finally secrets
// from the environment. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	parseEnv(cfg)
	return cfg
}

// parseEnv reads secret material from the environment. Secrets deliberately
// have no flag or JSON equivalent so they never end up in shell history or
// config files checked into dotfile repos.
func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv("BUDGETKEEPER_SHARED_SECRET"); ok {
		cfg.SharedSecret = v
	}
	if v, ok := os.LookupEnv("BUDGETKEEPER_AUTH_SECRET"); ok {
		cfg.AuthTokenSecret = v
	}
}
