// Package config loads runtime configuration for the BudgetKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//  4. Environment variables for secrets (see parseEnv).
//
// Supported flags
//
//	-m string   connection string of the document database
//	-d string   database name
//	-l string   path of the local SQLite cache
//	-t int      remote query timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "10s" or integer nanoseconds:
//
//	{
//	  "mongo_uri": "mongodb://127.0.0.1:27017",
//	  "database_name": "budgetkeeper",
//	  "cache_dsn": "budgetkeeper.db",
//	  "query_timeout": "10s"
//	}
//
// # Environment
//
//	BUDGETKEEPER_SHARED_SECRET   pre-shared value for deterministic key derivation
//	BUDGETKEEPER_AUTH_SECRET     HMAC secret for validating session tokens
//
// Secrets are read from the environment only; they have no flag or JSON
// equivalents.
package config
