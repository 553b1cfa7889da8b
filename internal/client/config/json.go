package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/flagx"
	"github.com/dmitrijs2005/budgetkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "10s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	MongoURI     string         `json:"mongo_uri"`
	DatabaseName string         `json:"database_name"`
	CacheDSN     string         `json:"cache_dsn"`
	QueryTimeout timex.Duration `json:"query_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies non-empty fields into the provided Config.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags -> parseEnv, where
// later stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.MongoURI != "" {
		cfg.MongoURI = jc.MongoURI
	}
	if jc.DatabaseName != "" {
		cfg.DatabaseName = jc.DatabaseName
	}
	if jc.CacheDSN != "" {
		cfg.CacheDSN = jc.CacheDSN
	}
	if jc.QueryTimeout.Duration != 0 {
		cfg.QueryTimeout = time.Duration(jc.QueryTimeout.Duration)
	}
}
