package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-m string   connection string of the document database
//	-d string   database name
//	-l string   path of the local SQLite cache
//	-t int      remote query timeout in seconds
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-m", "-d", "-l", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.MongoURI, "m", cfg.MongoURI, "connection string of the document database")
	fs.StringVar(&cfg.DatabaseName, "d", cfg.DatabaseName, "database name")
	fs.StringVar(&cfg.CacheDSN, "l", cfg.CacheDSN, "path of the local cache database")
	queryTimeout := fs.Int("t", int(cfg.QueryTimeout.Seconds()), "remote query timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.QueryTimeout = time.Duration(*queryTimeout) * time.Second
}
