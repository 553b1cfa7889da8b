package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/budgetkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/budgetkeeper/internal/client/cli"
	"github.com/dmitrijs2005/budgetkeeper/internal/client/config"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg, logging.NewDefault())
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
