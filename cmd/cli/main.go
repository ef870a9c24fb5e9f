package main

import (
	"context"
	"log"

	"github.com/lexazver/teamboard/internal/cli"
	"github.com/lexazver/teamboard/internal/config"
	"github.com/lexazver/teamboard/internal/logging"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()
	logger := logging.NewDefault(cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
