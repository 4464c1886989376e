package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"studypilot/internal/client/cli"
	"studypilot/internal/client/config"
	"studypilot/internal/logging"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
