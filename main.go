package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ev-marketplace/internal/app"
	"ev-marketplace/internal/config"
	"ev-marketplace/internal/marketerrors"
	"ev-marketplace/utils"
)

func main() {
	cfg := config.Load()
	utils.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %s\n", marketerrors.UserMessage(err))
		os.Exit(1)
	}

	err = client.Run(ctx, os.Args[1:])
	if cerr := client.Close(); cerr != nil {
		utils.Warn("could not close profile store", map[string]any{"error": cerr.Error()})
	}
	if err != nil {
		if !app.Reported(err) {
			fmt.Fprintln(os.Stderr, marketerrors.UserMessage(err))
		}
		utils.Debug("command failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
