package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tatianab/basilisk/internal/config"
	"github.com/tatianab/basilisk/internal/engine"
	"github.com/tatianab/basilisk/internal/logging"
	"github.com/tatianab/basilisk/internal/oracle"
	"github.com/tatianab/basilisk/internal/rooms"
	"github.com/tatianab/basilisk/internal/store"
	"github.com/tatianab/basilisk/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, logFile := logging.New(cfg.LogFile, cfg.LogMaxSize)
	defer logFile.Close()

	saves, err := store.Open(cfg)
	if err != nil {
		fmt.Printf("Error opening save store: %v\n", err)
		os.Exit(1)
	}
	defer saves.Close()

	reg := engine.NewRegistry()
	rooms.Register(reg, engine.SystemClock{})
	if !reg.Exists(cfg.StartRoom) {
		fmt.Printf("Error: start room %q is not registered\n", cfg.StartRoom)
		os.Exit(1)
	}

	eng := engine.New(reg,
		engine.WithStartRoom(cfg.StartRoom),
		engine.WithDebug(cfg.Debug),
		engine.WithLogger(logger),
	)

	opts := tui.Options{
		Engine: eng,
		Store:  saves,
		Logger: logger,
	}
	if cfg.GeminiAPIKey != "" {
		o, err := oracle.New(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Printf("oracle disabled: %v", err)
		} else {
			defer o.Close()
			opts.Oracle = o
		}
	}

	logger.Printf("starting, backend=%s start=%s debug=%t", cfg.SaveBackend, cfg.StartRoom, cfg.Debug)
	if err := tui.Run(opts); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
