package main

import (
	"fmt"
	"os"
	"runtime"

	"linux-engraver/internal/app"
	"linux-engraver/internal/config"
	"linux-engraver/internal/logger"
)

func main() {
	cfg, path, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.JSON)
	log.Info("Main", "starting", map[string]interface{}{
		"version":    app.AppVersion,
		"config":     path,
		"go_version": runtime.Version(),
		"log_level":  cfg.Log.Level,
	})

	application, err := app.NewApplication(cfg, log)
	if err != nil {
		log.Error("Main", err, map[string]interface{}{"stage": "init"})
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		log.Error("Main", err, map[string]interface{}{"stage": "run"})
		os.Exit(1)
	}

	log.Info("Main", "terminated", nil)
}
