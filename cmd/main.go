package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/smasonuk/halfedge3d"
)

func main() {
	configPath := flag.String("config", "", "TOML scene file; the built-in demo scene is used when empty")
	logLevel := flag.String("log-level", "", "overrides the configured log level (debug, info, warn, error)")
	watch := flag.Bool("watch", false, "reload models when their files change")
	flag.Parse()

	if err := run(*configPath, *logLevel, *watch); err != nil {
		slog.Error("halfedge3d failed", "err", err)
		os.Exit(1)
	}
}

func run(configPath, logLevel string, watch bool) error {
	cfg := halfedge3d.DefaultConfig()
	baseDir := "."
	if configPath != "" {
		var err error
		if cfg, err = halfedge3d.LoadConfig(configPath); err != nil {
			return err
		}
		baseDir = filepath.Dir(configPath)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	level, err := halfedge3d.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	halfedge3d.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := halfedge3d.LoadOptions{
		Build:       cfg.Build.BuildOptions(),
		BaseDir:     baseDir,
		SkipInvalid: cfg.Build.SkipInvalidAssets,
	}
	models, err := halfedge3d.LoadModels(ctx, cfg.Models, opts)
	if err != nil {
		return err
	}

	var updates <-chan *halfedge3d.Model
	if watch || cfg.Build.Watch {
		reloader, err := halfedge3d.NewReloader(cfg.Models, opts)
		if err != nil {
			return err
		}
		defer reloader.Close()
		go func() {
			if err := reloader.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("reloader stopped", "err", err)
			}
		}()
		updates = reloader.Updates()
	}

	return halfedge3d.Run(halfedge3d.NewGame(cfg, models, updates))
}
