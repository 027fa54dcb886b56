package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ashlands/server/internal/server"
	"github.com/ashlands/server/internal/server/config"
	"github.com/ashlands/server/internal/server/storage"
)

func main() {
	cfg := config.DefaultConfig()

	flag.StringVar(&cfg.SaveDir, "save-dir", cfg.SaveDir, "save root directory")
	flag.StringVar(&cfg.WorldName, "world", cfg.WorldName, "world to load or create")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world generator seed")
	flag.StringVar(&cfg.GeneratorType, "generator", cfg.GeneratorType, "terrain generator: default or flat")
	flag.IntVar(&cfg.ViewRadius, "view-radius", cfg.ViewRadius, "live region half-span in chunks")
	flag.BoolVar(&cfg.ZLevels, "z-levels", cfg.ZLevels, "keep inactive levels resident across saves")
	flag.IntVar(&cfg.AutosaveTurns, "autosave-turns", cfg.AutosaveTurns, "turns between autosaves, 0 disables")
	flag.Parse()

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// config.json values fill in whatever was not set on the command line.
	store, err := storage.New(cfg.SaveDir, log)
	if err != nil {
		log.Error("open save dir", "error", err)
		os.Exit(1)
	}
	fromFile := config.DefaultConfig()
	if err := store.LoadConfig(fromFile); err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}
	config.Merge(cfg, fromFile, explicit)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sess, err := server.New(cfg, log)
	if err != nil {
		log.Error("create session", "error", err)
		os.Exit(1)
	}
	if err := sess.Run(ctx); err != nil {
		log.Error("session error", "error", err)
		os.Exit(1)
	}
}
