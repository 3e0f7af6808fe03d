package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"slaved/internal/config"
	"slaved/internal/daemon"
	"slaved/internal/identity"
	"slaved/internal/logging"
	"slaved/internal/registry"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	slaveID := flag.Int64("slave-id", identity.Unregistered, "slave id assigned by the master, if already known")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("ensure directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	store, err := registry.Open(cfg)
	if err != nil {
		logger.Error("open registry store", logging.Error(err))
		return
	}

	ident := identity.NewStore()
	d, err := daemon.New(cfg, ident, store, logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		return
	}
	defer d.Close()

	if *slaveID != identity.Unregistered {
		if !d.Register(*slaveID) {
			logger.Warn("ignoring invalid slave id", logging.Int64("slave_id", *slaveID))
		}
	}

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start", logging.Error(err))
		return
	}

	<-ctx.Done()
	logger.Info("slaved shutting down")
}
