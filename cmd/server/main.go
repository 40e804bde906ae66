package main

import (
	"context"
	"fmt"

	"github.com/kotobadev/kotoba-sync/internal/config"
	"github.com/kotobadev/kotoba-sync/internal/handler"
	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/server"
	"github.com/kotobadev/kotoba-sync/internal/service"
	"github.com/kotobadev/kotoba-sync/internal/store"
	"github.com/kotobadev/kotoba-sync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("kotoba-sync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services, err := service.NewServices(storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	workers.NewWorkers(ctx, storages, cfg.Workers, log).Run()

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
