package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/kotobadev/kotoba-sync/internal/adapter"
	"github.com/kotobadev/kotoba-sync/internal/config"
	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/service"
	"github.com/kotobadev/kotoba-sync/internal/store"
	"github.com/kotobadev/kotoba-sync/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewAgentLogger("kotoba-sync-agent")
	cfg, err := config.GetAgentConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	localStorage, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	if cfg.Sync.DeviceID != "" {
		if _, err = localStorage.State.EnsureDeviceID(ctx, cfg.Sync.DeviceID); err != nil {
			log.Fatal().Err(err).Msg("store configured device id")
		}
	}

	services := service.NewClientServices(localStorage, serverAdapter, log)

	ui, err := tui.New(services, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	if err = run(ctx, cfg, services, ui); err != nil {
		log.Fatal().Err(err).Msg("agent run error")
	}
}

// run alternates the login flow and the main loop until the user quits.
// While the main loop is on screen the periodic sync job runs in the
// background; logging out stops it and returns to the login flow.
func run(ctx context.Context, cfg *config.AgentConfig, services *service.ClientServices, ui *tui.TUI) error {
	for {
		userID, err := ui.LoginFlow(ctx)
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		if err != nil {
			return err
		}

		services.SyncJob.Start(ctx, cfg.Sync.Interval)
		logout, err := ui.MainLoop(ctx, userID)
		services.SyncJob.Stop()

		if err != nil {
			return err
		}
		if !logout {
			return nil
		}
	}
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
