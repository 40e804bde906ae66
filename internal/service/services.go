package service

import (
	"github.com/kotobadev/kotoba-sync/internal/config"
	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/store"
	"github.com/kotobadev/kotoba-sync/internal/validators"
)

type Services struct {
	AuthService    AuthService
	SyncService    SyncService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	validator := validators.NewSyncValidator()

	syncService, err := NewSyncService(storages, cfg.Sync, validator, logger)
	if err != nil {
		return nil, err
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg.App, logger),
		SyncService:    syncService,
		AppInfoService: appInfoService,
	}, nil
}
