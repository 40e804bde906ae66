package service

import (
	"github.com/kotobadev/kotoba-sync/internal/adapter"
	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/store"
)

// ClientServices groups the agent-side services.
type ClientServices struct {
	AuthService   AgentAuthService
	EntityService AgentEntityService
	SyncService   AgentSyncService
	SyncJob       AgentSyncJob
}

// NewClientServices wires the agent service layer on top of the local
// storages and the server adapter.
func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, logger *logger.Logger) *ClientServices {
	syncService := NewAgentSyncService(storages, serverAdapter, logger)

	return &ClientServices{
		AuthService:   NewAgentAuthService(serverAdapter, logger),
		EntityService: NewAgentEntityService(storages, NewEntityRegistry(), logger),
		SyncService:   syncService,
		SyncJob:       NewAgentSyncJob(syncService),
	}
}
