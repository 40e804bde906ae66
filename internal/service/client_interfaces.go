package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kotobadev/kotoba-sync/models"
)

// AgentAuthService defines the agent-side contract for registration and
// authentication against the remote server. On success the bearer token is
// retained by the server adapter for subsequent authenticated calls.
type AgentAuthService interface {
	// Register creates a new account on the server and returns the assigned
	// user ID.
	Register(ctx context.Context, login, password string) (int64, error)

	// Login authenticates against the server and returns the user ID encoded
	// in the issued token.
	Login(ctx context.Context, login, password string) (int64, error)
}

// AgentEntityService manages the device's local entity mirror. Every write
// lands in the local store and enqueues a pending change for the next sync
// session; nothing touches the server directly.
type AgentEntityService interface {
	// Create stores a new locally-authored entity and queues a create
	// change. The returned entity carries the device-assigned ID and the
	// new-entity version sentinel.
	Create(ctx context.Context, entityType string, payload json.RawMessage) (models.LocalEntity, error)

	// Update replaces the local payload of an existing entity and queues an
	// update change carrying the last server version the device saw.
	Update(ctx context.Context, entityType string, entityID int64, payload json.RawMessage) error

	// Delete flags the local entity deleted and queues a delete change.
	Delete(ctx context.Context, entityType string, entityID int64) error

	// Get returns one local entity, deleted or not.
	Get(ctx context.Context, entityType string, entityID int64) (models.LocalEntity, error)

	// List returns all non-deleted local entities of one type.
	List(ctx context.Context, entityType string) ([]models.LocalEntity, error)
}

// AgentSyncService runs sync sessions for this device and forwards conflict
// operations to the server.
type AgentSyncService interface {
	// Sync pushes the queued local changes, applies the server's response to
	// the local mirror (upserts and deletions), purges the pushed changes,
	// and advances the stored checkpoint. A failed session leaves the queue
	// and checkpoint untouched.
	Sync(ctx context.Context) (models.SyncResponse, error)

	// ListConflicts fetches the user's conflict ledger rows from the server.
	ListConflicts(ctx context.Context, status string, limit int) ([]models.SyncConflict, error)

	// ResolveConflict settles a pending conflict with the chosen payload.
	ResolveConflict(ctx context.Context, conflictID string, chosenData json.RawMessage) error

	// IgnoreConflict dismisses a pending conflict, keeping server state.
	IgnoreConflict(ctx context.Context, conflictID string) error
}

// AgentSyncJob is a background worker that periodically runs a sync session.
type AgentSyncJob interface {
	// Start launches the background sync goroutine. It syncs every interval,
	// defaulting to 5 minutes if interval is zero or negative. Any
	// previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
