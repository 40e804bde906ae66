package store

import (
	"context"
	"time"

	"github.com/kotobadev/kotoba-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalEntityRepository is the agent's local mirror of synced entities. Rows
// are written from SyncResponse data (server-authoritative versions) and from
// local edits awaiting sync.
type LocalEntityRepository interface {
	// Upsert writes entities into the local mirror, replacing any existing
	// row for the same key and clearing its deleted flag.
	Upsert(ctx context.Context, entities ...models.UpsertEntity) error

	// MarkDeleted flags local rows as deleted. Missing keys are ignored;
	// a deletion learned from the server may target an entity the device
	// never held.
	MarkDeleted(ctx context.Context, keys ...models.EntityKey) error

	// Get returns one local row, deleted or not.
	// Returns [ErrEntityNotFound] if the device holds no row for the key.
	Get(ctx context.Context, entityType string, entityID int64) (models.LocalEntity, error)

	// ListActive returns all non-deleted rows of one entity type, ordered by
	// entity ID.
	ListActive(ctx context.Context, entityType string) ([]models.LocalEntity, error)

	// NextLocalID returns an entity ID not yet used by entityType on this
	// device, for locally created entities.
	NextLocalID(ctx context.Context, entityType string) (int64, error)
}

// PendingChangeQueue is the arrival-ordered queue of local edits that have
// not yet been pushed to the server.
type PendingChangeQueue interface {
	// Enqueue appends one change to the queue.
	Enqueue(ctx context.Context, change models.PendingChange) error

	// List returns all queued changes in arrival order, together with the
	// queue position of the last returned change. Changes enqueued after
	// List are not covered by that position and survive a later Purge.
	List(ctx context.Context) ([]models.PendingChange, int64, error)

	// Purge removes queued changes up to and including position throughID.
	Purge(ctx context.Context, throughID int64) error
}

// SyncStateRepository stores the device identity and the checkpoint returned
// by the last successful sync session. The table holds at most one row.
type SyncStateRepository interface {
	// DeviceID returns the stored device identity.
	// Returns [ErrLocalStateNotFound] before the first EnsureDeviceID.
	DeviceID(ctx context.Context) (string, error)

	// EnsureDeviceID stores deviceID if no identity is stored yet and
	// returns the effective identity.
	EnsureDeviceID(ctx context.Context, deviceID string) (string, error)

	// Checkpoint returns the last stored sync checkpoint, or nil if the
	// device has never completed a session.
	Checkpoint(ctx context.Context) (*time.Time, error)

	// SetCheckpoint stores the checkpoint returned by a completed session.
	SetCheckpoint(ctx context.Context, t time.Time) error
}
