package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/kotobadev/kotoba-sync/models"
)

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, user models.User) (models.User, error)
}

// VersionedStore is the storage abstraction the sync engine mutates domain
// entities through. Every write is conditional on the entity's current row
// version; the version check and the write are a single atomic statement at
// the storage layer.
type VersionedStore interface {
	// Get returns the current server state of one entity, including
	// soft-deleted rows. Returns ErrEntityNotFound when no row exists.
	Get(ctx context.Context, entityType string, entityID int64) (models.SyncEntity, error)

	// FindByNaturalKey returns the live (non-deleted) entity carrying the
	// given natural key, used for duplicate detection on Create.
	// Returns ErrEntityNotFound when no live row matches.
	FindByNaturalKey(ctx context.Context, entityType string, userID int64, naturalKey string) (models.SyncEntity, error)

	// ConditionallyPut writes entity if and only if the stored row version
	// equals expectedVersion. An expectedVersion of models.NewEntityVersion
	// inserts a new row. Returns the new row version on success,
	// ErrVersionConflict when the check fails, ErrEntityNotFound when an
	// update targets a missing row, and ErrDuplicateNaturalKey when an
	// insert collides on the natural key.
	ConditionallyPut(ctx context.Context, entity models.SyncEntity, expectedVersion int64) (int64, error)

	// SoftDelete marks the entity deleted (retaining the row) and records a
	// tombstone, atomically, if the stored row version equals
	// expectedVersion. Returns the new row version.
	SoftDelete(ctx context.Context, entityType string, entityID int64, expectedVersion int64, deletedBy string) (int64, error)

	// ListModifiedSince streams every entity of the user whose UpdatedAt is
	// after since, including soft-deleted rows. A nil since means full
	// sync: every live entity of the user.
	ListModifiedSince(ctx context.Context, userID int64, since *time.Time) ([]models.SyncEntity, error)
}

// SyncMetadataRepository persists per-(user, device) sync checkpoints.
type SyncMetadataRepository interface {
	// Get returns the metadata row for one device.
	// Returns ErrMetadataNotFound when the device has never synced.
	Get(ctx context.Context, userID int64, deviceID string) (models.SyncMetadata, error)

	// Upsert creates or replaces the metadata row with absolute values.
	Upsert(ctx context.Context, metadata models.SyncMetadata) error

	// MinLastSyncTime returns the oldest checkpoint across all devices of
	// the user, bounding what housekeeping may purge.
	// Returns ErrMetadataNotFound when the user has no synced devices.
	MinLastSyncTime(ctx context.Context, userID int64) (time.Time, error)
}

// ConflictLedger is the append-only record of detected conflicts.
type ConflictLedger interface {
	// Append writes a new ledger row.
	Append(ctx context.Context, conflict models.SyncConflict) error

	// Get returns one ledger row by id.
	// Returns ErrConflictNotFound when no row matches.
	Get(ctx context.Context, conflictID string) (models.SyncConflict, error)

	// MarkResolved transitions a Pending row to Resolved, recording the
	// winning payload and the resolver identity.
	// Returns ErrConflictNotPending when the row is not Pending.
	MarkResolved(ctx context.Context, conflictID string, resolutionData []byte, resolvedBy string) error

	// MarkIgnored transitions a Pending row to Ignored.
	// Returns ErrConflictNotPending when the row is not Pending.
	MarkIgnored(ctx context.Context, conflictID string, resolvedBy string) error

	// ListByUser returns the user's ledger rows filtered by status, newest
	// first. An empty status returns all rows.
	ListByUser(ctx context.Context, userID int64, status models.ConflictStatus, limit uint64) ([]models.SyncConflict, error)

	// PurgeResolvedBefore removes Resolved and Ignored rows older than the
	// cutoff. Returns the number of rows removed.
	PurgeResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// TombstoneRepository persists deletion markers so devices that sync late
// still learn about deletions.
type TombstoneRepository interface {
	// ListSince returns the user's tombstones newer than since. A nil since
	// returns none: a full sync has no prior state to delete.
	ListSince(ctx context.Context, userID int64, since *time.Time) ([]models.DeletedItem, error)

	// PurgeExpired removes tombstones older than the cutoff that every
	// known device of the owning user has already synced past. Returns the
	// number of rows removed.
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
