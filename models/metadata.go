package models

import "time"

// SyncStatus is the outcome of the most recent sync session for a device.
type SyncStatus string

const (
	// SyncStatusSuccess means every accepted change was committed and the
	// session ran to completion.
	SyncStatusSuccess SyncStatus = "success"

	// SyncStatusPartial means the session committed some changes but ended
	// early (cancellation after first commit) or deferred items to manual
	// resolution.
	SyncStatusPartial SyncStatus = "partial"

	// SyncStatusFailed means the session aborted on an unrecoverable
	// storage error before completing.
	SyncStatusFailed SyncStatus = "failed"
)

// SyncMetadata is the per-(user, device) sync checkpoint. One row is created
// on a device's first sync and updated at the end of every session; rows are
// never deleted.
type SyncMetadata struct {
	UserID   int64  `json:"user_id"`
	DeviceID string `json:"device_id"`

	// LastSyncTime is the checkpoint the device's next sync builds on.
	// Set to the session start time, not completion time, so changes that
	// land mid-session are not skipped.
	LastSyncTime time.Time `json:"last_sync_time"`

	// Cumulative counters across all sessions of this device.
	ItemsSynced       int64 `json:"items_synced"`
	ConflictsDetected int64 `json:"conflicts_detected"`
	ConflictsResolved int64 `json:"conflicts_resolved"`

	SyncStatus SyncStatus `json:"sync_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
