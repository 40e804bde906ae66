package models

import (
	"encoding/json"
	"time"
)

// SyncRequest is one device's push of offline edits. A nil LastSyncTime
// requests a full sync: the pull phase returns every live entity the user
// owns.
type SyncRequest struct {
	UserID   int64  `json:"user_id"`
	DeviceID string `json:"device_id"`

	// LastSyncTime is the checkpoint returned by the previous session
	// (SyncResponse.ServerTime). Nil on a device's first sync.
	LastSyncTime *time.Time `json:"last_sync_time,omitempty"`

	// PendingChanges is the raw, arrival-ordered list of local edits since
	// LastSyncTime. May be empty (pull-only sync).
	PendingChanges []PendingChange `json:"pending_changes"`
}

// UpsertEntity is one entity the client must write into its local store,
// overwriting whatever local state it holds for that key.
type UpsertEntity struct {
	EntityType string          `json:"entity_type"`
	EntityID   int64           `json:"entity_id"`
	Payload    json.RawMessage `json:"payload"`
	RowVersion int64           `json:"row_version"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// PendingConflictInfo reports a conflict parked for manual resolution. The
// entity is excluded from this round's committed changes; the client must
// not consider it synced until the conflict is resolved.
type PendingConflictInfo struct {
	EntityType string          `json:"entity_type"`
	EntityID   int64           `json:"entity_id"`
	ConflictID string          `json:"conflict_id"`
	ClientData json.RawMessage `json:"client_data,omitempty"`
	ServerData json.RawMessage `json:"server_data,omitempty"`
}

// SkippedChange reports a pending change that was a no-op (for example the
// target entity no longer exists on the server).
type SkippedChange struct {
	EntityType string `json:"entity_type"`
	EntityID   int64  `json:"entity_id"`
	Reason     string `json:"reason"`
}

// SyncStats summarises one session.
type SyncStats struct {
	ItemsSynced       int `json:"items_synced"`
	ConflictsDetected int `json:"conflicts_detected"`
	ConflictsResolved int `json:"conflicts_resolved"`
}

// SyncResponse is the outcome of one sync session. The client distinguishes
// fully synced (Success, no PendingConflicts), partially synced (pending
// conflicts require attention), and failed (retry later).
type SyncResponse struct {
	Success bool       `json:"success"`
	Status  SyncStatus `json:"status"`

	// ServerTime is the new checkpoint the client stores as LastSyncTime.
	ServerTime time.Time `json:"server_time"`

	UpsertEntities   []UpsertEntity        `json:"upsert_entities,omitempty"`
	DeletedEntityIDs []EntityKey           `json:"deleted_entity_ids,omitempty"`
	PendingConflicts []PendingConflictInfo `json:"pending_conflicts,omitempty"`
	RejectedChanges  []RejectedChange      `json:"rejected_changes,omitempty"`
	SkippedChanges   []SkippedChange       `json:"skipped_changes,omitempty"`

	Stats SyncStats `json:"stats"`
}
