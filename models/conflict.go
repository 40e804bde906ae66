package models

import (
	"encoding/json"
	"time"
)

// ConflictType records which client operation collided with server state.
type ConflictType string

const (
	ConflictTypeCreate ConflictType = "create"
	ConflictTypeUpdate ConflictType = "update"
	ConflictTypeDelete ConflictType = "delete"
)

// ResolutionStrategy selects how a detected conflict is settled.
type ResolutionStrategy string

const (
	// ResolutionServerWins discards the client payload; the client receives
	// the current server entity back. The safe default.
	ResolutionServerWins ResolutionStrategy = "server_wins"

	// ResolutionClientWins force-commits the client payload over current
	// server state.
	ResolutionClientWins ResolutionStrategy = "client_wins"

	// ResolutionMerge combines both sides with a per-entity-type merge
	// function. Falls back to ServerWins when no function is registered.
	ResolutionMerge ResolutionStrategy = "merge"

	// ResolutionManual commits neither side and parks the conflict in the
	// ledger for an explicit human decision.
	ResolutionManual ResolutionStrategy = "manual"
)

// Valid reports whether s is a known strategy.
func (s ResolutionStrategy) Valid() bool {
	switch s {
	case ResolutionServerWins, ResolutionClientWins, ResolutionMerge, ResolutionManual:
		return true
	}
	return false
}

// ConflictStatus is the lifecycle state of a ledger entry.
type ConflictStatus string

const (
	ConflictStatusPending  ConflictStatus = "pending"
	ConflictStatusResolved ConflictStatus = "resolved"
	ConflictStatusIgnored  ConflictStatus = "ignored"
)

// SyncConflict is one row of the append-only conflict ledger. A row is
// written for every conflict the detector finds, whether or not the
// resolution engine settles it automatically in the same session.
//
// Once Resolved or Ignored a row is immutable except for audit fields.
// ClientData and ServerData are opaque serialized payloads so the ledger
// schema is not coupled to any domain type.
type SyncConflict struct {
	ConflictID string `json:"conflict_id"`

	UserID   int64  `json:"user_id"`
	DeviceID string `json:"device_id"`

	EntityType string `json:"entity_type"`
	EntityID   int64  `json:"entity_id"`

	ConflictType ConflictType `json:"conflict_type"`

	ClientData json.RawMessage `json:"client_data,omitempty"`
	ServerData json.RawMessage `json:"server_data,omitempty"`

	ResolutionStrategy ResolutionStrategy `json:"resolution_strategy"`

	// ResolutionData is the payload that won (or was produced by a merge).
	// Nil while the conflict is pending.
	ResolutionData json.RawMessage `json:"resolution_data,omitempty"`

	ConflictStatus ConflictStatus `json:"conflict_status"`

	ClientModifiedAt time.Time `json:"client_modified_at"`
	ServerModifiedAt time.Time `json:"server_modified_at"`

	DetectedAt time.Time  `json:"detected_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`

	// ResolvedBy names the resolver: "auto" for engine decisions, a user
	// identity for manual ones.
	ResolvedBy string `json:"resolved_by,omitempty"`
}

// ResolveConflictRequest is the body of the manual-resolution endpoint.
// ChosenData is committed through the same versioned-store path the engine
// uses internally.
type ResolveConflictRequest struct {
	ChosenData json.RawMessage `json:"chosen_data"`
}
