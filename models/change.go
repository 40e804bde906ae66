package models

import (
	"encoding/json"
	"time"
)

// Operation is the kind of change a client wants applied to one entity.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Valid reports whether op is one of the known operations.
func (op Operation) Valid() bool {
	switch op {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// PendingChange is one client-submitted change. It exists only within a
// single sync request; the ChangeSet builder folds the raw list into at most
// one effective change per entity key.
type PendingChange struct {
	EntityType string `json:"entity_type"`
	EntityID   int64  `json:"entity_id"`

	Operation Operation `json:"operation"`

	// Payload is the serialized entity as the client last edited it.
	// Empty for Delete.
	Payload json.RawMessage `json:"payload,omitempty"`

	// ClientRowVersion is the server version the client last saw.
	// NewEntityVersion for Create.
	ClientRowVersion int64 `json:"client_row_version"`

	// ClientModifiedAt is the client-local edit time; used only for the
	// conflict ledger, never for ordering decisions.
	ClientModifiedAt time.Time `json:"client_modified_at"`
}

// Key returns the (EntityType, EntityID) identity of the change.
func (c PendingChange) Key() EntityKey {
	return EntityKey{EntityType: c.EntityType, EntityID: c.EntityID}
}

// Rejection reasons reported in SyncResponse.RejectedChanges.
const (
	RejectUnknownEntityType       = "UnknownEntityType"
	RejectUnknownOperation        = "UnknownOperation"
	RejectMissingEntityID         = "MissingEntityID"
	RejectMissingRowVersion       = "MissingRowVersion"
	RejectMissingPayload          = "MissingPayload"
	RejectDeleteSupersededCreate  = "DeleteSupersededByCreate"
	RejectCreateHasRowVersion     = "CreateHasRowVersion"
)

// RejectedChange reports a malformed or inadmissible pending change that was
// dropped from the batch. Rejections are per-item and never fail the session.
type RejectedChange struct {
	EntityType string `json:"entity_type"`
	EntityID   int64  `json:"entity_id"`
	Reason     string `json:"reason"`
}
