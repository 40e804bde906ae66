package models

import (
	"encoding/json"
	"time"
)

// Well-known syncable entity types. The set of valid types is defined by the
// entity registry in the service layer; these constants name the kinds the
// platform ships with.
const (
	EntityTypeVocabulary       = "vocabulary"
	EntityTypeLearningProgress = "learning_progress"
	EntityTypeWordList         = "word_list"
)

// NewEntityVersion is the sentinel row version carried by a Create operation:
// the client has never seen a server-assigned version for the entity.
const NewEntityVersion int64 = 0

// SyncEntity is the storage envelope for any syncable domain object.
//
// The payload is opaque to the sync engine: conflict detection and the
// resolution ledger never interpret it except through registered per-type
// helpers (natural-key extraction, merge functions). RowVersion is a server
// counter that strictly increases on every successful write and is the sole
// optimistic-concurrency token.
type SyncEntity struct {
	// EntityType names the entity's kind (table), e.g. "vocabulary".
	EntityType string `json:"entity_type"`

	// EntityID is unique within EntityType.
	EntityID int64 `json:"entity_id"`

	// UserID is the owner of the record.
	UserID int64 `json:"user_id"`

	// Payload is the serialized domain object.
	Payload json.RawMessage `json:"payload"`

	// RowVersion changes on every successful commit. Zero means the entity
	// has never been written (see NewEntityVersion).
	RowVersion int64 `json:"row_version"`

	// NaturalKey is the duplicate-detection key for Creates (for vocabulary:
	// term + language code). Empty when the type has no natural key.
	NaturalKey string `json:"natural_key,omitempty"`

	// UpdatedAt is assigned by the server on commit.
	UpdatedAt time.Time `json:"updated_at"`

	// IsDeleted marks a soft-deleted row. Deleted rows are retained so other
	// devices can learn of the deletion.
	IsDeleted bool `json:"is_deleted"`

	// DeletedAt is set when IsDeleted becomes true.
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Key returns the (EntityType, EntityID) identity of the entity.
func (e SyncEntity) Key() EntityKey {
	return EntityKey{EntityType: e.EntityType, EntityID: e.EntityID}
}

// EntityKey identifies one syncable entity across all tables.
type EntityKey struct {
	EntityType string `json:"entity_type"`
	EntityID   int64  `json:"entity_id"`
}

// LocalEntity is the agent-side mirror of a synced entity. RowVersion is the
// last server version the device saw; the agent never increments it itself.
type LocalEntity struct {
	EntityType string          `json:"entity_type"`
	EntityID   int64           `json:"entity_id"`
	Payload    json.RawMessage `json:"payload"`
	RowVersion int64           `json:"row_version"`
	UpdatedAt  time.Time       `json:"updated_at"`
	IsDeleted  bool            `json:"is_deleted"`
}

// Key returns the (EntityType, EntityID) identity of the local entity.
func (e LocalEntity) Key() EntityKey {
	return EntityKey{EntityType: e.EntityType, EntityID: e.EntityID}
}
