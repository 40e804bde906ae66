package models

import "time"

// DeletedItem is a tombstone recording that an entity was deleted, kept so a
// device that syncs after the deletion learns about it even if the soft-
// deleted row is eventually purged.
type DeletedItem struct {
	EntityType     string    `json:"entity_type"`
	EntityID       int64     `json:"entity_id"`
	UserID         int64     `json:"user_id"`
	DeletedAt      time.Time `json:"deleted_at"`
	DeletionReason string    `json:"deletion_reason,omitempty"`
}
