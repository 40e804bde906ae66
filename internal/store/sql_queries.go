package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/kotobadev/kotoba-sync/models"
)

const (
	createUser = `INSERT INTO users (login, name, password_hash)
    VALUES ($1, $2, $3)
    RETURNING user_id, login, name, password_hash, created_at;`

	findUserByLogin = `SELECT user_id, login, name, password_hash, created_at
    FROM users
    WHERE login = $1;`

	entityColumns = `entity_type, entity_id, user_id, payload, row_version, natural_key, updated_at, is_deleted, deleted_at`

	getEntity = `SELECT ` + entityColumns + `
		FROM sync_entities
		WHERE entity_type = $1 AND entity_id = $2;`

	findEntityByNaturalKey = `SELECT ` + entityColumns + `
		FROM sync_entities
		WHERE entity_type = $1 AND user_id = $2 AND natural_key = $3 AND is_deleted = FALSE;`

	// Insert races with concurrent creates of the same key resolve via the
	// primary key: the loser's RETURNING yields no row.
	insertEntity = `INSERT INTO sync_entities (entity_type, entity_id, user_id, payload, natural_key)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (entity_type, entity_id) DO NOTHING
		RETURNING row_version, updated_at;`

	// The version check and the write are one atomic statement; zero rows
	// means either a stale expected version or a missing row.
	// A successful put always leaves a live row: a ClientWins override of a
	// delete conflict resurrects the entity.
	updateEntityCAS = `UPDATE sync_entities
		SET payload = $1, natural_key = $2, row_version = row_version + 1, updated_at = NOW(),
			is_deleted = FALSE, deleted_at = NULL
		WHERE entity_type = $3 AND entity_id = $4 AND row_version = $5
		RETURNING row_version, updated_at;`

	getEntityVersion = `SELECT row_version
		FROM sync_entities
		WHERE entity_type = $1 AND entity_id = $2;`

	softDeleteEntity = `UPDATE sync_entities
		SET is_deleted = TRUE, deleted_at = NOW(), row_version = row_version + 1, updated_at = NOW()
		WHERE entity_type = $1 AND entity_id = $2 AND row_version = $3
		RETURNING user_id, row_version, deleted_at;`

	insertTombstone = `INSERT INTO deleted_items (entity_type, entity_id, user_id, deleted_at, deletion_reason)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (entity_type, entity_id) DO UPDATE
		SET deleted_at = EXCLUDED.deleted_at, deletion_reason = EXCLUDED.deletion_reason;`

	getSyncMetadata = `SELECT user_id, device_id, last_sync_time, items_synced, conflicts_detected, conflicts_resolved, sync_status, created_at, updated_at
		FROM sync_metadata
		WHERE user_id = $1 AND device_id = $2;`

	upsertSyncMetadata = `INSERT INTO sync_metadata (user_id, device_id, last_sync_time, items_synced, conflicts_detected, conflicts_resolved, sync_status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (user_id, device_id) DO UPDATE
		SET last_sync_time = EXCLUDED.last_sync_time,
			items_synced = EXCLUDED.items_synced,
			conflicts_detected = EXCLUDED.conflicts_detected,
			conflicts_resolved = EXCLUDED.conflicts_resolved,
			sync_status = EXCLUDED.sync_status,
			updated_at = NOW();`

	minLastSyncTime = `SELECT MIN(last_sync_time)
		FROM sync_metadata
		WHERE user_id = $1;`

	conflictColumns = `conflict_id, user_id, device_id, entity_type, entity_id, conflict_type, client_data, server_data, resolution_strategy, resolution_data, conflict_status, client_modified_at, server_modified_at, detected_at, resolved_at, resolved_by`

	insertConflict = `INSERT INTO sync_conflicts (` + conflictColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`

	getConflict = `SELECT ` + conflictColumns + `
		FROM sync_conflicts
		WHERE conflict_id = $1;`

	markConflictResolved = `UPDATE sync_conflicts
		SET conflict_status = 'resolved', resolution_data = $1, resolved_at = NOW(), resolved_by = $2
		WHERE conflict_id = $3 AND conflict_status = 'pending';`

	markConflictIgnored = `UPDATE sync_conflicts
		SET conflict_status = 'ignored', resolved_at = NOW(), resolved_by = $1
		WHERE conflict_id = $2 AND conflict_status = 'pending';`

	conflictExists = `SELECT EXISTS (SELECT 1 FROM sync_conflicts WHERE conflict_id = $1);`

	purgeResolvedConflicts = `DELETE FROM sync_conflicts
		WHERE conflict_status IN ('resolved', 'ignored') AND resolved_at < $1;`

	listTombstonesSince = `SELECT entity_type, entity_id, user_id, deleted_at, deletion_reason
		FROM deleted_items
		WHERE user_id = $1 AND deleted_at > $2
		ORDER BY deleted_at;`

	// A tombstone may only be purged once every device of its owner has a
	// checkpoint past it; otherwise a late device would never learn of the
	// deletion.
	purgeExpiredTombstones = `DELETE FROM deleted_items d
		WHERE d.deleted_at < $1
		  AND d.deleted_at < (SELECT MIN(m.last_sync_time)
		                      FROM sync_metadata m
		                      WHERE m.user_id = d.user_id);`
)

// psql builds queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListModifiedSinceQuery builds the pull-phase query. With a checkpoint
// the delta includes soft-deleted rows (the client must learn of deletions);
// a full sync (nil since) returns live rows only.
func buildListModifiedSinceQuery(userID int64, since *time.Time) (string, []any, error) {
	builder := psql.
		Select("entity_type", "entity_id", "user_id", "payload", "row_version", "natural_key", "updated_at", "is_deleted", "deleted_at").
		From("sync_entities").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at")

	if since != nil {
		builder = builder.Where(sq.Gt{"updated_at": *since})
	} else {
		builder = builder.Where(sq.Eq{"is_deleted": false})
	}

	return builder.ToSql()
}

// buildListConflictsQuery builds the ledger listing query used by the manual
// resolution endpoint and the TUI.
func buildListConflictsQuery(userID int64, status models.ConflictStatus, limit uint64) (string, []any, error) {
	builder := psql.
		Select("conflict_id", "user_id", "device_id", "entity_type", "entity_id", "conflict_type",
			"client_data", "server_data", "resolution_strategy", "resolution_data", "conflict_status",
			"client_modified_at", "server_modified_at", "detected_at", "resolved_at", "resolved_by").
		From("sync_conflicts").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("detected_at DESC")

	if status != "" {
		builder = builder.Where(sq.Eq{"conflict_status": string(status)})
	}
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	return builder.ToSql()
}
