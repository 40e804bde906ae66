package store

const (
	upsertLocalEntity = `
		INSERT INTO local_entities (entity_type, entity_id, payload, row_version, updated_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		ON CONFLICT (entity_type, entity_id) DO UPDATE SET
			payload     = excluded.payload,
			row_version = excluded.row_version,
			updated_at  = excluded.updated_at,
			is_deleted  = FALSE;`

	markLocalEntityDeleted = `
		UPDATE local_entities
		SET is_deleted = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE entity_type = $1 AND entity_id = $2;`

	getLocalEntity = `
		SELECT entity_type, entity_id, payload, row_version, updated_at, is_deleted
		FROM local_entities
		WHERE entity_type = $1 AND entity_id = $2;`

	listActiveLocalEntities = `
		SELECT entity_type, entity_id, payload, row_version, updated_at, is_deleted
		FROM local_entities
		WHERE entity_type = $1 AND is_deleted = FALSE
		ORDER BY entity_id;`

	nextLocalEntityID = `
		SELECT COALESCE(MAX(entity_id), 0) + 1
		FROM local_entities
		WHERE entity_type = $1;`

	enqueuePendingChange = `
		INSERT INTO pending_changes (entity_type, entity_id, operation, payload, client_row_version, client_modified_at)
		VALUES ($1, $2, $3, $4, $5, $6);`

	listPendingChanges = `
		SELECT change_id, entity_type, entity_id, operation, payload, client_row_version, client_modified_at
		FROM pending_changes
		ORDER BY change_id;`

	purgePendingChanges = `
		DELETE FROM pending_changes
		WHERE change_id <= $1;`

	getSyncState = `
		SELECT device_id, last_sync_time
		FROM sync_state
		WHERE state_id = 1;`

	insertSyncState = `
		INSERT INTO sync_state (state_id, device_id, last_sync_time)
		VALUES (1, $1, NULL)
		ON CONFLICT (state_id) DO NOTHING;`

	setSyncCheckpoint = `
		UPDATE sync_state
		SET last_sync_time = $1
		WHERE state_id = 1;`
)
