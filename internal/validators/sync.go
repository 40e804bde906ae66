package validators

import (
	"context"

	"github.com/kotobadev/kotoba-sync/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldUserID targets the owner identifier of a sync request.
	FieldUserID = "user_id"

	// FieldDeviceID targets the device identifier of a sync request.
	FieldDeviceID = "device_id"

	// FieldEntityID targets the entity identifier of a pending change.
	FieldEntityID = "entity_id"

	// FieldOperation targets the operation kind of a pending change.
	FieldOperation = "operation"

	// FieldPayload targets the serialized payload of a pending change.
	// Required for create and update; ignored for delete.
	FieldPayload = "payload"

	// FieldRowVersion enforces the version rules per operation: create must
	// carry the new-entity sentinel, update and delete must carry the version
	// the client last saw.
	FieldRowVersion = "row_version"

	// FieldChosenData targets the winning payload of a manual resolution.
	FieldChosenData = "chosen_data"
)

// SyncValidator implements the Validator interface for the sync-protocol
// models: SyncRequest, PendingChange, and ResolveConflictRequest.
//
// It supports both value and pointer receivers for every model type and
// allows optional field-level scoping via variadic field name arguments.
type SyncValidator struct {
}

// NewSyncValidator constructs a new SyncValidator and returns it as the
// Validator interface.
func NewSyncValidator() Validator {
	return &SyncValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Supported types:
//   - models.SyncRequest / *models.SyncRequest
//   - models.PendingChange / *models.PendingChange
//   - models.ResolveConflictRequest / *models.ResolveConflictRequest
//
// Returns ErrUnsupportedType if obj does not match any known model.
func (v *SyncValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SyncRequest:
		return v.validateSyncRequest(ctx, value, fields...)
	case *models.SyncRequest:
		return v.validateSyncRequest(ctx, *value, fields...)

	case models.PendingChange:
		return v.validatePendingChange(ctx, value, fields...)
	case *models.PendingChange:
		return v.validatePendingChange(ctx, *value, fields...)

	case models.ResolveConflictRequest:
		return v.validateResolveConflictRequest(ctx, value, fields...)
	case *models.ResolveConflictRequest:
		return v.validateResolveConflictRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateSyncRequest validates the session-level envelope of a sync request.
// Individual pending changes are deliberately not validated here: per-item
// problems are rejections reported in the response, never fatal to the batch.
//
// Default validated fields: UserID, DeviceID.
func (v *SyncValidator) validateSyncRequest(ctx context.Context, request models.SyncRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldDeviceID}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if request.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldDeviceID:
			if request.DeviceID == "" {
				return ErrInvalidDeviceID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePendingChange validates a single pending change.
//
// Default validated fields: EntityID, Operation, Payload, RowVersion.
//
// The payload check only applies to create and update; a delete carries no
// payload. The row-version check enforces the new-entity sentinel for create
// and a positive last-seen version for update and delete.
func (v *SyncValidator) validatePendingChange(ctx context.Context, change models.PendingChange, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEntityID, FieldOperation, FieldPayload, FieldRowVersion}
	}

	for _, f := range fields {
		switch f {
		case FieldEntityID:
			if change.EntityID <= 0 {
				return ErrInvalidEntityID
			}
		case FieldOperation:
			if !change.Operation.Valid() {
				return ErrInvalidOperation
			}
		case FieldPayload:
			if change.Operation != models.OperationDelete && len(change.Payload) == 0 {
				return ErrEmptyPayload
			}
		case FieldRowVersion:
			switch change.Operation {
			case models.OperationCreate:
				if change.ClientRowVersion != models.NewEntityVersion {
					return ErrCreateHasVersion
				}
			case models.OperationUpdate, models.OperationDelete:
				if change.ClientRowVersion <= models.NewEntityVersion {
					return ErrMissingRowVersion
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateResolveConflictRequest validates the body of a manual resolution.
//
// Default validated fields: ChosenData.
func (v *SyncValidator) validateResolveConflictRequest(ctx context.Context, request models.ResolveConflictRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldChosenData}
	}

	for _, f := range fields {
		switch f {
		case FieldChosenData:
			if len(request.ChosenData) == 0 {
				return ErrEmptyChosenData
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
