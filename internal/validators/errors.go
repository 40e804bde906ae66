package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID      = errors.New("invalid user ID")
	ErrInvalidDeviceID    = errors.New("invalid device ID")
	ErrInvalidEntityID    = errors.New("invalid entity ID")
	ErrInvalidOperation   = errors.New("invalid operation")
	ErrEmptyPayload       = errors.New("payload is required")
	ErrMissingRowVersion  = errors.New("row version is required for update and delete")
	ErrCreateHasVersion   = errors.New("create must carry the new-entity version sentinel")
	ErrInvalidConflictID  = errors.New("invalid conflict ID")
	ErrEmptyChosenData    = errors.New("chosen data is required")
)
