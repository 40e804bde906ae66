package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrSyncInProgress is returned when a second sync session for the same
	// (user, device) arrives while one is already running. The client should
	// retry later with backoff; no partial state is created.
	ErrSyncInProgress = errors.New("sync already in progress for this device")

	// ErrLockTimeout is returned when a session lock could not be released
	// within the configured bound; the session is failed and safe to retry.
	ErrLockTimeout = errors.New("session lock timed out")

	// ErrStorageUnavailable is returned when the session aborts on an
	// unrecoverable storage error. Whatever was committed before the abort
	// stays committed and is reflected in the device's sync metadata.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrConflictNotResolvable is returned when a manual resolution targets a
	// ledger entry that is already resolved or ignored.
	ErrConflictNotResolvable = errors.New("conflict is not pending resolution")
)
