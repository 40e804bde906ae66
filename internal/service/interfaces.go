package service

import (
	"context"

	"github.com/kotobadev/kotoba-sync/models"
)

// SyncService runs sync sessions and answers conflict queries.
type SyncService interface {
	// Sync executes one full sync round for one device: push the client's
	// pending changes, detect and resolve conflicts, pull the server-side
	// delta, and move the device's checkpoint forward.
	//
	// Returns ErrSyncInProgress when a session for the same (user, device)
	// is already running. Per-item problems never fail the session; they are
	// reported inside the response.
	Sync(ctx context.Context, request models.SyncRequest) (models.SyncResponse, error)

	// ListConflicts returns the user's ledger entries, newest first. An
	// empty status returns entries in every state.
	ListConflicts(ctx context.Context, userID int64, status models.ConflictStatus, limit uint64) ([]models.SyncConflict, error)

	// ResolveConflict settles a pending ledger entry with a human-chosen
	// payload, committing it through the same versioned-store path the
	// engine uses internally.
	ResolveConflict(ctx context.Context, userID int64, conflictID string, chosenData []byte, resolvedBy string) error

	// IgnoreConflict dismisses a pending ledger entry without committing
	// either side.
	IgnoreConflict(ctx context.Context, userID int64, conflictID string, resolvedBy string) error
}

// AuthService handles account registration, credential verification, and the
// JWT token lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService reports build and version information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
