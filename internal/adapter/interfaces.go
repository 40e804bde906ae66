// Package adapter provides transport-layer abstractions for communicating
// with the kotoba-sync server.
//
// The primary abstraction is [ServerAdapter], which decouples the agent's
// service layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"
	"encoding/json"

	"github.com/kotobadev/kotoba-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the kotoba-sync
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It should be called immediately
	// after a successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register sends a registration request with the provided credentials.
	// On success it stores the returned bearer token via SetToken and
	// returns the token together with the user ID the server assigned.
	Register(ctx context.Context, user models.User) (models.Token, error)

	// Login authenticates the user. On success it stores the returned bearer
	// token via SetToken and returns it together with the user ID encoded in
	// the token.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// Sync runs one push+pull session: it sends the device's pending changes
	// and returns the server's response, including entities to upsert
	// locally, deletions to apply, and conflicts parked for manual
	// resolution. Returns [ErrSyncInProgress] (wrapped) when another session
	// for the same device is already running.
	Sync(ctx context.Context, req models.SyncRequest) (models.SyncResponse, error)

	// ListConflicts fetches the caller's conflict ledger rows with the given
	// status ("pending", "resolved" or "ignored"), newest first, up to limit
	// rows.
	ListConflicts(ctx context.Context, status string, limit int) ([]models.SyncConflict, error)

	// ResolveConflict settles a pending conflict with the chosen payload.
	// Returns [ErrNotFound] if the conflict does not exist or belongs to
	// another user, and [ErrConflict] if it is no longer pending.
	ResolveConflict(ctx context.Context, conflictID string, chosenData json.RawMessage) error

	// IgnoreConflict dismisses a pending conflict, keeping current server
	// state. Returns [ErrConflict] if the conflict is no longer pending.
	IgnoreConflict(ctx context.Context, conflictID string) error

	// ServerVersion fetches the server's build version string.
	ServerVersion(ctx context.Context) (string, error)
}
