package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same login already exists in the database.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrEntityNotFound is returned when a Get or conditional write targets an
	// entity (identified by entity_type and entity_id) that does not exist.
	ErrEntityNotFound = errors.New("entity was not found")

	// ErrVersionConflict is returned when an optimistic-locking check fails:
	// the expected version supplied by the caller does not match the current
	// version stored in the database, meaning another device or session has
	// modified the record since the caller last observed it.
	ErrVersionConflict = errors.New("entity version conflict occurred")

	// ErrDuplicateNaturalKey is returned when a Create collides with an
	// existing live row carrying the same natural key (e.g. the same
	// vocabulary term in the same language for the same user).
	ErrDuplicateNaturalKey = errors.New("entity with the same natural key already exists")

	// ErrMetadataNotFound is returned when no sync_metadata row exists yet
	// for a (user, device) pair, i.e. the device has never synced.
	ErrMetadataNotFound = errors.New("sync metadata was not found")

	// ErrConflictNotFound is returned when a ledger lookup targets a
	// conflict_id that does not exist.
	ErrConflictNotFound = errors.New("sync conflict was not found")

	// ErrConflictNotPending is returned when a resolution is attempted on a
	// ledger entry that is already Resolved or Ignored; those rows are
	// immutable except for audit fields.
	ErrConflictNotPending = errors.New("sync conflict is not pending")

	// ErrLocalStateNotFound is returned by the agent's sync-state repository
	// when the device has no stored identity or checkpoint yet.
	ErrLocalStateNotFound = errors.New("local sync state not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommittingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommittingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
