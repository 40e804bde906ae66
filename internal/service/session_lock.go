package service

import (
	"sync"
	"time"
)

type lockKey struct {
	userID   int64
	deviceID string
}

type lockEntry struct {
	token      uint64
	acquiredAt time.Time
}

// sessionLocks serializes sync sessions per (user, device) with try-lock
// semantics: a second session for the same device is rejected immediately
// rather than queued. A lock held past the timeout is considered stuck and
// may be taken over by the next acquirer, so a crashed session can never
// block a device forever.
//
// The lock is advisory and in-memory: it protects the non-idempotent sync
// metadata update, not entity writes, which are guarded by the versioned
// store's conditional-write checks.
type sessionLocks struct {
	mu      sync.Mutex
	timeout time.Duration
	held    map[lockKey]lockEntry
	nextTok uint64
}

func newSessionLocks(timeout time.Duration) *sessionLocks {
	return &sessionLocks{
		timeout: timeout,
		held:    make(map[lockKey]lockEntry),
	}
}

// Acquire takes the device's lock. Returns ErrSyncInProgress when another
// session holds it and has not exceeded the timeout. The returned token must
// be passed to Release.
func (l *sessionLocks) Acquire(userID int64, deviceID string) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := lockKey{userID: userID, deviceID: deviceID}

	if entry, ok := l.held[key]; ok {
		if time.Since(entry.acquiredAt) < l.timeout {
			return 0, ErrSyncInProgress
		}
		// Stuck lock: the holding session exceeded the timeout and has
		// lost ownership; its eventual Release becomes a no-op.
	}

	l.nextTok++
	l.held[key] = lockEntry{token: l.nextTok, acquiredAt: time.Now()}

	return l.nextTok, nil
}

// Release frees the device's lock if token still owns it. Returns
// ErrLockTimeout when ownership was lost to a takeover, signalling that the
// session exceeded its lock bound.
func (l *sessionLocks) Release(userID int64, deviceID string, token uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := lockKey{userID: userID, deviceID: deviceID}

	entry, ok := l.held[key]
	if !ok || entry.token != token {
		return ErrLockTimeout
	}

	delete(l.held, key)
	return nil
}
