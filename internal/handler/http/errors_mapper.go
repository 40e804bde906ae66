package http

import (
	"errors"
	"net/http"

	"github.com/kotobadev/kotoba-sync/internal/service"
	"github.com/kotobadev/kotoba-sync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrSyncInProgress:          http.StatusConflict,
	service.ErrLockTimeout:             http.StatusConflict,
	service.ErrStorageUnavailable:      http.StatusServiceUnavailable,
	service.ErrConflictNotResolvable:   http.StatusConflict,

	store.ErrLoginAlreadyExists:  http.StatusConflict,
	store.ErrNoUserWasFound:      http.StatusNotFound,
	store.ErrEntityNotFound:      http.StatusNotFound,
	store.ErrVersionConflict:     http.StatusConflict,
	store.ErrDuplicateNaturalKey: http.StatusConflict,
	store.ErrMetadataNotFound:    http.StatusNotFound,
	store.ErrConflictNotFound:    http.StatusNotFound,
	store.ErrConflictNotPending:  http.StatusConflict,

	store.ErrBuildingSQLQuery:      http.StatusInternalServerError,
	store.ErrExecutingQuery:        http.StatusInternalServerError,
	store.ErrExecutingStatement:    http.StatusInternalServerError,
	store.ErrBeginningTransaction:  http.StatusInternalServerError,
	store.ErrCommittingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:           http.StatusInternalServerError,
	store.ErrScanningRows:          http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
