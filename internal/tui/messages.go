package tui

import (
	"github.com/kotobadev/kotoba-sync/models"
)

// NavigateTo switches the root router to another page. Payload, when set, is
// delivered to the target page instead of its Init command.
type NavigateTo struct {
	Page    string
	Payload interface{}
}

// LoginResult finishes the authentication flow.
type LoginResult struct {
	Err      error
	Username string
	UserID   int64
}

// RegisterSuccessNotice is shown on the menu after a successful registration.
type RegisterSuccessNotice struct {
	Username string
}

type wordsLoadedMsg struct {
	words []models.LocalEntity
	err   error
}

type syncDoneMsg struct {
	resp models.SyncResponse
	err  error
}

type conflictsLoadedMsg struct {
	conflicts []models.SyncConflict
	err       error
}

type conflictSettledMsg struct {
	err error
}

type copiedMsg struct {
	err error
}
