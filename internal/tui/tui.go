// Package tui implements the agent's interactive terminal interface: the
// login/register flow and the main loop with word browsing, manual sync, and
// conflict review.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/service"
)

// ErrUserQuit reports that the user closed the program from the login flow.
var ErrUserQuit = errors.New("user quit the program")

type TUI struct {
	services *service.ClientServices
}

func New(services *service.ClientServices, _ *logger.Logger) (*TUI, error) {
	return &TUI{services: services}, nil
}

// LoginFlow runs the authentication screens and returns the authenticated
// user ID. Returns [ErrUserQuit] when the user exits without logging in.
func (t *TUI) LoginFlow(ctx context.Context) (int64, error) {
	pages := map[string]tea.Model{
		"menu":     NewMenuModel(),
		"login":    NewLoginModel(ctx, t.services.AuthService),
		"register": NewRegisterModel(ctx, t.services.AuthService),
	}

	root := NewRootModel(pages, "menu")
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return 0, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return 0, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return 0, ErrUserQuit
	}

	return result.resultID, nil
}

// MainLoop runs the post-login screens until the user logs out or quits.
func (t *TUI) MainLoop(ctx context.Context, userID int64) (logout bool, err error) {
	model := newMainLoopModel(ctx, t.services, userID)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(mainLoopModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}
