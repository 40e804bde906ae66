package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/kotobadev/kotoba-sync/internal/adapter"
	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/models"
)

type agentAuthService struct {
	adapter adapter.ServerAdapter
	logger  *logger.Logger
}

// NewAgentAuthService creates the agent-side auth service. The server adapter
// keeps the bearer token after a successful Register or Login, so no token
// handling leaks into callers.
func NewAgentAuthService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) AgentAuthService {
	return &agentAuthService{adapter: serverAdapter, logger: logger}
}

func (a *agentAuthService) Register(ctx context.Context, login, password string) (int64, error) {
	if strings.TrimSpace(login) == "" || password == "" {
		return 0, ErrInvalidDataProvided
	}

	token, err := a.adapter.Register(ctx, models.User{Login: login, Password: password})
	if err != nil {
		return 0, fmt.Errorf("register on server: %w", err)
	}

	a.logger.Info().Int64("user_id", token.UserID).Msg("registered on server")
	return token.UserID, nil
}

func (a *agentAuthService) Login(ctx context.Context, login, password string) (int64, error) {
	if strings.TrimSpace(login) == "" || password == "" {
		return 0, ErrInvalidDataProvided
	}

	token, err := a.adapter.Login(ctx, models.User{Login: login, Password: password})
	if err != nil {
		return 0, fmt.Errorf("login on server: %w", err)
	}

	a.logger.Info().Int64("user_id", token.UserID).Msg("logged in on server")
	return token.UserID, nil
}
