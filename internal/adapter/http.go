package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/kotobadev/kotoba-sync/internal/config"
	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/utils"
	"github.com/kotobadev/kotoba-sync/models"
)

type httpServerAdapter struct {
	client *resty.Client

	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// serverCfg.BaseURL and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if serverCfg.BaseURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(serverCfg config.AgentServer, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(serverCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(serverCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the user credentials to
// POST /api/user/register. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/user/register")
	if err != nil {
		return models.Token{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	return h.captureToken(resp)
}

// Login implements [ServerAdapter]. It POSTs the user credentials to
// POST /api/user/login. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/user/login")
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	return h.captureToken(resp)
}

// Sync implements [ServerAdapter]. It POSTs the device's pending changes to
// POST /api/sync and decodes the session outcome.
func (h *httpServerAdapter) Sync(ctx context.Context, req models.SyncRequest) (models.SyncResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/sync")
	if err != nil {
		return models.SyncResponse{}, fmt.Errorf("sync request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SyncResponse{}, err
	}

	var sr models.SyncResponse
	if err = json.Unmarshal(resp.Body(), &sr); err != nil {
		return models.SyncResponse{}, fmt.Errorf("decode sync response: %w", err)
	}

	return sr, nil
}

// ListConflicts implements [ServerAdapter]. It GETs /api/conflicts filtered
// by status, newest first, up to limit rows.
func (h *httpServerAdapter) ListConflicts(ctx context.Context, status string, limit int) ([]models.SyncConflict, error) {
	req := h.authedRequest(ctx)
	if status != "" {
		req.SetQueryParam("status", status)
	}
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	resp, err := req.Get("/api/conflicts")
	if err != nil {
		return nil, fmt.Errorf("list conflicts request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var conflicts []models.SyncConflict
	if err = json.Unmarshal(resp.Body(), &conflicts); err != nil {
		return nil, fmt.Errorf("decode conflicts response: %w", err)
	}

	return conflicts, nil
}

// ResolveConflict implements [ServerAdapter]. It POSTs the chosen payload to
// POST /api/conflicts/{id}/resolve.
func (h *httpServerAdapter) ResolveConflict(ctx context.Context, conflictID string, chosenData json.RawMessage) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.ResolveConflictRequest{ChosenData: chosenData}).
		Post("/api/conflicts/" + url.PathEscape(conflictID) + "/resolve")
	if err != nil {
		return fmt.Errorf("resolve conflict request: %w", err)
	}

	return mapHTTPError(resp)
}

// IgnoreConflict implements [ServerAdapter]. It POSTs to
// POST /api/conflicts/{id}/ignore.
func (h *httpServerAdapter) IgnoreConflict(ctx context.Context, conflictID string) error {
	resp, err := h.authedRequest(ctx).
		Post("/api/conflicts/" + url.PathEscape(conflictID) + "/ignore")
	if err != nil {
		return fmt.Errorf("ignore conflict request: %w", err)
	}

	return mapHTTPError(resp)
}

// ServerVersion implements [ServerAdapter]. It GETs the public /api/version
// endpoint and returns the plain-text version string.
func (h *httpServerAdapter) ServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("server version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(string(resp.Body())), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// captureToken extracts the bearer token from the Authorization response
// header, stores it, and returns it together with the user ID encoded in the
// token's subject claim.
func (h *httpServerAdapter) captureToken(resp *resty.Response) (models.Token, error) {
	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("parse bearer token: %w", err)
	}

	userID, err := parseUserIDFromJWT(token)
	if err != nil {
		return models.Token{}, fmt.Errorf("parse user id from token: %w", err)
	}

	h.SetToken(token)
	return models.Token{SignedString: token, UserID: userID}, nil
}

// parseUserIDFromJWT reads the subject claim without verifying the signature.
// The agent has no sign key; the server verifies the token on every request.
func parseUserIDFromJWT(tokenString string) (int64, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, err
	}

	return strconv.ParseInt(sub, 10, 64)
}
