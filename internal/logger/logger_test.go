package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLogger_RoleField verifies that every log entry produced by a logger
// created with NewLogger contains the expected "role" field.
func TestNewLogger_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("test-role")
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-role", entry["role"])
}

// TestNewLogger_CallerFieldName verifies that the caller field is named "func".
func TestNewLogger_CallerFieldName(t *testing.T) {
	NewLogger("caller-role") // sets zerolog.CallerFieldName as a side-effect
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

// TestFromContext_ReturnsAttachedLogger verifies that a logger attached to a
// context is the one returned by FromContext.
func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	parent := zerolog.New(&buf).With().Str("marker", "attached").Logger()
	ctx := parent.WithContext(context.Background())

	l := FromContext(ctx)
	require.NotNil(t, l)

	l.Info().Msg("from context")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "attached", entry["marker"])
}

// TestFromRequest_ReturnsAttachedLogger verifies that FromRequest extracts
// the logger stored in the request context.
func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	parent := zerolog.New(&buf).With().Str("marker", "req").Logger()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(parent.WithContext(r.Context()))

	l := FromRequest(r)
	l.Info().Msg("from request")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req", entry["marker"])
}

// TestNop_DiscardsOutput verifies that the no-op logger emits nothing.
func TestNop_DiscardsOutput(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)
	l.Info().Msg("discarded")
}
