package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, time.UTC)

	l.Info("form_opened", map[string]any{"form_id": "abc"})
	l.Error("employee_lookup_failed", errors.New("boom"), nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "info", first["level"])
	assert.Equal(t, "form_opened", first["msg"])
	assert.Equal(t, "abc", first["form_id"])
	assert.NotEmpty(t, first["ts"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "error", second["level"])
	assert.Equal(t, "boom", second["error"])
}

func TestLoggerNilSafe(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Warn("ignored", nil) })
}
