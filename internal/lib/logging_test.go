package lib

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn", "")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "node", "root")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "node=root")
	assert.Contains(t, out, "source=logging_test.go:")
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "debug", "JSON")
	require.NoError(t, err)

	logger.Debug("frame", "seq", 3)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "frame", line["msg"])
	assert.EqualValues(t, 3, line["seq"])
	source, ok := line["source"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "logging_test.go", source["file"])
}

func TestNewLoggerRejectsBadInput(t *testing.T) {
	_, err := NewLogger(&bytes.Buffer{}, "loud", "text")
	assert.Error(t, err)

	_, err = NewLogger(&bytes.Buffer{}, "info", "xml")
	assert.ErrorContains(t, err, "xml")
}
