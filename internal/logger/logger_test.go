package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := Init(Options{Output: &buf})

	log.Debug("hidden")
	log.Info("diary created", "diary_id", "d1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "diary created", rec["msg"])
	assert.Equal(t, "d1", rec["diary_id"])
	assert.Same(t, log, slog.Default())
}

func TestInitDevelopmentLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := Init(Options{Development: true, Output: &buf})

	log.Debug("guard denied", "guard", "verified")
	assert.Contains(t, buf.String(), "guard denied")
	assert.Contains(t, buf.String(), "guard=verified")
}
