package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/portfolio/internal/config"
)

func TestNew_StderrRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Level: "warn"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.Info("quiet")
	logger.Warn("loud", "owner", "Ada")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "msg=loud")
	assert.Contains(t, out, "owner=Ada")
}

func TestNew_RotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "portfolio.log")
	var buf bytes.Buffer

	logger, closer, err := New(FromConfig(config.LogConfig{Level: "debug", File: path, MaxSizeMB: 1}), &buf)
	require.NoError(t, err)
	logger.Debug("plan_repair", "repair", "tasks[0].progress clamped")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "plan_repair")
	assert.Empty(t, buf.String())
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New(Options{Level: "chatty"}, &bytes.Buffer{})
	assert.Error(t, err)
}
