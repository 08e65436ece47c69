package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJsonToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.log")
	logger, err := New("debug", path)
	require.NoError(t, err)

	logger.Debug("catalog loaded", zap.Int("items", 20))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"catalog loaded"`)
	assert.Contains(t, string(data), `"items":20`)
}

func TestNewLevel(t *testing.T) {
	logger, err := New("warn", filepath.Join(t.TempDir(), "x.log"))
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))

	_, err = New("chatty")
	assert.Error(t, err)
}

func TestVerbose(t *testing.T) {
	assert.Equal(t, "debug", Verbose(true))
	assert.Equal(t, "info", Verbose(false))
}
