package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewRespectsLevel(t *testing.T) {
	logger, err := New("warn", false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestDebugOverridesLevel(t *testing.T) {
	logger, err := New("error", true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("loud", false)
	assert.Error(t, err)
}

func TestToFileWithoutPathIsNop(t *testing.T) {
	logger, err := ToFile("", "info", false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestToFileWritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trainer.log")
	logger, err := ToFile(path, "info", false)
	require.NoError(t, err)
	logger.Info("hello")
	assert.NoError(t, logger.Sync())
	assert.FileExists(t, path)
}
