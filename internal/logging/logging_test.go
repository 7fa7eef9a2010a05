package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/config"
)

func TestNewLevels(t *testing.T) {
	log, err := New(&config.Config{Mode: "development"})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log, err = New(&config.Config{Mode: "production"})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log, err = New(&config.Config{Mode: "production", Log: config.Log{Level: "warn"}})
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	_, err = New(&config.Config{Log: config.Log{Level: "loud"}})
	assert.Error(t, err)
}

func TestNewWritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mines.log")
	log, err := New(&config.Config{Mode: "production", Log: config.Log{File: path}})
	require.NoError(t, err)
	log.SetOutput(os.Stderr)

	log.WithField("size", 9).Info("new game")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"new game"`)
	assert.Contains(t, string(b), `"size":9`)
}
