package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLogging(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Init(dir))
	t.Cleanup(Close)

	Info("session %s started", "abc")
	Error("switch failed: %v", "EPERM")
	Close()

	data, err := os.ReadFile(filepath.Join(dir, time.Now().Format("2006-01-02")+".log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] session abc started\n")
	assert.Contains(t, string(data), "[EROR] switch failed: EPERM\n")

	info, err := os.Stat(filepath.Join(dir, time.Now().Format("2006-01-02")+".log"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	Warn("account %q expired", "bob")
	assert.Contains(t, buf.String(), "[WARN] account \"bob\" expired\n")
	assert.NotContains(t, buf.String(), "\033[")
}

func TestSilentByDefault(t *testing.T) {
	SetOutput(nil)
	assert.NotPanics(t, func() { Info("nothing to see") })
	assert.Empty(t, logDir)
}
