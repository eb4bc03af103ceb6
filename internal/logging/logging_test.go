package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"civicreport-backend-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDailyFileRotatesOnDateChange(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	file, err := NewDailyFile(dir, 7)
	require.NoError(t, err)
	defer file.Close()

	file.now = func() time.Time { return day }
	_, err = file.Write([]byte("first\n"))
	require.NoError(t, err)

	day = day.Add(2 * time.Minute)
	_, err = file.Write([]byte("second\n"))
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "app-2026-03-02.log"))
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(content))
	content, err = os.ReadFile(filepath.Join(dir, "app-2026-03-01.log"))
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(content))
}

func TestCleanupOldLogsKeepsRetentionWindow(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"app-2026-01-01.log", "app-2026-01-05.log", "app-2026-01-07.log", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	cleanupOldLogs(dir, 3, time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := []string{}
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	assert.ElementsMatch(t, []string{"app-2026-01-05.log", "app-2026-01-07.log", "notes.txt"}, names)
}

func TestNewWritesJSONToFile(t *testing.T) {
	dir := t.TempDir()
	file, err := NewDailyFile(dir, 1)
	require.NoError(t, err)
	defer file.Close()

	logger := New(config.Config{LogLevel: "warn", Env: "production"}, file)
	logger.Info("dropped")
	logger.Warn("kept")
	_ = logger.Sync()

	content, err := os.ReadFile(filepath.Join(dir, "app-"+time.Now().Format(dateLayout)+".log"))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "dropped")
	assert.True(t, strings.Contains(string(content), `"msg":"kept"`))
	assert.Contains(t, string(content), `"timestamp"`)
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, parseLevel("loud").Level())
	assert.Equal(t, zapcore.DebugLevel, parseLevel(" DEBUG ").Level())
}
