package logger

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gang678/studentdocument/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readJSONLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	return lines
}

func TestFileHookRoutesByType(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.LogConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: filepath.Join(dir, "app.log"),
		MaxSize:  1,
	}
	_, err := InitLogger(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { LoggerInstance = nil })

	LogError(errors.New("boom"), "req-1", 7, "127.0.0.1", "/api/role", "POST", nil)
	LogAuditOperation(7, "alice", "role:add", "/api/role", "denied", "127.0.0.1", "test", "req-2", nil)
	LogBusinessOperation("create_role", 7, "alice", "127.0.0.1", "req-3", "success", "ok",
		map[string]interface{}{"role_id": 3, "type": "overridden"})
	WithFields(logrus.Fields{"component": "test"}).Info("plain message")

	errorLines := readJSONLines(t, filepath.Join(dir, "error.log"))
	require.Len(t, errorLines, 1)
	assert.Equal(t, "boom", errorLines[0]["error"])

	auditLines := readJSONLines(t, filepath.Join(dir, "audit.log"))
	require.Len(t, auditLines, 1)
	assert.Equal(t, "denied", auditLines[0]["result"])

	businessLines := readJSONLines(t, filepath.Join(dir, "business.log"))
	require.Len(t, businessLines, 1)
	assert.Equal(t, "business", businessLines[0]["type"])
	assert.EqualValues(t, 3, businessLines[0]["role_id"])

	defaultLines := readJSONLines(t, filepath.Join(dir, "app.log"))
	require.Len(t, defaultLines, 1)
	assert.Equal(t, "plain message", defaultLines[0]["message"])
}

func TestHelpersAreNoopWithoutLogger(t *testing.T) {
	LoggerInstance = nil
	assert.NotPanics(t, func() {
		LogError(errors.New("x"), "", 0, "", "", "", nil)
		LogSystemEvent("db", "connect", "ok", logrus.InfoLevel, nil)
		WithFields(logrus.Fields{"k": "v"}).Debug("std logger")
	})
}

func TestReloadCallbackUpdatesLevel(t *testing.T) {
	lm, err := InitLogger(&config.LogConfig{Level: "info", Format: "text", Output: "stdout"})
	require.NoError(t, err)
	t.Cleanup(func() { LoggerInstance = nil })

	newCfg := &config.Config{Log: config.LogConfig{Level: "debug", Format: "text", Output: "stdout"}}
	require.NoError(t, ReloadCallback(nil, newCfg))
	assert.Equal(t, logrus.DebugLevel, lm.GetLogger().GetLevel())

	newCfg.Log.Level = "nonsense"
	assert.Error(t, ReloadCallback(nil, newCfg))
}
