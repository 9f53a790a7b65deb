package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func useObserved(level zap.AtomicLevel) *observer.ObservedLogs {
	core, logs := observer.New(level)
	sugar = zap.New(core).Sugar()
	return logs
}

func TestInit(t *testing.T) {
	Init("", false)
	assert.NotNil(t, sugar)
}

func TestInitWritesLogFile(t *testing.T) {
	dir := t.TempDir()

	Init(dir, false)
	Info("file sink check")
	Sync()

	data, err := os.ReadFile(filepath.Join(dir, "gymdesk.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "file sink check")

	Init("", false)
}

func TestInfo(t *testing.T) {
	logs := useObserved(zap.NewAtomicLevelAt(zap.InfoLevel))

	Info("test message", "key1", "value1")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "test message", entries[0].Message)
	assert.Equal(t, "value1", entries[0].ContextMap()["key1"])
}

func TestError(t *testing.T) {
	logs := useObserved(zap.NewAtomicLevelAt(zap.InfoLevel))

	Error("test error", "error", assert.AnError.Error())

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "test error", entries[0].Message)
}

func TestDebugFilteredAtInfoLevel(t *testing.T) {
	logs := useObserved(zap.NewAtomicLevelAt(zap.InfoLevel))

	Debug("should be dropped")

	assert.Empty(t, logs.All())
}

func TestDebugAtDebugLevel(t *testing.T) {
	logs := useObserved(zap.NewAtomicLevelAt(zap.DebugLevel))

	Debug("test debug")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "test debug", entries[0].Message)
}

func TestInfof(t *testing.T) {
	logs := useObserved(zap.NewAtomicLevelAt(zap.InfoLevel))

	Infof("test %s", "formatted")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "test formatted", entries[0].Message)
}
