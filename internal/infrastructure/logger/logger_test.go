package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(level zapcore.Level) (*LoggerAdapter, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewFromZap(zap.New(core)), logs
}

func TestLoggerAdapter_KeyValueFields(t *testing.T) {
	log, logs := newObserved(zapcore.DebugLevel)

	log.Info("Evaluation completed", "total_score", 82, "zone", "optimal")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, "Evaluation completed", entry.Message)
	assert.Equal(t, int64(82), entry.ContextMap()["total_score"])
	assert.Equal(t, "optimal", entry.ContextMap()["zone"])
}

func TestLoggerAdapter_Levels(t *testing.T) {
	log, logs := newObserved(zapcore.WarnLevel)

	log.Debug("debug")
	log.Info("info")
	log.Warn("warn")
	log.Error("error")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[1].Level)
}

func TestLoggerAdapter_WithFieldDoesNotLeak(t *testing.T) {
	log, logs := newObserved(zapcore.DebugLevel)

	child := log.WithField("evaluation_id", "eval_1")
	child.Info("child")
	log.Info("parent")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "eval_1", logs.All()[0].ContextMap()["evaluation_id"])
	assert.NotContains(t, logs.All()[1].ContextMap(), "evaluation_id")
}

func TestLoggerAdapter_WithFields(t *testing.T) {
	log, logs := newObserved(zapcore.DebugLevel)

	log.WithFields(map[string]any{"a": "1", "b": "2"}).Warn("fields")

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "1", ctx["a"])
	assert.Equal(t, "2", ctx["b"])
}

func TestNewLoggerAdapter_InvalidLevel(t *testing.T) {
	_, err := NewLoggerAdapter(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Info("discarded", "k", "v")
	assert.NoError(t, log.Close())
}
