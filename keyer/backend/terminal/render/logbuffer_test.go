package render

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogBuffer_Wraps(t *testing.T) {
	lb := NewLogBuffer(3)
	assert.Nil(t, lb.GetRecent(0))

	for _, msg := range []string{"a", "b", "c", "d"} {
		lb.Add(LogEntry{Message: msg})
	}

	recent := lb.GetRecent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, "d", recent[0].Message, "newest first")
	assert.Equal(t, "c", recent[1].Message)
	assert.Equal(t, "b", recent[2].Message)

	assert.Len(t, lb.GetRecent(2), 2)
	assert.Equal(t, 3, lb.Len())

	lb.Clear()
	assert.Zero(t, lb.Len())
	assert.Nil(t, lb.GetRecent(5))
}

func TestLogBufferHandler(t *testing.T) {
	lb := NewLogBuffer(10)
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)

	logger := slog.New(NewLogBufferHandler(lb, level))

	logger.Debug("hidden")
	logger.Info("Element", "pulse", "dah", "duration_ms", 240)
	logger.With("backend", "terminal").WithGroup("paddle").Warn("stuck", "key", "z")

	recent := lb.GetRecent(0)
	require.Len(t, recent, 2)
	assert.Equal(t, "stuck backend=terminal paddle.key=z", recent[0].Message)
	assert.Equal(t, slog.LevelWarn, recent[0].Level)
	assert.Equal(t, "Element pulse=dah duration_ms=240", recent[1].Message)

	level.Set(slog.LevelDebug)
	logger.Debug("now visible")
	assert.Equal(t, "now visible", lb.GetRecent(1)[0].Message)
}

func TestFormatLogEntry(t *testing.T) {
	entry := LogEntry{
		Time:    time.Date(2024, 5, 1, 13, 4, 5, 6_000_000, time.UTC),
		Level:   slog.LevelInfo,
		Message: "Iambic keyer ready",
	}
	assert.Equal(t, "13:04:05.006 [INF] Iambic keyer ready", FormatLogEntry(entry))

	entry.Level = slog.Level(2)
	assert.Contains(t, FormatLogEntry(entry), "[???]")
}
