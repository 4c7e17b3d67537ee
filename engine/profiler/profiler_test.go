package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTickBelowIntervalLogsNothing(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := NewProfiler(zap.New(core))

	assert.False(t, p.Tick())
	assert.Zero(t, logs.Len())
}

func TestTickLogsFrameStatsAtInfo(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := NewProfiler(zap.New(core))
	p.lastTime = time.Now().Add(-2 * time.Second)
	p.frameCount = 119

	require.True(t, p.Tick())

	// Stats must survive a production-level logger, where Debug is dropped.
	entries := logs.FilterMessage("frame stats").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	fps, ok := fields["fps"].(float64)
	require.True(t, ok)
	assert.InDelta(t, 60.0, fps, 5.0)
}
