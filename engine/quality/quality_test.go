package quality

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		signals Signals
		want    Tier
	}{
		{"narrow viewport", Signals{ViewportWidth: 500, CPUCount: 8, Network: Network4G}, TierLow},
		{"boundary below low threshold", Signals{ViewportWidth: 767, CPUCount: 8, Network: Network4G}, TierLow},
		{"low cpu count", Signals{ViewportWidth: 1920, CPUCount: 2, Network: Network4G}, TierLow},
		{"slow 2g network", Signals{ViewportWidth: 1920, CPUCount: 8, Network: NetworkSlow2G}, TierLow},
		{"2g network", Signals{ViewportWidth: 1920, CPUCount: 8, Network: Network2G}, TierLow},
		{"medium width lower bound", Signals{ViewportWidth: 768, CPUCount: 8, Network: Network4G}, TierMedium},
		{"medium width upper bound", Signals{ViewportWidth: 1023, CPUCount: 8, Network: Network4G}, TierMedium},
		{"wide viewport", Signals{ViewportWidth: 1024, CPUCount: 8, Network: Network4G}, TierHigh},
		{"desktop", Signals{ViewportWidth: 1920, CPUCount: 16, Network: Network4G}, TierHigh},
		{"unknown network does not force low", Signals{ViewportWidth: 1920, CPUCount: 8, Network: NetworkUnknown}, TierHigh},
		{"unknown cpu does not force low", Signals{ViewportWidth: 1920, CPUCount: 0, Network: Network4G}, TierHigh},
		{"3g network is not slow", Signals{ViewportWidth: 1920, CPUCount: 8, Network: Network3G}, TierHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.signals))
		})
	}
}

func TestSettingsForScalesWithTier(t *testing.T) {
	low := SettingsFor(TierLow)
	medium := SettingsFor(TierMedium)
	high := SettingsFor(TierHigh)

	assert.Less(t, low.ParticleCount, medium.ParticleCount)
	assert.Less(t, medium.ParticleCount, high.ParticleCount)
	assert.Less(t, low.SegmentCount, medium.SegmentCount)
	assert.Less(t, medium.SegmentCount, high.SegmentCount)
	assert.False(t, low.Antialias)
	assert.True(t, high.Antialias)
}

func TestClassifyRTT(t *testing.T) {
	assert.Equal(t, NetworkSlow2G, classifyRTT(2*time.Second))
	assert.Equal(t, Network2G, classifyRTT(800*time.Millisecond))
	assert.Equal(t, Network3G, classifyRTT(400*time.Millisecond))
	assert.Equal(t, Network4G, classifyRTT(50*time.Millisecond))
}

func TestSelectorInitialClassification(t *testing.T) {
	s := NewSelector(Signals{ViewportWidth: 1920, CPUCount: 8, Network: Network4G})
	defer s.Close()

	assert.Equal(t, TierHigh, s.Current().Tier)
}

func TestSelectorDebouncedResize(t *testing.T) {
	s := NewSelector(
		Signals{ViewportWidth: 1920, CPUCount: 8, Network: Network4G},
		WithDebounce(20*time.Millisecond),
	)
	defer s.Close()

	var notifications atomic.Int64
	changed := make(chan Settings, 4)
	s.Subscribe(func(settings Settings) {
		notifications.Add(1)
		changed <- settings
	})

	// A burst of resizes inside the debounce window collapses into a single
	// recomputation using the final width.
	s.Observe(1400)
	s.Observe(900)
	s.Observe(500)

	select {
	case settings := <-changed:
		assert.Equal(t, TierLow, settings.Tier)
	case <-time.After(time.Second):
		t.Fatal("expected a tier change notification")
	}

	// Let any stray timers fire before counting.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int64(1), notifications.Load())
	assert.Equal(t, TierLow, s.Current().Tier)
}

func TestSelectorSameTierResizeIsSilent(t *testing.T) {
	s := NewSelector(
		Signals{ViewportWidth: 1920, CPUCount: 8, Network: Network4G},
		WithDebounce(10*time.Millisecond),
	)
	defer s.Close()

	var notifications atomic.Int64
	s.Subscribe(func(Settings) { notifications.Add(1) })

	s.Observe(1600)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int64(0), notifications.Load())
	assert.Equal(t, TierHigh, s.Current().Tier)
}

func TestSelectorCloseCancelsPending(t *testing.T) {
	s := NewSelector(
		Signals{ViewportWidth: 1920, CPUCount: 8, Network: Network4G},
		WithDebounce(20*time.Millisecond),
	)

	var notifications atomic.Int64
	s.Subscribe(func(Settings) { notifications.Add(1) })

	s.Observe(500)
	s.Close()
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, int64(0), notifications.Load())

	// Observe after Close is a no-op.
	s.Observe(500)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int64(0), notifications.Load())
}

func TestSelectorSetNetworkAppliesOnNextClassification(t *testing.T) {
	s := NewSelector(
		Signals{ViewportWidth: 1920, CPUCount: 8, Network: Network4G},
		WithDebounce(10*time.Millisecond),
	)
	defer s.Close()

	changed := make(chan Settings, 1)
	s.Subscribe(func(settings Settings) { changed <- settings })

	s.SetNetwork(Network2G)
	require.Equal(t, TierHigh, s.Current().Tier)

	s.Observe(1920)
	select {
	case settings := <-changed:
		assert.Equal(t, TierLow, settings.Tier)
	case <-time.After(time.Second):
		t.Fatal("expected a tier change notification")
	}
}
