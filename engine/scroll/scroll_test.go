package scroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestProgressMatchesOffsetOverDistance(t *testing.T) {
	tr := NewTracker()

	// 4 notches down = 400px of offset = progress 0.5.
	for i := 0; i < 4; i++ {
		tr.OnWheel(-1)
	}
	progress, updated := tr.Publish()

	assert.True(t, updated)
	assert.InDelta(t, 0.5, float64(progress), 1e-6)
	assert.InDelta(t, 400, float64(tr.Offset()), 1e-6)
}

func TestProgressClampsAtOne(t *testing.T) {
	tr := NewTracker()

	for i := 0; i < 50; i++ {
		tr.OnWheel(-1)
	}
	progress, _ := tr.Publish()

	assert.Equal(t, float32(1), progress)
}

func TestOffsetNeverNegative(t *testing.T) {
	tr := NewTracker()

	tr.OnWheel(5) // scroll up past the top
	progress, _ := tr.Publish()

	assert.Equal(t, float32(0), tr.Offset())
	assert.Equal(t, float32(0), progress)
}

func TestBurstCoalescesIntoOnePublish(t *testing.T) {
	tr := NewTracker()

	// Many events between two frames produce exactly one recomputation.
	for i := 0; i < 100; i++ {
		tr.OnWheel(-0.1)
	}
	_, updated := tr.Publish()
	assert.True(t, updated)

	// The next frame with no new input recomputes nothing.
	_, updated = tr.Publish()
	assert.False(t, updated)
}

func TestScrollUpAfterDownReducesProgress(t *testing.T) {
	tr := NewTracker()

	for i := 0; i < 8; i++ {
		tr.OnWheel(-1)
	}
	tr.Publish()

	for i := 0; i < 4; i++ {
		tr.OnWheel(1)
	}
	progress, updated := tr.Publish()

	assert.True(t, updated)
	assert.InDelta(t, 0.5, float64(progress), 1e-6)
}

func TestDetachDropsInputAndIsIdempotent(t *testing.T) {
	tr := NewTracker()

	tr.OnWheel(-2)
	tr.Publish()
	before := tr.Progress()

	tr.Detach()
	tr.Detach() // safe to call twice

	tr.OnWheel(-5)
	progress, updated := tr.Publish()

	assert.False(t, updated)
	assert.Equal(t, before, progress)
}

func TestDetachDiscardsPendingUpdate(t *testing.T) {
	tr := NewTracker()

	tr.OnWheel(-3)
	tr.Detach()

	_, updated := tr.Publish()
	assert.False(t, updated)
	assert.Equal(t, float32(0), tr.Progress())
}
