package scroll

import (
	"sync"

	"github.com/nexusnext/nexusnext/common"
)

// progressDistance is the scroll offset, in pixels, over which progress runs
// from 0 to 1.
const progressDistance = 800

// defaultWheelStep is how many pixels of scroll offset one wheel notch adds.
const defaultWheelStep = 100

// trackerImpl is the implementation of the Tracker interface.
type trackerImpl struct {
	mu *sync.Mutex

	offset    float32
	progress  float32
	wheelStep float32

	// dirty marks that wheel input arrived since the last Publish. Any number
	// of wheel events between two frames collapse into a single recomputation.
	dirty    bool
	detached bool
}

// Tracker converts wheel input into a normalized scroll progress scalar in
// [0, 1]. Wheel events only mark the tracker dirty; the actual recomputation
// happens in Publish, called once per frame, so a burst of events between two
// frames produces exactly one progress update. The tracker is the single
// writer of the progress value; scenes read it every frame.
type Tracker interface {
	// OnWheel records a wheel notch delta. Positive deltas (wheel up) reduce
	// the scroll offset, negative deltas increase it; the offset never goes
	// below zero. Called from the window's scroll callback.
	//
	// Parameters:
	//   - delta: the wheel delta (positive = up, negative = down)
	OnWheel(delta float32)

	// Publish recomputes progress from the accumulated offset if any wheel
	// input arrived since the previous call. Call once per frame.
	//
	// Returns:
	//   - float32: the current progress in [0, 1]
	//   - bool: true if this call recomputed the progress
	Publish() (float32, bool)

	// Progress returns the last published progress in [0, 1].
	//
	// Returns:
	//   - float32: the current progress
	Progress() float32

	// Offset returns the accumulated scroll offset in pixels.
	//
	// Returns:
	//   - float32: the current offset, never negative
	Offset() float32

	// Detach stops the tracker: subsequent wheel input is dropped and any
	// pending recomputation is discarded. Safe to call more than once.
	Detach()
}

var _ Tracker = &trackerImpl{}

// NewTracker creates a Tracker with progress 0.
//
// Returns:
//   - Tracker: the newly created tracker
func NewTracker() Tracker {
	return &trackerImpl{
		mu:        &sync.Mutex{},
		wheelStep: defaultWheelStep,
	}
}

func (t *trackerImpl) OnWheel(delta float32) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.detached {
		return
	}
	t.offset -= delta * t.wheelStep
	if t.offset < 0 {
		t.offset = 0
	}
	t.dirty = true
}

func (t *trackerImpl) Publish() (float32, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.dirty || t.detached {
		return t.progress, false
	}
	t.dirty = false
	t.progress = common.Clamp(t.offset/progressDistance, 0, 1)
	return t.progress, true
}

func (t *trackerImpl) Progress() float32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress
}

func (t *trackerImpl) Offset() float32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.offset
}

func (t *trackerImpl) Detach() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.detached = true
	t.dirty = false
}
