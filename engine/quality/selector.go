package quality

import (
	"runtime"
	"sync"
	"time"
)

// defaultDebounce is how long the selector waits after the last observed
// resize before re-classifying, so rapid resize events collapse into a single
// recomputation.
const defaultDebounce = 100 * time.Millisecond

// selectorImpl is the implementation of the Selector interface.
type selectorImpl struct {
	mu *sync.Mutex

	signals  Signals
	settings Settings
	debounce time.Duration

	pending     *time.Timer
	subscribers []func(Settings)
	closed      bool
}

// Selector owns the current quality tier. It classifies device signals once
// at construction and re-classifies after debounced viewport resizes,
// notifying subscribers only when the tier actually changes. The selector is
// the single writer of the tier; scenes are read-only subscribers.
type Selector interface {
	// Current returns the settings for the currently selected tier.
	//
	// Returns:
	//   - Settings: the current quality settings
	Current() Settings

	// Subscribe registers a callback invoked with the new settings whenever
	// the selected tier changes. The callback runs on the selector's timer
	// goroutine and must not block.
	//
	// Parameters:
	//   - fn: the callback to register
	Subscribe(fn func(Settings))

	// Observe records a new viewport width and schedules a debounced
	// re-classification. Repeated calls within the debounce window reset the
	// timer so only the final width is classified.
	//
	// Parameters:
	//   - width: the new viewport width in pixels
	Observe(width int)

	// SetNetwork records a probed network class. Takes effect at the next
	// re-classification.
	//
	// Parameters:
	//   - class: the probed network class
	SetNetwork(class NetworkClass)

	// Close cancels any pending re-classification. Subsequent Observe calls
	// are ignored.
	Close()
}

var _ Selector = &selectorImpl{}

// NewSelector creates a Selector and classifies the initial signals
// immediately. The CPU count defaults to the runtime's logical processor
// count when not supplied.
//
// Parameters:
//   - initial: the device signals at startup
//   - options: functional options to configure the selector
//
// Returns:
//   - Selector: the newly created selector
func NewSelector(initial Signals, options ...SelectorBuilderOption) Selector {
	if initial.CPUCount == 0 {
		initial.CPUCount = runtime.NumCPU()
	}
	s := &selectorImpl{
		mu:       &sync.Mutex{},
		signals:  initial,
		debounce: defaultDebounce,
	}
	for _, opt := range options {
		opt(s)
	}
	s.settings = SettingsFor(Classify(s.signals))
	return s
}

func (s *selectorImpl) Current() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *selectorImpl) Subscribe(fn func(Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *selectorImpl) Observe(width int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.signals.ViewportWidth = width

	if s.pending != nil {
		s.pending.Stop()
	}
	s.pending = time.AfterFunc(s.debounce, s.reclassify)
}

func (s *selectorImpl) SetNetwork(class NetworkClass) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signals.Network = class
}

func (s *selectorImpl) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

// reclassify runs on the debounce timer. Subscribers are only notified when
// the tier changed; same-tier resizes are silent so scenes are not rebuilt
// needlessly.
func (s *selectorImpl) reclassify() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.pending = nil

	next := SettingsFor(Classify(s.signals))
	changed := next.Tier != s.settings.Tier
	if changed {
		s.settings = next
	}
	subscribers := s.subscribers
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range subscribers {
		fn(next)
	}
}
