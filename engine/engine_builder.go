package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/nexusnext/nexusnext/engine/quality"
	"github.com/nexusnext/nexusnext/engine/renderer"
	"github.com/nexusnext/nexusnext/engine/scene"
	"github.com/nexusnext/nexusnext/engine/scroll"
	"github.com/nexusnext/nexusnext/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithLogger sets the logger used for engine diagnostics and profiling output.
//
// Parameters:
//   - log: the logger to use
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(log *zap.Logger) EngineBuilderOption {
	return func(e *engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets a pre-configured window for the engine to drive.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer the engine frames with and fans resize
// events out to.
//
// Parameters:
//   - r: the renderer instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithScrollTracker sets the tracker fed by the window's scroll events and
// published once per render frame.
//
// Parameters:
//   - t: the scroll tracker
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScrollTracker(t scroll.Tracker) EngineBuilderOption {
	return func(e *engine) {
		e.tracker = t
	}
}

// WithQualitySelector sets the selector whose tier changes are fanned out to
// every registered scene and which observes window resizes.
//
// Parameters:
//   - s: the quality selector
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithQualitySelector(s quality.Selector) EngineBuilderOption {
	return func(e *engine) {
		e.selector = s
	}
}

// WithScene registers a scene manager at the given z-index key during engine
// construction. Scenes are stepped in ascending key order during the render loop.
//
// Parameters:
//   - key: the z-index determining render order (lower renders first)
//   - m: the scene Manager to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, m scene.Manager) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = m
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Second / time.Duration(fps)
	}
}
