package engine

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nexusnext/nexusnext/engine/profiler"
	"github.com/nexusnext/nexusnext/engine/quality"
	"github.com/nexusnext/nexusnext/engine/renderer"
	"github.com/nexusnext/nexusnext/engine/scene"
	"github.com/nexusnext/nexusnext/engine/scroll"
	"github.com/nexusnext/nexusnext/engine/window"
)

// engine implements the Engine interface.
// Coordinates the render loop, window events, and the scene managers.
type engine struct {
	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	log      *zap.Logger
	window   window.Window
	renderer renderer.Renderer
	tracker  scroll.Tracker
	selector quality.Selector

	profiler         *profiler.Profiler
	profilingEnabled bool

	scenes map[int]scene.Manager

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine drives the showcase: it owns the render loop, fans window events out
// to the renderer, the quality selector, and the scene managers, and publishes
// scroll progress once per frame so every scene sees the same value.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer shared by all scenes.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene manager at the given z-index key.
	// Scenes are stepped in ascending key order during the render loop.
	//
	// Parameters:
	//   - key: the z-index determining render order (lower renders first)
	//   - m: the scene Manager to register
	AddScene(key int, m scene.Manager)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Manager: the scene at the key, or nil if not found
	Scene(key int) scene.Manager

	// Run starts the main loop (blocks until the window closes).
	Run()

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// When a window is configured, resize and scroll events are wired to the
// renderer, the quality selector, and the scroll tracker; when a quality
// selector is configured, tier changes are fanned out to every registered
// scene.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel: make(chan struct{}),
		scenes:      make(map[int]scene.Manager),
		log:         zap.NewNop(),
	}

	for _, opt := range options {
		opt(e)
	}

	e.profiler = profiler.NewProfiler(e.log)

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			if e.renderer != nil {
				e.renderer.Resize(width, height)
			}
			for _, m := range e.scenes {
				m.Resize(width, height)
			}
			if e.selector != nil {
				e.selector.Observe(width)
			}
		})
		e.window.SetScrollCallback(func(delta float32) {
			if e.tracker != nil {
				e.tracker.OnWheel(delta)
			}
		})
	}

	if e.selector != nil {
		e.selector.Subscribe(func(settings quality.Settings) {
			e.log.Info("quality tier changed",
				zap.String("tier", settings.Tier.String()),
			)
			for _, m := range e.scenes {
				m.SetQuality(settings)
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Run() {
	e.running = true
	e.handle()
	e.window.ProcessMessages()
	e.signalQuit()
	e.wg.Wait()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
	if e.window != nil {
		e.window.Close()
	}
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
	})
}

// handle launches the render and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleRender()
	go e.handleQuit()
}

// handleRender runs the render loop in its own goroutine. Each iteration
// publishes the coalesced scroll progress once, then steps the scenes in
// ascending z-index order inside a single frame.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("render goroutine recovered from panic", zap.Any("panic", r))
			e.signalQuit()
		}
	}()

	lastRender := time.Now()
	var progress float32

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := now.Sub(lastRender).Seconds()
			lastRender = now

			// One publish per frame; every scene steps with the same value.
			if e.tracker != nil {
				if p, updated := e.tracker.Publish(); updated {
					progress = p
					e.log.Debug("scroll progress", zap.Float32("progress", progress))
				}
			}

			keys := make([]int, 0, len(e.scenes))
			for k := range e.scenes {
				keys = append(keys, k)
			}
			sort.Ints(keys)

			if e.renderer != nil {
				if err := e.renderer.BeginFrame(); err == nil {
					for _, k := range keys {
						e.scenes[k].Step(dt, progress)
					}
					e.renderer.EndFrame()
					e.renderer.Present()
				}
			}

			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick()
			}

			// Frame rate limiting
			if e.renderFrameLimit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// handleQuit blocks until the quit channel is closed, then unmounts every
// scene and decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel

	if e.selector != nil {
		e.selector.Close()
	}
	if e.tracker != nil {
		e.tracker.Detach()
	}
	for _, m := range e.scenes {
		m.Unmount()
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Second / time.Duration(fps)
}

func (e *engine) AddScene(key int, m scene.Manager) {
	e.scenes[key] = m
}

func (e *engine) RemoveScene(key int) {
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Manager {
	return e.scenes[key]
}
