package scene

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"go.uber.org/zap"

	"github.com/nexusnext/nexusnext/common"
	"github.com/nexusnext/nexusnext/engine/camera"
	"github.com/nexusnext/nexusnext/engine/light"
	"github.com/nexusnext/nexusnext/engine/quality"
	"github.com/nexusnext/nexusnext/engine/renderer"
	"github.com/nexusnext/nexusnext/engine/renderer/bind_group_provider"
	"github.com/nexusnext/nexusnext/engine/renderer/material"
	"github.com/nexusnext/nexusnext/engine/renderer/pipeline"
)

// State identifies where a scene instance is in its lifecycle.
type State int

const (
	// StateUnmounted means the scene holds no GPU resources.
	StateUnmounted State = iota
	// StateConstructing means an asynchronous resource build is in flight.
	StateConstructing
	// StateAnimating means resources are live and the scene renders each frame.
	StateAnimating
	// StateFailed means construction failed; the next animation step swaps in
	// the static fallback visuals.
	StateFailed
	// StateFallback means the static fallback is showing in place of the scene.
	StateFallback
)

// String returns a human-readable name for the state.
//
// Returns:
//   - string: the state name
func (s State) String() string {
	switch s {
	case StateUnmounted:
		return "unmounted"
	case StateConstructing:
		return "constructing"
	case StateAnimating:
		return "animating"
	case StateFailed:
		return "failed"
	case StateFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Kind selects which of the showcase scenes a manager drives.
type Kind int

const (
	// KindSphere is the particle sphere hero scene.
	KindSphere Kind = iota
	// KindHelix is the double-helix strand scene.
	KindHelix
)

// String returns a human-readable name for the scene kind.
//
// Returns:
//   - string: the kind name
func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindHelix:
		return "helix"
	default:
		return "unknown"
	}
}

const (
	// minStepInterval caps animation advancement at roughly 60 steps per
	// second regardless of how often Step is called.
	minStepInterval = 1.0 / 60.0

	// sceneUniformSize is the byte size of sceneUniform on the GPU.
	sceneUniformSize = 160

	// baseRotationRate is the idle spin rate in radians per second;
	// scroll adds up to scrollRotationRate radians per second on top.
	baseRotationRate   = 0.15
	scrollRotationRate = 1.3

	sphereRadius = 2.0

	helixRadius float32 = 1.1
	helixHeight float32 = 5.0
	helixTurns          = 4.0
)

// sceneUniform is the per-mesh uniform block uploaded every frame. Field
// order and sizes must match the SceneUniform struct in the WGSL sources.
type sceneUniform struct {
	ViewProj [16]float32
	Model    [16]float32
	Tint     [4]float32
	Params   [4]float32
}

// Manager owns the full lifecycle of one scene instance: asynchronous
// resource construction on mount, per-frame animation, quality-driven
// teardown and rebuild, and release of all GPU resources on unmount.
//
// All methods are safe for concurrent use. Construction runs on its own
// goroutine; a generation counter invalidates in-flight builds whenever the
// scene is unmounted or rebuilt, so a stale build can never publish
// resources into a newer lifecycle.
type Manager interface {
	// Mount begins asynchronous construction of the scene's resources at the
	// given quality settings. It is a no-op if the scene is not unmounted.
	//
	// Parameters:
	//   - settings: the quality settings to build resources with
	Mount(settings quality.Settings)

	// Unmount releases the scene's resources and returns it to the unmounted
	// state. Any in-flight construction is invalidated and its resources are
	// released as soon as it completes. Safe to call repeatedly.
	Unmount()

	// SetQuality applies new quality settings. When the tier differs from the
	// current one and the scene is mounted, the live resources are torn down
	// and reconstruction starts at the new tier. A same-tier update only
	// stores the settings.
	//
	// Parameters:
	//   - settings: the new quality settings
	SetQuality(settings quality.Settings)

	// Step advances the animation and issues this scene's draw calls for the
	// current frame. Elapsed time accumulates across calls and the animation
	// only advances once roughly 16ms have built up. Outside the animating
	// state Step only handles the failed-to-fallback transition.
	//
	// Parameters:
	//   - dt: seconds elapsed since the previous call
	//   - scrollProgress: normalized page scroll in [0, 1] driving rotation and fade
	Step(dt float64, scrollProgress float32)

	// Resize updates the aspect ratio used by the scene's camera.
	//
	// Parameters:
	//   - width: drawable width in pixels
	//   - height: drawable height in pixels
	Resize(width, height int)

	// State retrieves the current lifecycle state.
	//
	// Returns:
	//   - State: the current state
	State() State

	// Loaded reports whether the scene has finished loading, successfully or
	// not. It stays true in the fallback states so callers stop waiting.
	//
	// Returns:
	//   - bool: true once construction has completed or failed
	Loaded() bool

	// Kind retrieves which scene this manager drives.
	//
	// Returns:
	//   - Kind: the scene kind
	Kind() Kind
}

// managerImpl is the implementation of the Manager interface.
type managerImpl struct {
	mu sync.Mutex

	kind Kind
	log  *zap.Logger
	rend renderer.Renderer
	pool worker.DynamicWorkerPool
	seed int64

	state       State
	generation  uint64
	settings    quality.Settings
	res         *Resources
	aspect      float32
	phase       float64
	rotation    float64
	accumulated float64
}

var _ Manager = &managerImpl{}

// NewManager creates a scene Manager for the given kind.
//
// Parameters:
//   - kind: which scene the manager drives
//   - options: variadic list of ManagerBuilderOption functions to configure the manager
//
// Returns:
//   - Manager: a new Manager in the unmounted state
func NewManager(kind Kind, options ...ManagerBuilderOption) Manager {
	m := &managerImpl{
		kind:   kind,
		log:    zap.NewNop(),
		seed:   1,
		state:  StateUnmounted,
		aspect: 16.0 / 9.0,
	}
	for _, opt := range options {
		opt(m)
	}
	if m.pool == nil {
		workers := runtime.NumCPU() - 1
		if workers < 1 {
			workers = 1
		}
		m.pool = worker.NewDynamicWorkerPool(workers, 256, 1*time.Second)
	}
	return m
}

func (m *managerImpl) Mount(settings quality.Settings) {
	m.mu.Lock()
	if m.state != StateUnmounted {
		m.mu.Unlock()
		return
	}
	m.settings = settings
	m.generation++
	gen := m.generation
	m.state = StateConstructing
	m.mu.Unlock()

	go m.construct(gen, settings)
}

func (m *managerImpl) Unmount() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateUnmounted {
		return
	}
	m.generation++
	if m.res != nil {
		m.res.Release()
		m.res = nil
	}
	m.state = StateUnmounted
	m.phase = 0
	m.rotation = 0
	m.accumulated = 0
}

func (m *managerImpl) SetQuality(settings quality.Settings) {
	m.mu.Lock()
	if settings.Tier == m.settings.Tier {
		m.settings = settings
		m.mu.Unlock()
		return
	}
	m.settings = settings
	if m.state == StateUnmounted {
		m.mu.Unlock()
		return
	}

	m.log.Info("quality tier changed, rebuilding scene",
		zap.String("scene", m.kind.String()),
		zap.String("tier", settings.Tier.String()),
	)
	m.generation++
	gen := m.generation
	if m.res != nil {
		m.res.Release()
		m.res = nil
	}
	m.state = StateConstructing
	m.mu.Unlock()

	go m.construct(gen, settings)
}

// construct builds a fresh resource bundle off the caller's goroutine and
// publishes it only if the scene's generation has not moved on in the
// meantime. A stale build releases its bundle instead of publishing it.
// Recovers from panics so a backend fault degrades to the fallback visuals
// instead of crashing the process.
func (m *managerImpl) construct(gen uint64, settings quality.Settings) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		m.log.Error("scene construction recovered from panic",
			zap.String("scene", m.kind.String()),
			zap.String("tier", settings.Tier.String()),
			zap.Any("panic", r),
		)
		m.mu.Lock()
		defer m.mu.Unlock()
		if gen == m.generation {
			m.state = StateFailed
		}
	}()

	res, err := m.buildResources(settings)

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		if res != nil {
			res.Release()
		}
		return
	}

	if err != nil {
		m.log.Error("scene construction failed",
			zap.String("scene", m.kind.String()),
			zap.String("tier", settings.Tier.String()),
			zap.Error(err),
		)
		m.state = StateFailed
		return
	}

	m.res = res
	m.state = StateAnimating
	m.log.Debug("scene constructed",
		zap.String("scene", m.kind.String()),
		zap.String("tier", settings.Tier.String()),
	)
}

func (m *managerImpl) Step(dt float64, scrollProgress float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateFailed:
		m.showFallback()
		return
	case StateAnimating:
	default:
		return
	}

	m.accumulated += dt
	if m.accumulated < minStepInterval {
		return
	}
	step := m.accumulated
	m.accumulated = 0
	m.phase += step
	// Scroll speeds the spin up rather than offsetting the angle, so holding
	// the page at a fixed scroll position keeps the faster rotation.
	m.rotation += (baseRotationRate + scrollRotationRate*float64(scrollProgress)) * step

	m.animate(scrollProgress)
}

// showFallback swaps the clear color for a flat brand-tinted backdrop so the
// page still has a styled hero section when the GPU scene is unavailable.
func (m *managerImpl) showFallback() {
	switch m.kind {
	case KindHelix:
		m.rend.SetClearColor(0.09, 0.04, 0.16, 1.0)
	default:
		m.rend.SetClearColor(0.04, 0.06, 0.16, 1.0)
	}
	m.state = StateFallback
}

// animate updates the ambient light, materials, and uniforms from the
// accumulated rotation and scroll progress, then issues one draw call per
// mesh. Caller holds the lock.
func (m *managerImpl) animate(scrollProgress float32) {
	rotY := float32(m.rotation)
	rotX := float32(0.0)
	if m.kind == KindHelix {
		rotX = 0.25 + 0.4*scrollProgress
	}
	scale := float32(1.0 + 0.04*math.Sin(m.phase*1.7))

	// Scenes fade out as the page scrolls past the hero section.
	sceneOpacity := 1.0 - 0.65*scrollProgress

	// The ambient term breathes slowly around its tier baseline.
	m.res.ambient.SetIntensity(ambientIntensityFor(m.settings.Tier) * (1 + 0.08*float32(math.Sin(m.phase*0.8))))

	viewProj := m.res.cam.ViewProjectionMatrix()
	var model [16]float32
	common.BuildModelMatrix(model[:], 0, 0, 0, rotX, rotY, 0, scale, scale, scale)

	for _, msh := range m.res.meshes {
		op := common.Clamp(sceneOpacity*msh.material.OpacityScale(), 0, 1)
		msh.material.SetOpacity(op)

		base := msh.material.BaseColor()
		u := sceneUniform{
			ViewProj: viewProj,
			Model:    model,
			Tint:     [4]float32{base[0], base[1], base[2], base[3] * op},
			Params: [4]float32{
				m.settings.ParticleSize,
				m.res.ambient.Intensity(),
				float32(m.phase),
				0,
			},
		}
		m.rend.WriteUniform(msh.provider, common.StructToBytes(&u))
		if err := m.rend.DrawCall(msh.material.PipelineKey(), msh.provider); err != nil {
			m.log.Warn("draw call failed",
				zap.String("scene", m.kind.String()),
				zap.String("mesh", msh.material.Name()),
				zap.Error(err),
			)
		}
	}
}

func (m *managerImpl) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	aspect := float32(width) / float32(height)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.aspect = aspect
	if m.res != nil {
		m.res.cam.SetAspect(aspect)
	}
}

func (m *managerImpl) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *managerImpl) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateAnimating || m.state == StateFailed || m.state == StateFallback
}

func (m *managerImpl) Kind() Kind {
	return m.kind
}

// meshSpec describes one mesh to build during resource construction.
type meshSpec struct {
	label        string
	pipelineKey  string
	baseColor    [4]float32
	opacityScale float32
	vertices     []Vertex
}

// buildResources generates geometry and allocates GPU buffers for every mesh
// of the scene. On any allocation failure the partially built bundle is
// released and the error is returned.
func (m *managerImpl) buildResources(settings quality.Settings) (*Resources, error) {
	cam := m.buildCamera()
	ambient := light.NewLight(light.WithIntensity(ambientIntensityFor(settings.Tier)))
	res := &Resources{cam: cam, ambient: ambient}

	for _, spec := range m.meshSpecs(settings) {
		provider := bind_group_provider.NewBindGroupProvider(spec.label)
		mat := material.NewMaterial(
			material.WithName(spec.label),
			material.WithBaseColor(spec.baseColor),
			material.WithOpacityScale(spec.opacityScale),
			material.WithPipelineKey(spec.pipelineKey),
		)
		mat.SetBindGroupProvider(provider)
		res.meshes = append(res.meshes, &mesh{material: mat, provider: provider})

		if err := m.rend.InitMesh(provider, packVertices(spec.vertices), len(spec.vertices)); err != nil {
			res.Release()
			return nil, fmt.Errorf("init mesh %q: %w", spec.label, err)
		}
		if err := m.rend.InitUniform(provider, sceneUniformSize); err != nil {
			res.Release()
			return nil, fmt.Errorf("init uniform %q: %w", spec.label, err)
		}
	}

	return res, nil
}

// meshSpecs returns the geometry for this scene kind at the given settings.
func (m *managerImpl) meshSpecs(settings quality.Settings) []meshSpec {
	switch m.kind {
	case KindHelix:
		return []meshSpec{
			{
				label:        "helix-strands",
				pipelineKey:  pipeline.KeyStrands,
				baseColor:    [4]float32{1, 1, 1, 1},
				opacityScale: 1.0,
				vertices:     helixStrandVertices(settings.SegmentCount, helixTurns, helixRadius, helixHeight),
			},
			{
				label:        "helix-rungs",
				pipelineKey:  pipeline.KeyStrands,
				baseColor:    [4]float32{1, 1, 1, 1},
				opacityScale: 0.75,
				vertices:     helixRungVertices(settings.SegmentCount, helixTurns, helixRadius, helixHeight),
			},
			{
				label:        "helix-particles",
				pipelineKey:  pipeline.KeyParticles,
				baseColor:    [4]float32{1, 1, 1, 1},
				opacityScale: 0.8,
				vertices:     helixParticleVertices(m.pool, settings.ParticleCount, helixRadius, helixHeight, m.seed),
			},
		}
	default:
		return []meshSpec{
			{
				label:        "sphere-particles",
				pipelineKey:  pipeline.KeyParticles,
				baseColor:    [4]float32{1, 1, 1, 1},
				opacityScale: 1.0,
				vertices:     sphereParticleVertices(m.pool, settings.ParticleCount, sphereRadius, m.seed),
			},
			{
				label:        "sphere-wireframe",
				pipelineKey:  pipeline.KeyStrands,
				baseColor:    [4]float32{1, 1, 1, 1},
				opacityScale: 0.6,
				vertices:     sphereWireframeVertices(settings.SegmentCount, sphereRadius),
			},
		}
	}
}

// buildCamera frames the scene for its kind.
func (m *managerImpl) buildCamera() camera.Camera {
	switch m.kind {
	case KindHelix:
		return camera.NewCamera(
			camera.WithPosition(0, 0.5, 7),
			camera.WithAspect(m.aspect),
		)
	default:
		return camera.NewCamera(
			camera.WithPosition(0, 0, 6),
			camera.WithAspect(m.aspect),
		)
	}
}

// ambientIntensityFor dims the ambient term slightly on low tier so the
// thinner geometry does not read as washed out.
func ambientIntensityFor(tier quality.Tier) float32 {
	if tier == quality.TierLow {
		return 0.85
	}
	return 1.0
}
