package material

import (
	"sync"

	"github.com/nexusnext/nexusnext/engine/renderer/bind_group_provider"
)

// material is the implementation of the Material interface.
type material struct {
	mu sync.RWMutex

	name              string
	baseColor         [4]float32
	opacity           float32
	opacityScale      float32
	pipelineKey       string
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material defines the interface for a render material, encapsulating tint
// color, opacity, and GPU resource bindings needed for draw calls.
//
// Name, base color, and opacity scale are set at construction time and are
// read-only through this interface. Opacity is animated per frame by the
// scene, so it is guarded for concurrent reads. GPU resource references
// (pipeline key, bind group provider) are mutable so they can be configured
// after construction once the renderer is available.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the RGBA tint color of the material.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// Opacity retrieves the current overall opacity of the material.
	// The scene drives this from scroll progress each frame.
	//
	// Returns:
	//   - float32: the current opacity in [0, 1]
	Opacity() float32

	// OpacityScale retrieves the per-material multiplier applied on top of the
	// scene-wide opacity. Secondary geometry (wireframes, rungs) fades harder
	// than primary geometry by carrying a smaller scale.
	//
	// Returns:
	//   - float32: the opacity multiplier
	OpacityScale() float32

	// PipelineKey retrieves the key identifying the render pipeline this material uses.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// BindGroupProvider retrieves the bind group provider holding GPU-side resources for this material.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider, or nil if not yet initialized
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetOpacity sets the current overall opacity for this material.
	//
	// Parameters:
	//   - opacity: the opacity to apply, clamped by the caller to [0, 1]
	SetOpacity(opacity float32)

	// SetPipelineKey sets the render pipeline key for this material.
	//
	// Parameters:
	//   - key: the pipeline key to associate with this material
	SetPipelineKey(key string)

	// SetBindGroupProvider sets the bind group provider for this material.
	//
	// Parameters:
	//   - provider: the bind group provider containing GPU resources for this material
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		baseColor:    [4]float32{1, 1, 1, 1},
		opacity:      1.0,
		opacityScale: 1.0,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) Opacity() float32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.opacity
}

func (m *material) OpacityScale() float32 {
	return m.opacityScale
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) SetOpacity(opacity float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opacity = opacity
}

func (m *material) SetPipelineKey(key string) {
	m.pipelineKey = key
}

func (m *material) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	m.bindGroupProvider = provider
}
