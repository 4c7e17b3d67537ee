package light

import "sync"

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu *sync.Mutex

	color     [3]float32
	intensity float32
}

// Light defines the interface for the ambient scene light. Scenes multiply
// vertex colors by the light's intensity, which gives the showcase its glow
// falloff without a full shading model. Intensity is animated per frame so it
// is guarded for concurrent access.
type Light interface {
	// Color returns the light's RGB color.
	//
	// Returns:
	//   - [3]float32: the color components in [0, 1]
	Color() [3]float32

	// Intensity returns the current light intensity.
	//
	// Returns:
	//   - float32: the intensity multiplier
	Intensity() float32

	// SetIntensity sets the light intensity.
	//
	// Parameters:
	//   - intensity: the intensity multiplier to apply
	SetIntensity(intensity float32)
}

var _ Light = &lightImpl{}

// NewLight creates a new ambient Light with the provided options.
//
// Parameters:
//   - options: functional options to configure the light
//
// Returns:
//   - Light: the newly created light
func NewLight(options ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:        &sync.Mutex{},
		color:     [3]float32{1, 1, 1},
		intensity: 1.0,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *lightImpl) Color() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = intensity
}
