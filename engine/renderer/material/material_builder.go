package material

// MaterialBuilderOption is a functional option used to configure a Material during construction.
type MaterialBuilderOption func(*material)

// WithName sets the material identifier.
//
// Parameters:
//   - name: the name for this material
//
// Returns:
//   - MaterialBuilderOption: a function that sets the name for this material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithBaseColor sets the RGBA tint color for this material.
//
// Parameters:
//   - color: the base color as RGBA values
//
// Returns:
//   - MaterialBuilderOption: a function that sets the base color for this material
func WithBaseColor(color [4]float32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = color
	}
}

// WithOpacityScale sets the per-material opacity multiplier applied on top of
// the scene-wide opacity.
//
// Parameters:
//   - scale: the opacity multiplier, typically in (0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that sets the opacity scale for this material
func WithOpacityScale(scale float32) MaterialBuilderOption {
	return func(m *material) {
		m.opacityScale = scale
	}
}

// WithPipelineKey sets the render pipeline key for this material.
//
// Parameters:
//   - key: the pipeline key to associate with this material
//
// Returns:
//   - MaterialBuilderOption: a function that sets the pipeline key for this material
func WithPipelineKey(key string) MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = key
	}
}
