package light

// LightBuilderOption is a functional option used to configure a Light during construction.
type LightBuilderOption func(*lightImpl)

// WithColor sets the light's RGB color.
//
// Parameters:
//   - r, g, b: color components in [0, 1]
//
// Returns:
//   - LightBuilderOption: a function that sets the color for this light
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = [3]float32{r, g, b}
	}
}

// WithIntensity sets the initial light intensity.
//
// Parameters:
//   - intensity: the intensity multiplier
//
// Returns:
//   - LightBuilderOption: a function that sets the intensity for this light
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}
