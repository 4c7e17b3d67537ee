package quality

import "github.com/nexusnext/nexusnext/engine/renderer"

// Tier is the discrete rendering quality level derived from device signals.
type Tier int

const (
	// TierLow is selected for narrow viewports, low core counts, or slow networks.
	TierLow Tier = iota

	// TierMedium is selected for mid-width viewports with no low-tier signal.
	TierMedium

	// TierHigh is selected when no downgrade signal is present.
	TierHigh
)

// String returns a human-readable tier name.
func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	default:
		return "unknown"
	}
}

// NetworkClass is a coarse classification of the network connection, modeled
// after effective connection types. NetworkUnknown means the probe failed or
// has not run; an unknown network never forces the low tier.
type NetworkClass int

const (
	// NetworkUnknown indicates the network class could not be determined.
	NetworkUnknown NetworkClass = iota

	// NetworkSlow2G indicates round-trip times above 1400ms.
	NetworkSlow2G

	// Network2G indicates round-trip times above 700ms.
	Network2G

	// Network3G indicates round-trip times above 270ms.
	Network3G

	// Network4G indicates round-trip times of 270ms or less.
	Network4G
)

// String returns a human-readable network class name.
func (n NetworkClass) String() string {
	switch n {
	case NetworkSlow2G:
		return "slow-2g"
	case Network2G:
		return "2g"
	case Network3G:
		return "3g"
	case Network4G:
		return "4g"
	default:
		return "unknown"
	}
}

// Viewport width thresholds for tier classification, in pixels.
const (
	lowWidthThreshold    = 768
	mediumWidthThreshold = 1024
)

// minCPUCount is the logical processor count below which the low tier is forced.
const minCPUCount = 4

// Signals bundles the device signals the classifier reads. Zero values are
// treated as absent and never force a downgrade on their own, except viewport
// width, which is always meaningful.
type Signals struct {
	// ViewportWidth is the window client width in pixels.
	ViewportWidth int

	// CPUCount is the reported logical processor count, or 0 if unknown.
	CPUCount int

	// Network is the probed network class.
	Network NetworkClass
}

// Classify derives a quality Tier from device signals. A narrow viewport, a
// low core count, or a slow network each force the low tier; a mid-width
// viewport without any of those yields medium; otherwise high. Absent signals
// (CPUCount 0, NetworkUnknown) do not force low.
//
// Parameters:
//   - s: the device signals to classify
//
// Returns:
//   - Tier: the derived quality tier
func Classify(s Signals) Tier {
	slowNetwork := s.Network == NetworkSlow2G || s.Network == Network2G
	lowCPU := s.CPUCount > 0 && s.CPUCount < minCPUCount

	if s.ViewportWidth < lowWidthThreshold || lowCPU || slowNetwork {
		return TierLow
	}
	if s.ViewportWidth < mediumWidthThreshold {
		return TierMedium
	}
	return TierHigh
}

// Settings is the fixed parameter record derived from a Tier. Scenes consume
// it immutably at construction; a tier change rebuilds the scene with a fresh
// Settings record.
type Settings struct {
	// Tier is the tier this record was derived from.
	Tier Tier

	// SegmentCount is the sphere wireframe subdivision count.
	SegmentCount int

	// ParticleCount is the number of particles in a scene's point cloud.
	ParticleCount int

	// ParticleSize scales per-particle brightness.
	ParticleSize float32

	// Antialias enables MSAA on the render surface.
	Antialias bool

	// PowerPreference is the GPU adapter class to request.
	PowerPreference renderer.PowerPreference
}

// SettingsFor returns the parameter record for the given tier.
//
// Parameters:
//   - tier: the tier to look up
//
// Returns:
//   - Settings: the fixed parameters for the tier
func SettingsFor(tier Tier) Settings {
	switch tier {
	case TierLow:
		return Settings{
			Tier:            TierLow,
			SegmentCount:    16,
			ParticleCount:   2000,
			ParticleSize:    1.5,
			Antialias:       false,
			PowerPreference: renderer.PowerPreferenceDefault,
		}
	case TierMedium:
		return Settings{
			Tier:            TierMedium,
			SegmentCount:    32,
			ParticleCount:   4500,
			ParticleSize:    2.0,
			Antialias:       true,
			PowerPreference: renderer.PowerPreferenceDefault,
		}
	default:
		return Settings{
			Tier:            TierHigh,
			SegmentCount:    64,
			ParticleCount:   8000,
			ParticleSize:    2.5,
			Antialias:       true,
			PowerPreference: renderer.PowerPreferenceHighPerformance,
		}
	}
}
