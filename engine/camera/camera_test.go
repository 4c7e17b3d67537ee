package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	x, y, z := c.Position()
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(0), y)
	assert.Equal(t, float32(5), z)
	assert.InDelta(t, 45.0*math.Pi/180.0, float64(c.Fov()), 1e-6)
}

func TestCameraViewProjectionCentersTarget(t *testing.T) {
	c := NewCamera(
		WithPosition(0, 0, 10),
		WithTarget(0, 0, 0),
		WithAspect(16.0/9.0),
	)

	vp := c.ViewProjectionMatrix()

	// The target projects to the center of the screen: x and y clip
	// coordinates are zero after the perspective divide.
	clipX := vp[0]*0 + vp[4]*0 + vp[8]*0 + vp[12]
	clipY := vp[1]*0 + vp[5]*0 + vp[9]*0 + vp[13]
	clipW := vp[3]*0 + vp[7]*0 + vp[11]*0 + vp[15]

	require.NotZero(t, clipW)
	assert.InDelta(t, 0, float64(clipX/clipW), 1e-5)
	assert.InDelta(t, 0, float64(clipY/clipW), 1e-5)
}

func TestSetAspectRecomputesMatrices(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 10), WithAspect(1.0))
	before := c.ViewProjectionMatrix()

	c.SetAspect(2.0)
	after := c.ViewProjectionMatrix()

	assert.NotEqual(t, before, after)
	// Doubling the aspect ratio halves the x scale.
	assert.InDelta(t, float64(before[0]/2), float64(after[0]), 1e-5)
}

func TestSetPositionMovesView(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 5))
	before := c.ViewProjectionMatrix()

	c.SetPosition(3, 1, 5)
	after := c.ViewProjectionMatrix()

	assert.NotEqual(t, before, after)
}
