package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1.5, 0.0, 1.0))
	assert.Equal(t, 1.0, Clamp(3.2, 0.0, 1.0))
	assert.Equal(t, 0.25, Clamp(0.25, 0.0, 1.0))
	assert.Equal(t, 5, Clamp(5, 1, 10))
}

func TestLerp(t *testing.T) {
	assert.InDelta(t, 0.0, Lerp(0, 10, 0), 1e-6)
	assert.InDelta(t, 10.0, Lerp(0, 10, 1), 1e-6)
	assert.InDelta(t, 2.5, Lerp(0, 10, 0.25), 1e-6)
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	BuildModelMatrix(m[:], 1, 2, 3, 0.4, 0.5, 0.6, 2, 2, 2)

	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out)

	Mul4(out[:], m[:], id[:])
	assert.Equal(t, m, out)
}

func TestPerspectiveDepthRange(t *testing.T) {
	var p [16]float32
	Perspective(p[:], float32(math.Pi/4), 16.0/9.0, 0.1, 100)

	// A point on the near plane must map to depth 0, the far plane to depth 1
	// (WebGPU clip convention after the perspective divide).
	nearZ := float32(-0.1)
	farZ := float32(-100)

	depth := func(z float32) float32 {
		clipZ := p[10]*z + p[14]
		clipW := p[11] * z
		return clipZ / clipW
	}

	assert.InDelta(t, 0.0, depth(nearZ), 1e-5)
	assert.InDelta(t, 1.0, depth(farZ), 1e-4)
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	var v [16]float32
	LookAt(v[:], 3, 4, 5, 0, 0, 0, 0, 1, 0)

	// Transforming the eye position must yield the view-space origin.
	x := v[0]*3 + v[4]*4 + v[8]*5 + v[12]
	y := v[1]*3 + v[5]*4 + v[9]*5 + v[13]
	z := v[2]*3 + v[6]*4 + v[10]*5 + v[14]

	assert.InDelta(t, 0.0, x, 1e-5)
	assert.InDelta(t, 0.0, y, 1e-5)
	assert.InDelta(t, 0.0, z, 1e-5)
}

func TestSliceToBytes(t *testing.T) {
	data := []float32{1, 2, 3}
	b := SliceToBytes(data)
	require.Len(t, b, 12)
	assert.Nil(t, SliceToBytes([]float32(nil)))
}
