package scene

import (
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool() worker.DynamicWorkerPool {
	return worker.NewDynamicWorkerPool(2, 256, 1*time.Second)
}

func TestSphereParticlesLieOnSurface(t *testing.T) {
	const radius = 2.0
	vertices := sphereParticleVertices(testPool(), 500, radius, 42)
	require.Len(t, vertices, 500)

	for _, v := range vertices {
		r := math.Sqrt(float64(v.Position[0]*v.Position[0] +
			v.Position[1]*v.Position[1] +
			v.Position[2]*v.Position[2]))
		assert.InDelta(t, radius, r, 1e-3)
	}
}

func TestSphereParticlesDeterministicForSeed(t *testing.T) {
	a := sphereParticleVertices(testPool(), 2048, 2.0, 7)
	b := sphereParticleVertices(testPool(), 2048, 2.0, 7)
	assert.Equal(t, a, b)
}

func TestHelixStrandVertexCount(t *testing.T) {
	segments := 8
	vertices := helixStrandVertices(segments, helixTurns, helixRadius, helixHeight)
	// Two strands, each a line list of segments*8 segments.
	assert.Len(t, vertices, 2*segments*8*2)
}

func TestHelixRungsSpanBothStrands(t *testing.T) {
	vertices := helixRungVertices(6, helixTurns, helixRadius, helixHeight)
	require.Len(t, vertices, 12)

	// Each rung's endpoints sit half a turn apart, so they mirror through the
	// axis at the same height.
	for i := 0; i < len(vertices); i += 2 {
		a, b := vertices[i].Position, vertices[i+1].Position
		assert.InDelta(t, a[1], b[1], 1e-5)
		assert.InDelta(t, -a[0], b[0], 1e-4)
		assert.InDelta(t, -a[2], b[2], 1e-4)
	}
}

func TestPackVerticesStride(t *testing.T) {
	vertices := []Vertex{{}, {}, {}}
	assert.Len(t, packVertices(vertices), 3*28)
}
