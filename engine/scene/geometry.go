package scene

import (
	"math"
	"math/rand"
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/nexusnext/nexusnext/common"
)

// Vertex is the interleaved vertex format shared by all scene meshes:
// position followed by an RGBA color. Layout matches the GPU vertex buffer
// stride of 28 bytes.
type Vertex struct {
	Position [3]float32
	Color    [4]float32
}

// particleChunkSize is the number of particles each worker task fills.
const particleChunkSize = 1024

// packVertices flattens a vertex slice into the raw bytes uploaded to the GPU.
func packVertices(vertices []Vertex) []byte {
	return common.SliceToBytes(vertices)
}

// sphereParticleVertices samples count points uniformly on a sphere surface of
// the given radius. Uniformity comes from the inverse transform: theta is
// uniform in [0, 2pi) and phi = acos(2v - 1), which corrects for the poles.
// Chunks of the output are filled in parallel on the worker pool, each chunk
// with its own seeded source so the result is deterministic for a given seed.
func sphereParticleVertices(pool worker.DynamicWorkerPool, count int, radius float32, seed int64) []Vertex {
	vertices := make([]Vertex, count)

	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < count; start += particleChunkSize {
		end := start + particleChunkSize
		if end > count {
			end = count
		}

		wg.Add(1)
		chunkStart, chunkEnd := start, end
		id := taskID
		taskID++
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()

				rng := rand.New(rand.NewSource(seed + int64(chunkStart)))
				for i := chunkStart; i < chunkEnd; i++ {
					theta := rng.Float64() * 2 * math.Pi
					phi := math.Acos(2*rng.Float64() - 1)

					sinPhi := math.Sin(phi)
					vertices[i] = Vertex{
						Position: [3]float32{
							radius * float32(sinPhi*math.Cos(theta)),
							radius * float32(sinPhi*math.Sin(theta)),
							radius * float32(math.Cos(phi)),
						},
						Color: particleColor(rng),
					}
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	return vertices
}

// particleColor picks a cool blue-violet tone with slight per-particle
// variation.
func particleColor(rng *rand.Rand) [4]float32 {
	return [4]float32{
		0.35 + 0.25*rng.Float32(),
		0.45 + 0.3*rng.Float32(),
		0.85 + 0.15*rng.Float32(),
		0.6 + 0.4*rng.Float32(),
	}
}

// sphereWireframeVertices builds a line-list wireframe sphere from latitude
// and longitude rings. segments controls the subdivision of each ring; the
// ring count scales with it so density stays visually even across tiers.
func sphereWireframeVertices(segments int, radius float32) []Vertex {
	rings := segments / 4
	if rings < 3 {
		rings = 3
	}
	color := [4]float32{0.4, 0.55, 1.0, 0.5}

	var vertices []Vertex
	appendSegment := func(a, b [3]float32) {
		vertices = append(vertices,
			Vertex{Position: a, Color: color},
			Vertex{Position: b, Color: color},
		)
	}

	// Latitude rings.
	for ring := 1; ring < rings; ring++ {
		phi := math.Pi * float64(ring) / float64(rings)
		y := radius * float32(math.Cos(phi))
		r := radius * float32(math.Sin(phi))
		for i := 0; i < segments; i++ {
			a0 := 2 * math.Pi * float64(i) / float64(segments)
			a1 := 2 * math.Pi * float64(i+1) / float64(segments)
			appendSegment(
				[3]float32{r * float32(math.Cos(a0)), y, r * float32(math.Sin(a0))},
				[3]float32{r * float32(math.Cos(a1)), y, r * float32(math.Sin(a1))},
			)
		}
	}

	// Longitude rings.
	for ring := 0; ring < rings; ring++ {
		theta := math.Pi * float64(ring) / float64(rings)
		sinT, cosT := math.Sin(theta), math.Cos(theta)
		for i := 0; i < segments; i++ {
			p0 := math.Pi * float64(i) / float64(segments)
			p1 := math.Pi * float64(i+1) / float64(segments)
			point := func(p float64) [3]float32 {
				return [3]float32{
					radius * float32(math.Sin(p)*cosT),
					radius * float32(math.Cos(p)),
					radius * float32(math.Sin(p)*sinT),
				}
			}
			appendSegment(point(p0), point(p1))
		}
	}

	return vertices
}

// helixStrandVertices builds the two backbone strands of a double helix as a
// line list. Each strand is a parametric curve winding turns times around the
// vertical axis over the given height, the second offset by half a turn.
func helixStrandVertices(segments int, turns float64, radius, height float32) []Vertex {
	strandColors := [2][4]float32{
		{0.3, 0.65, 1.0, 0.85},
		{0.75, 0.4, 1.0, 0.85},
	}

	total := segments * 8
	var vertices []Vertex
	for strand := 0; strand < 2; strand++ {
		offset := float64(strand) * math.Pi
		for i := 0; i < total; i++ {
			t0 := float64(i) / float64(total)
			t1 := float64(i+1) / float64(total)
			vertices = append(vertices,
				Vertex{Position: helixPoint(t0, offset, turns, radius, height), Color: strandColors[strand]},
				Vertex{Position: helixPoint(t1, offset, turns, radius, height), Color: strandColors[strand]},
			)
		}
	}
	return vertices
}

// helixRungVertices builds the cross rungs connecting the two strands, one
// rung per rungCount evenly spaced along the helix.
func helixRungVertices(rungCount int, turns float64, radius, height float32) []Vertex {
	color := [4]float32{0.55, 0.75, 0.95, 0.6}

	vertices := make([]Vertex, 0, rungCount*2)
	for i := 0; i < rungCount; i++ {
		t := float64(i) / float64(rungCount)
		vertices = append(vertices,
			Vertex{Position: helixPoint(t, 0, turns, radius, height), Color: color},
			Vertex{Position: helixPoint(t, math.Pi, turns, radius, height), Color: color},
		)
	}
	return vertices
}

// helixParticleVertices scatters count particles in a loose cylindrical cloud
// around the helix, filled in parallel on the worker pool.
func helixParticleVertices(pool worker.DynamicWorkerPool, count int, radius, height float32, seed int64) []Vertex {
	vertices := make([]Vertex, count)

	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < count; start += particleChunkSize {
		end := start + particleChunkSize
		if end > count {
			end = count
		}

		wg.Add(1)
		chunkStart, chunkEnd := start, end
		id := taskID
		taskID++
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()

				rng := rand.New(rand.NewSource(seed + int64(chunkStart)))
				for i := chunkStart; i < chunkEnd; i++ {
					angle := rng.Float64() * 2 * math.Pi
					// Bias the radial distance outward so particles halo the
					// strands instead of clustering on the axis.
					r := float64(radius) * (0.8 + 1.2*math.Sqrt(rng.Float64()))
					y := (rng.Float32() - 0.5) * height

					vertices[i] = Vertex{
						Position: [3]float32{
							float32(r * math.Cos(angle)),
							y,
							float32(r * math.Sin(angle)),
						},
						Color: particleColor(rng),
					}
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	return vertices
}

// helixPoint evaluates the parametric helix at t in [0, 1] with the given
// angular offset.
func helixPoint(t, offset, turns float64, radius, height float32) [3]float32 {
	angle := offset + 2*math.Pi*turns*t
	return [3]float32{
		radius * float32(math.Cos(angle)),
		(float32(t) - 0.5) * height,
		radius * float32(math.Sin(angle)),
	}
}
