package scene

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusnext/nexusnext/common"
	"github.com/nexusnext/nexusnext/engine/quality"
	"github.com/nexusnext/nexusnext/engine/renderer"
	"github.com/nexusnext/nexusnext/engine/renderer/bind_group_provider"
	"github.com/nexusnext/nexusnext/engine/renderer/pipeline"
)

// fakeRenderer records buffer allocations and draw calls so lifecycle tests
// can run without a GPU.
type fakeRenderer struct {
	mu sync.Mutex

	initMeshErr   error
	initMeshPanic string        // when non-empty, InitMesh panics with this value
	meshGate      chan struct{} // when non-nil, InitMesh blocks until closed
	meshStarted   chan struct{}
	startedOnce   sync.Once

	initedMeshes   []bind_group_provider.BindGroupProvider
	uniforms       [][]byte
	drawKeys       []string
	drawnProviders []bind_group_provider.BindGroupProvider
	clearColors    [][4]float64
}

var _ renderer.Renderer = &fakeRenderer{}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{meshStarted: make(chan struct{})}
}

func (f *fakeRenderer) Pipeline(key string) pipeline.Pipeline { return nil }

func (f *fakeRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error { return nil }

func (f *fakeRenderer) Resize(width, height int) {}

func (f *fakeRenderer) InitMesh(provider bind_group_provider.BindGroupProvider, vertexData []byte, vertexCount int) error {
	f.startedOnce.Do(func() { close(f.meshStarted) })
	if f.meshGate != nil {
		<-f.meshGate
	}
	if f.initMeshPanic != "" {
		panic(f.initMeshPanic)
	}
	if f.initMeshErr != nil {
		return f.initMeshErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	provider.SetVertexCount(vertexCount)
	f.initedMeshes = append(f.initedMeshes, provider)
	return nil
}

func (f *fakeRenderer) InitUniform(provider bind_group_provider.BindGroupProvider, size uint64) error {
	return nil
}

func (f *fakeRenderer) WriteUniform(provider bind_group_provider.BindGroupProvider, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uniforms = append(f.uniforms, append([]byte(nil), data...))
}

func (f *fakeRenderer) SetClearColor(r, g, b, a float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearColors = append(f.clearColors, [4]float64{r, g, b, a})
}

func (f *fakeRenderer) BeginFrame() error { return nil }

func (f *fakeRenderer) DrawCall(pipelineKey string, provider bind_group_provider.BindGroupProvider) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drawKeys = append(f.drawKeys, pipelineKey)
	f.drawnProviders = append(f.drawnProviders, provider)
	return nil
}

func (f *fakeRenderer) EndFrame() {}

func (f *fakeRenderer) Present() {}

func (f *fakeRenderer) SetPresentMode(mode renderer.PresentMode) {}

func (f *fakeRenderer) Release() {}

func (f *fakeRenderer) meshCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.initedMeshes)
}

func (f *fakeRenderer) draws() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.drawKeys...)
}

func (f *fakeRenderer) providers() []bind_group_provider.BindGroupProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]bind_group_provider.BindGroupProvider(nil), f.drawnProviders...)
}

func (f *fakeRenderer) resetDraws() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drawKeys = nil
	f.drawnProviders = nil
}

// lastUniform decodes the most recently written uniform payload.
func (f *fakeRenderer) lastUniform(t *testing.T) sceneUniform {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.uniforms)

	var u sceneUniform
	copy(common.StructToBytes(&u), f.uniforms[len(f.uniforms)-1])
	return u
}

// yawOf extracts the Y-axis rotation angle from a uniform's model matrix.
// Valid for the sphere scene, where the X-axis rotation is zero.
func yawOf(u sceneUniform) float64 {
	return math.Atan2(float64(u.Model[8]), float64(u.Model[10]))
}

func testSettings(tier quality.Tier) quality.Settings {
	return quality.Settings{
		Tier:          tier,
		SegmentCount:  8,
		ParticleCount: 64,
		ParticleSize:  1.5,
	}
}

func waitLoaded(t *testing.T, m Manager) {
	t.Helper()
	require.Eventually(t, m.Loaded, 2*time.Second, 5*time.Millisecond)
}

func TestMountConstructsAndAnimates(t *testing.T) {
	fake := newFakeRenderer()
	m := NewManager(KindSphere, WithRenderer(fake))

	m.Mount(testSettings(quality.TierLow))
	waitLoaded(t, m)
	require.Equal(t, StateAnimating, m.State())
	require.Equal(t, 2, fake.meshCount())

	m.Step(0.02, 0)
	draws := fake.draws()
	require.Len(t, draws, 2)
	assert.Contains(t, draws, pipeline.KeyParticles)
	assert.Contains(t, draws, pipeline.KeyStrands)
}

func TestHelixBuildsThreeMeshes(t *testing.T) {
	fake := newFakeRenderer()
	m := NewManager(KindHelix, WithRenderer(fake))

	m.Mount(testSettings(quality.TierMedium))
	waitLoaded(t, m)
	require.Equal(t, StateAnimating, m.State())
	require.Equal(t, 3, fake.meshCount())

	m.Step(0.02, 0.5)
	assert.Len(t, fake.draws(), 3)
}

func TestStepThrottlesBelowFrameInterval(t *testing.T) {
	fake := newFakeRenderer()
	m := NewManager(KindSphere, WithRenderer(fake))

	m.Mount(testSettings(quality.TierLow))
	waitLoaded(t, m)

	m.Step(0.005, 0)
	m.Step(0.005, 0)
	m.Step(0.005, 0)
	assert.Empty(t, fake.draws(), "steps below the frame interval should not draw")

	m.Step(0.005, 0)
	assert.Len(t, fake.draws(), 2, "accumulated time past the interval should draw once")
}

func TestScrollSpeedsUpRotation(t *testing.T) {
	still := newFakeRenderer()
	scrolled := newFakeRenderer()
	a := NewManager(KindSphere, WithRenderer(still))
	b := NewManager(KindSphere, WithRenderer(scrolled))

	a.Mount(testSettings(quality.TierLow))
	b.Mount(testSettings(quality.TierLow))
	waitLoaded(t, a)
	waitLoaded(t, b)

	a.Step(0.02, 0)
	b.Step(0.02, 1)
	stillYaw := yawOf(still.lastUniform(t))
	scrolledYaw := yawOf(scrolled.lastUniform(t))

	a.Step(0.02, 0)
	b.Step(0.02, 1)
	stillDelta := yawOf(still.lastUniform(t)) - stillYaw
	scrolledDelta := yawOf(scrolled.lastUniform(t)) - scrolledYaw

	// Each frame processed 0.02s; a fully scrolled page must advance the
	// angle faster per frame, not merely hold a larger angle.
	assert.Greater(t, scrolledDelta, stillDelta)
	assert.InDelta(t, baseRotationRate*0.02, stillDelta, 1e-4)
	assert.InDelta(t, (baseRotationRate+scrollRotationRate)*0.02, scrolledDelta, 1e-4)
}

func TestAmbientIntensityAnimatesPerFrame(t *testing.T) {
	fake := newFakeRenderer()
	m := NewManager(KindSphere, WithRenderer(fake))

	m.Mount(testSettings(quality.TierLow))
	waitLoaded(t, m)

	m.Step(0.02, 0)
	first := fake.lastUniform(t).Params[1]
	m.Step(0.02, 0)
	second := fake.lastUniform(t).Params[1]

	assert.NotEqual(t, first, second)
	base := ambientIntensityFor(quality.TierLow)
	assert.InDelta(t, base, second, 0.1*float64(base))
}

func TestConstructionFailureShowsFallback(t *testing.T) {
	fake := newFakeRenderer()
	fake.initMeshErr = errors.New("device lost")
	m := NewManager(KindSphere, WithRenderer(fake))

	m.Mount(testSettings(quality.TierHigh))
	waitLoaded(t, m)
	require.Equal(t, StateFailed, m.State())

	m.Step(0.02, 0)
	assert.Equal(t, StateFallback, m.State())
	assert.Len(t, fake.clearColors, 1)
	assert.Empty(t, fake.draws())

	// Further steps stay in fallback without repainting the clear color.
	m.Step(0.02, 0)
	assert.Len(t, fake.clearColors, 1)
}

func TestConstructionPanicShowsFallback(t *testing.T) {
	fake := newFakeRenderer()
	fake.initMeshPanic = "surface lost"
	m := NewManager(KindSphere, WithRenderer(fake))

	m.Mount(testSettings(quality.TierLow))
	waitLoaded(t, m)
	require.Equal(t, StateFailed, m.State())

	m.Step(0.02, 0)
	assert.Equal(t, StateFallback, m.State())
	assert.Len(t, fake.clearColors, 1)
	assert.Empty(t, fake.draws())
}

func TestUnmountDuringConstructionDropsBundle(t *testing.T) {
	fake := newFakeRenderer()
	fake.meshGate = make(chan struct{})
	m := NewManager(KindSphere, WithRenderer(fake))

	m.Mount(testSettings(quality.TierLow))
	select {
	case <-fake.meshStarted:
	case <-time.After(2 * time.Second):
		t.Fatal("construction never started")
	}

	m.Unmount()
	close(fake.meshGate)

	// The stale build finishes but must not publish into the unmounted scene.
	require.Never(t, func() bool { return m.State() != StateUnmounted }, 100*time.Millisecond, 5*time.Millisecond)
	assert.False(t, m.Loaded())

	m.Step(0.02, 0)
	assert.Empty(t, fake.draws())
}

func TestQualityChangeRebuildsWithNewResources(t *testing.T) {
	fake := newFakeRenderer()
	m := NewManager(KindSphere, WithRenderer(fake))

	m.Mount(testSettings(quality.TierLow))
	waitLoaded(t, m)
	require.Equal(t, 2, fake.meshCount())

	m.SetQuality(testSettings(quality.TierHigh))
	require.Eventually(t, func() bool {
		return m.State() == StateAnimating && fake.meshCount() == 4
	}, 2*time.Second, 5*time.Millisecond)

	fake.resetDraws()
	m.Step(0.02, 0)
	drawn := fake.providers()
	require.Len(t, drawn, 2)

	// Only providers from the rebuilt bundle may be drawn.
	fake.mu.Lock()
	rebuilt := fake.initedMeshes[2:]
	fake.mu.Unlock()
	for _, p := range drawn {
		assert.Contains(t, rebuilt, p)
	}
}

func TestSameTierQualityUpdateKeepsResources(t *testing.T) {
	fake := newFakeRenderer()
	m := NewManager(KindSphere, WithRenderer(fake))

	m.Mount(testSettings(quality.TierMedium))
	waitLoaded(t, m)
	before := fake.meshCount()

	updated := testSettings(quality.TierMedium)
	updated.ParticleSize = 2.5
	m.SetQuality(updated)

	assert.Equal(t, StateAnimating, m.State())
	assert.Equal(t, before, fake.meshCount())
}

func TestUnmountIsIdempotent(t *testing.T) {
	fake := newFakeRenderer()
	m := NewManager(KindSphere, WithRenderer(fake))

	m.Mount(testSettings(quality.TierLow))
	waitLoaded(t, m)

	m.Unmount()
	m.Unmount()
	assert.Equal(t, StateUnmounted, m.State())

	m.Step(0.02, 0)
	assert.Empty(t, fake.draws())
}

func TestMountWhileMountedIsNoOp(t *testing.T) {
	fake := newFakeRenderer()
	m := NewManager(KindSphere, WithRenderer(fake))

	m.Mount(testSettings(quality.TierLow))
	waitLoaded(t, m)
	require.Equal(t, 2, fake.meshCount())

	m.Mount(testSettings(quality.TierHigh))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, fake.meshCount())
}
