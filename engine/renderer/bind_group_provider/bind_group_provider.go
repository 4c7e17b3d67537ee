package bind_group_provider

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label added for convenience.
	label string

	// releaseOnce guards Release so GPU resources are freed exactly once even
	// when teardown races a scene rebuild.
	releaseOnce sync.Once

	// The following fields are GPU allocated resources and must be released when no longer needed. They are populated by the Renderer during initialization, not by user-creation.

	// bindGroup is the GPU bind group created for this provider, or nil if not initialized with the Renderer.
	bindGroup *wgpu.BindGroup
	// bindGroupLayout is the GPU bind group layout created for this provider, or nil if not initialized with the Renderer.
	bindGroupLayout *wgpu.BindGroupLayout
	// uniformBuffer is the GPU uniform buffer created for this provider, or nil if not initialized with the Renderer.
	uniformBuffer *wgpu.Buffer
	// vertexBuffer is the GPU vertex buffer created for this provider, or nil if not initialized with the Renderer.
	vertexBuffer *wgpu.Buffer
	// vertexCount is the number of vertices for draw calls, used by the Renderer to issue draw calls for this provider.
	vertexCount int
}

// BindGroupProvider defines the interface for components that require GPU bind
// group resources. Scene meshes hold a BindGroupProvider to describe their GPU
// binding requirements. The Renderer then uses this provider to initialize and
// update GPU resources.
//
// Usage pattern:
//  1. Scene creates a BindGroupProvider with a debug label
//  2. Scene calls Renderer.InitMesh / Renderer.InitUniform to create GPU resources
//  3. Scene calls Renderer.WriteUniform(provider, data) each frame to update uniforms
//  4. Renderer accesses BindGroup() and VertexBuffer() for draw calls
type BindGroupProvider interface {
	// Release releases any GPU resources held by this provider. Safe to call
	// more than once; only the first call frees resources.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group for shader binding.
	// Returns nil if GPU resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the created bind group layout for this provider.
	// Returns nil if GPU resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the bind group layout or nil
	BindGroupLayout() *wgpu.BindGroupLayout

	// UniformBuffer returns the created uniform buffer for data writes.
	// Returns nil if GPU resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the uniform buffer or nil
	UniformBuffer() *wgpu.Buffer

	// VertexBuffer returns the GPU vertex buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the vertex buffer or nil
	VertexBuffer() *wgpu.Buffer

	// VertexCount returns the number of vertices for draw calls.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// SetBindGroup sets the bind group after GPU initialization.
	// Called by Renderer.InitUniform().
	//
	// Parameters:
	//   - bg: the created bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout sets the bind group layout after GPU initialization.
	// Called by Renderer.InitUniform().
	//
	// Parameters:
	//   - bgl: the created bind group layout
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetUniformBuffer sets the uniform buffer after GPU initialization.
	// Called by Renderer.InitUniform().
	//
	// Parameters:
	//   - buf: the created buffer
	SetUniformBuffer(buf *wgpu.Buffer)

	// SetVertexBuffer stores the GPU vertex buffer after creation by InitMesh.
	//
	// Parameters:
	//   - buf: the created vertex buffer
	SetVertexBuffer(buf *wgpu.Buffer)

	// SetVertexCount sets the number of vertices for draw calls.
	//
	// Parameters:
	//   - count: the vertex count
	SetVertexCount(count int)
}

// Compile-time check that bindGroupProvider implements BindGroupProvider
var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the provided options.
//
// Parameters:
//   - label: a debug label for the provider
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: a new instance of BindGroupProvider configured with the provided options
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label: label,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) UniformBuffer() *wgpu.Buffer {
	return p.uniformBuffer
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) VertexCount() int {
	return p.vertexCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetUniformBuffer(buf *wgpu.Buffer) {
	p.uniformBuffer = buf
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *bindGroupProvider) SetVertexCount(count int) {
	p.vertexCount = count
}

func (p *bindGroupProvider) Release() {
	p.releaseOnce.Do(func() {
		if p.bindGroup != nil {
			p.bindGroup.Release()
			p.bindGroup = nil
		}
		if p.bindGroupLayout != nil {
			p.bindGroupLayout.Release()
			p.bindGroupLayout = nil
		}
		if p.uniformBuffer != nil {
			p.uniformBuffer.Release()
			p.uniformBuffer = nil
		}
		if p.vertexBuffer != nil {
			p.vertexBuffer.Release()
			p.vertexBuffer = nil
		}
	})
}
