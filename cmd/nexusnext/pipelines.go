package main

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/nexusnext/nexusnext/engine/renderer/pipeline"
	"github.com/nexusnext/nexusnext/engine/renderer/shader"
)

// particlePipeline builds the additively blended point-cloud pipeline shared
// by both scenes' particle fields.
func particlePipeline() pipeline.Pipeline {
	return pipeline.NewPipeline(pipeline.KeyParticles,
		pipeline.WithVertexShader(shader.NewShader(pipeline.KeyParticles, shader.ShaderTypeVertex, shader.ParticleWGSL)),
		pipeline.WithFragmentShader(shader.NewShader(pipeline.KeyParticles, shader.ShaderTypeFragment, shader.ParticleWGSL)),
		pipeline.WithTopology(wgpu.PrimitiveTopologyPointList),
		pipeline.WithBlendEnabled(true),
		pipeline.WithBlendState(pipeline.AdditiveBlendState()),
		pipeline.WithDepthWriteEnabled(false),
	)
}

// strandPipeline builds the alpha-blended line-list pipeline used by the
// sphere wireframe and the helix strands and rungs.
func strandPipeline() pipeline.Pipeline {
	return pipeline.NewPipeline(pipeline.KeyStrands,
		pipeline.WithVertexShader(shader.NewShader(pipeline.KeyStrands, shader.ShaderTypeVertex, shader.StrandWGSL)),
		pipeline.WithFragmentShader(shader.NewShader(pipeline.KeyStrands, shader.ShaderTypeFragment, shader.StrandWGSL)),
		pipeline.WithTopology(wgpu.PrimitiveTopologyLineList),
		pipeline.WithBlendEnabled(true),
		pipeline.WithBlendState(pipeline.AlphaBlendState()),
		pipeline.WithDepthWriteEnabled(false),
	)
}
