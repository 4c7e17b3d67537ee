package shader

// SceneUniform layout shared by all scene pipelines: view-projection matrix,
// model matrix, tint (rgb + overall opacity in a), and params
// (x = particle size, y = ambient intensity, z/w reserved). 160 bytes total,
// matching the uniform buffer created by the renderer.

// ParticleWGSL renders point-cloud geometry. Particle size cannot widen a
// point primitive in WebGPU, so larger sizes instead boost per-point alpha,
// which reads as brighter, heavier particles at a distance.
const ParticleWGSL = `
struct SceneUniform {
    view_proj: mat4x4<f32>,
    model: mat4x4<f32>,
    tint: vec4<f32>,
    params: vec4<f32>,
};

@group(0) @binding(0) var<uniform> scene: SceneUniform;

struct VertexOut {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec4<f32>,
};

@vertex
fn vs_main(@location(0) position: vec3<f32>, @location(1) color: vec4<f32>) -> VertexOut {
    var out: VertexOut;
    out.position = scene.view_proj * scene.model * vec4<f32>(position, 1.0);
    let boost = clamp(scene.params.x * 0.35, 0.2, 1.0);
    out.color = vec4<f32>(
        color.rgb * scene.tint.rgb * scene.params.y,
        color.a * scene.tint.a * boost,
    );
    return out;
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
    return in.color;
}
`

// StrandWGSL renders line-list geometry (sphere wireframe, helix strands,
// cross rungs). Alpha comes straight from the vertex color scaled by the
// material tint.
const StrandWGSL = `
struct SceneUniform {
    view_proj: mat4x4<f32>,
    model: mat4x4<f32>,
    tint: vec4<f32>,
    params: vec4<f32>,
};

@group(0) @binding(0) var<uniform> scene: SceneUniform;

struct VertexOut {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec4<f32>,
};

@vertex
fn vs_main(@location(0) position: vec3<f32>, @location(1) color: vec4<f32>) -> VertexOut {
    var out: VertexOut;
    out.position = scene.view_proj * scene.model * vec4<f32>(position, 1.0);
    out.color = vec4<f32>(color.rgb * scene.tint.rgb * scene.params.y, color.a * scene.tint.a);
    return out;
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
    return in.color;
}
`
