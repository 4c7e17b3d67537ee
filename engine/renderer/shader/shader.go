package shader

// ShaderType identifies which pipeline stage a shader targets.
type ShaderType int

const (
	ShaderTypeVertex ShaderType = iota
	ShaderTypeFragment
)

// Shader wraps a WGSL module with its entry point for pipeline creation.
// Sources are embedded Go constants; there is no runtime shader loading.
type Shader interface {
	// Key returns the shader's identifier, used as the shader module label.
	Key() string

	// Type returns the pipeline stage this shader targets.
	Type() ShaderType

	// Source returns the WGSL source code.
	Source() string

	// EntryPoint returns the entry function name within the WGSL module.
	EntryPoint() string
}

type shaderImpl struct {
	key        string
	shaderType ShaderType
	source     string
	entryPoint string
}

var _ Shader = &shaderImpl{}

// NewShader creates a Shader from an embedded WGSL source string.
// The entry point defaults to "vs_main" for vertex shaders and "fs_main"
// for fragment shaders.
//
// Parameters:
//   - key: the shader identifier
//   - shaderType: the pipeline stage
//   - source: the WGSL source code
//   - options: functional options to further configure the shader
//
// Returns:
//   - Shader: the newly created shader
func NewShader(key string, shaderType ShaderType, source string, options ...ShaderBuilderOption) Shader {
	s := &shaderImpl{
		key:        key,
		shaderType: shaderType,
		source:     source,
	}
	switch shaderType {
	case ShaderTypeVertex:
		s.entryPoint = "vs_main"
	case ShaderTypeFragment:
		s.entryPoint = "fs_main"
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *shaderImpl) Key() string {
	return s.key
}

func (s *shaderImpl) Type() ShaderType {
	return s.shaderType
}

func (s *shaderImpl) Source() string {
	return s.source
}

func (s *shaderImpl) EntryPoint() string {
	return s.entryPoint
}

// ShaderBuilderOption is a functional option for configuring a shader.
type ShaderBuilderOption func(*shaderImpl)

// WithEntryPoint overrides the default entry function name.
//
// Parameters:
//   - name: the WGSL entry function name
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithEntryPoint(name string) ShaderBuilderOption {
	return func(s *shaderImpl) {
		s.entryPoint = name
	}
}
