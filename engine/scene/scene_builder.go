package scene

import (
	"github.com/Carmen-Shannon/automation/tools/worker"
	"go.uber.org/zap"

	"github.com/nexusnext/nexusnext/engine/renderer"
)

// ManagerBuilderOption defines a functional option for configuring a scene
// manager during creation.
//
// Parameters:
//   - m: pointer to the managerImpl instance to configure
type ManagerBuilderOption func(m *managerImpl)

// WithLogger sets the logger used for lifecycle and animation diagnostics.
//
// Parameters:
//   - log: the logger to use
//
// Returns:
//   - ManagerBuilderOption: the option function
func WithLogger(log *zap.Logger) ManagerBuilderOption {
	return func(m *managerImpl) {
		if log != nil {
			m.log = log
		}
	}
}

// WithRenderer sets the renderer the scene allocates buffers on and issues
// draw calls through.
//
// Parameters:
//   - rend: the renderer to use
//
// Returns:
//   - ManagerBuilderOption: the option function
func WithRenderer(rend renderer.Renderer) ManagerBuilderOption {
	return func(m *managerImpl) {
		m.rend = rend
	}
}

// WithWorkerPool sets the pool used for parallel geometry generation. When
// omitted, a pool sized to the machine's CPU count is created.
//
// Parameters:
//   - pool: the worker pool to use
//
// Returns:
//   - ManagerBuilderOption: the option function
func WithWorkerPool(pool worker.DynamicWorkerPool) ManagerBuilderOption {
	return func(m *managerImpl) {
		m.pool = pool
	}
}

// WithSeed sets the seed for the scene's randomized particle placement,
// making the generated geometry reproducible.
//
// Parameters:
//   - seed: the random seed
//
// Returns:
//   - ManagerBuilderOption: the option function
func WithSeed(seed int64) ManagerBuilderOption {
	return func(m *managerImpl) {
		m.seed = seed
	}
}
