package scene

import (
	"sync"

	"github.com/nexusnext/nexusnext/engine/camera"
	"github.com/nexusnext/nexusnext/engine/light"
	"github.com/nexusnext/nexusnext/engine/renderer/bind_group_provider"
	"github.com/nexusnext/nexusnext/engine/renderer/material"
)

// mesh pairs a GPU resource provider with the material that drives its tint
// and opacity each frame.
type mesh struct {
	material material.Material
	provider bind_group_provider.BindGroupProvider
}

// Resources is the bundle exclusively owned by one mounted scene instance:
// geometry buffers, materials, camera, and ambient light. It is created
// during construction, mutated every frame by the owning scene's animation
// step, and fully released on unmount. A fresh bundle is built for every
// mount; bundles are never shared across instances or re-mounts.
type Resources struct {
	cam     camera.Camera
	ambient light.Light
	meshes  []*mesh

	releaseOnce sync.Once
}

// Camera returns the bundle's camera.
//
// Returns:
//   - camera.Camera: the camera framing this scene
func (r *Resources) Camera() camera.Camera {
	return r.cam
}

// Ambient returns the bundle's ambient light.
//
// Returns:
//   - light.Light: the ambient light
func (r *Resources) Ambient() light.Light {
	return r.ambient
}

// Release frees every GPU buffer and bind group held by the bundle. Safe to
// call more than once; only the first call releases anything. It is also safe
// to call on a bundle whose construction never completed.
func (r *Resources) Release() {
	r.releaseOnce.Do(func() {
		for _, m := range r.meshes {
			if m.provider != nil {
				m.provider.Release()
			}
		}
		r.meshes = nil
	})
}
