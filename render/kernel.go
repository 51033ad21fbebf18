// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package render

// kernel.go defines the uniform interface every compute-side ray
// trace stage implements, grounded on
// original_source/Device/KernelProgram.h's KernelProgram struct
// (clProgram + members + FreeMembers/Execute function pointers).
// Go expresses the same shape as an interface rather than a struct of
// function pointers; each concrete kernel owns its compiled pipeline
// and private device buffers behind it.

import "github.com/duskforge/aether/render/compute"

// KernelParams carries the per-frame inputs a kernel needs to
// execute: the scene's collider world-space caches (read-only, set
// once per tick by the integrator), the active camera and lights, and
// the RayBuffer/GlobalBuffer textures it reads or writes.
type KernelParams struct {
	Scene   *Scene
	RayBuf  *RayBuffer
	GlobBuf *GlobalBuffer
}

// KernelProgram is the uniform lifecycle every ray trace and tone
// reproduction stage implements: compile against the device once,
// execute once per frame, free device resources once at shutdown.
type KernelProgram interface {
	Initialize(dev *compute.Device) error
	Execute(dev *compute.Device, params KernelParams) error
	FreeMembers()
}

// Scene is the per-tick render input: camera, lights, and the
// collider world-space caches the ray trace kernel hit-tests against.
// Mirrors spec's External Interfaces scene-input description.
type Scene struct {
	Camera    Camera
	Sun       DirectionalLight
	Points    []PointLight
	Colliders []ColliderView
}

// Camera holds the view and projection matrices plus the clip planes
// the ray trace kernel needs to reconstruct a world-space ray per
// pixel from the G-buffer's stored position.
type Camera struct {
	View, Proj [16]float32
	Position   [3]float32
	Near, Far  float32
}

// DirectionalLight is a parallel-ray light source.
type DirectionalLight struct {
	Direction [3]float32
	Color     [3]float32
	Ambient   float32
	Diffuse   float32
}

// PointLight is a radial light source attenuated by
// 1 / (Kc + Kl*d + Kq*d^2).
type PointLight struct {
	Position  [3]float32
	Color     [3]float32
	Kc, Kl, Kq float32
}

// ColliderView is the read-only GPU-visible projection of one physics
// collider's world-space cache, the same data the CPU detector reads,
// per spec's "same data structures" cross-context invariant.
type ColliderView struct {
	Kind   uint32 // matches physics.Kind ordinal: sphere=0, aabb=1.
	Center [3]float32
	Radius float32   // sphere only.
	Half   [3]float32 // aabb only: half extents.
}
