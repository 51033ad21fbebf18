// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package render

import (
	"fmt"

	"github.com/duskforge/aether/render/compute"
)

// ReflectKernel computes reflection radiance into the GlobalBuffer. It
// runs the same trace dispatch twice, into the sphereHit and aabbHit
// intermediate buffers, then a merge dispatch combines them per-pixel
// by smallest hit distance. The two trace dispatches are not split by
// collider kind: each one tests every collider, spheres and AABBs alike.
type ReflectKernel struct {
	pipeline  *compute.Pipeline
	mergePipe *compute.Pipeline
	colliders *compute.Buffer
	sphereHit *compute.Buffer
	aabbHit   *compute.Buffer
}

func (k *ReflectKernel) Initialize(dev *compute.Device) error {
	pipe, err := dev.CompilePipeline("reflect", reflectKernelWGSL, "main")
	if err != nil {
		return fmt.Errorf("render: reflect kernel: %w", err)
	}
	merge, err := dev.CompilePipeline("reflect_merge", reflectMergeWGSL, "main")
	if err != nil {
		return fmt.Errorf("render: reflect merge kernel: %w", err)
	}
	k.pipeline, k.mergePipe = pipe, merge
	return nil
}

func (k *ReflectKernel) Execute(dev *compute.Device, params KernelParams) error {
	n := uint64(params.RayBuf.Width) * uint64(params.RayBuf.Height)
	if err := k.ensureHitBuffers(dev, n); err != nil {
		return err
	}
	colliders := encodeColliders(params.Scene.Colliders)
	if k.colliders == nil || k.colliders.Size() < uint64(len(colliders)) {
		buf, err := dev.NewBuffer("reflect.colliders", uint64(len(colliders)), 0)
		if err != nil {
			return fmt.Errorf("render: reflect kernel: %w", err)
		}
		k.colliders = buf
	}
	dev.Write(k.colliders, 0, colliders)

	groupsX := (params.RayBuf.Width + 7) / 8
	groupsY := (params.RayBuf.Height + 7) / 8
	for _, hitBuf := range []*compute.Buffer{k.sphereHit, k.aabbHit} {
		if err := dev.Execute(compute.Dispatch{
			Pipeline: k.pipeline,
			Buffers:  []*compute.Buffer{params.RayBuf.Position, params.RayBuf.Normal, k.colliders, hitBuf},
			GroupsX:  groupsX,
			GroupsY:  groupsY,
		}); err != nil {
			return fmt.Errorf("render: reflect kernel: %w", err)
		}
	}
	return dev.Execute(compute.Dispatch{
		Pipeline: k.mergePipe,
		Buffers:  []*compute.Buffer{k.sphereHit, k.aabbHit, params.GlobBuf.Reflection},
		GroupsX:  groupsX,
		GroupsY:  groupsY,
	})
}

func (k *ReflectKernel) ensureHitBuffers(dev *compute.Device, n uint64) error {
	size := n * bytesRGBA32F
	var err error
	if k.sphereHit == nil || k.sphereHit.Size() < size {
		if k.sphereHit, err = dev.NewBuffer("reflect.sphere_hit", size, 0); err != nil {
			return fmt.Errorf("render: reflect kernel: %w", err)
		}
	}
	if k.aabbHit == nil || k.aabbHit.Size() < size {
		if k.aabbHit, err = dev.NewBuffer("reflect.aabb_hit", size, 0); err != nil {
			return fmt.Errorf("render: reflect kernel: %w", err)
		}
	}
	return nil
}

func (k *ReflectKernel) FreeMembers() {
	for _, b := range []*compute.Buffer{k.colliders, k.sphereHit, k.aabbHit} {
		if b != nil {
			b.Release()
		}
	}
}
