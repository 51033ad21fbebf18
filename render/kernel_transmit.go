// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package render

import (
	"fmt"

	"github.com/duskforge/aether/render/compute"
)

// TransmitKernel computes transmission (refraction) radiance into the
// GlobalBuffer using the transmitted medium's material coefficients
// (k_index). Grounded on original_source's
// RayTracerTransmissionKernelProgram.c, which shares
// RayTracerReflectionKernelProgram.c's two-intermediate-texture,
// merge-by-distance structure. As in ReflectKernel, both trace
// dispatches test every collider; they are not split by collider kind.
type TransmitKernel struct {
	pipeline  *compute.Pipeline
	mergePipe *compute.Pipeline
	colliders *compute.Buffer
	sphereHit *compute.Buffer
	aabbHit   *compute.Buffer
}

func (k *TransmitKernel) Initialize(dev *compute.Device) error {
	pipe, err := dev.CompilePipeline("transmit", transmitKernelWGSL, "main")
	if err != nil {
		return fmt.Errorf("render: transmit kernel: %w", err)
	}
	merge, err := dev.CompilePipeline("transmit_merge", transmitMergeWGSL, "main")
	if err != nil {
		return fmt.Errorf("render: transmit merge kernel: %w", err)
	}
	k.pipeline, k.mergePipe = pipe, merge
	return nil
}

func (k *TransmitKernel) Execute(dev *compute.Device, params KernelParams) error {
	n := uint64(params.RayBuf.Width) * uint64(params.RayBuf.Height)
	size := n * bytesRGBA32F
	var err error
	if k.sphereHit == nil || k.sphereHit.Size() < size {
		if k.sphereHit, err = dev.NewBuffer("transmit.sphere_hit", size, 0); err != nil {
			return fmt.Errorf("render: transmit kernel: %w", err)
		}
	}
	if k.aabbHit == nil || k.aabbHit.Size() < size {
		if k.aabbHit, err = dev.NewBuffer("transmit.aabb_hit", size, 0); err != nil {
			return fmt.Errorf("render: transmit kernel: %w", err)
		}
	}
	colliders := encodeColliders(params.Scene.Colliders)
	if k.colliders == nil || k.colliders.Size() < uint64(len(colliders)) {
		if k.colliders, err = dev.NewBuffer("transmit.colliders", uint64(len(colliders)), 0); err != nil {
			return fmt.Errorf("render: transmit kernel: %w", err)
		}
	}
	dev.Write(k.colliders, 0, colliders)

	groupsX := (params.RayBuf.Width + 7) / 8
	groupsY := (params.RayBuf.Height + 7) / 8
	for _, hitBuf := range []*compute.Buffer{k.sphereHit, k.aabbHit} {
		if err := dev.Execute(compute.Dispatch{
			Pipeline: k.pipeline,
			Buffers:  []*compute.Buffer{params.RayBuf.Position, params.RayBuf.Normal, k.colliders, params.GlobBuf.MediumMaterial, hitBuf},
			GroupsX:  groupsX,
			GroupsY:  groupsY,
		}); err != nil {
			return fmt.Errorf("render: transmit kernel: %w", err)
		}
	}
	return dev.Execute(compute.Dispatch{
		Pipeline: k.mergePipe,
		Buffers:  []*compute.Buffer{k.sphereHit, k.aabbHit, params.GlobBuf.Transmission},
		GroupsX:  groupsX,
		GroupsY:  groupsY,
	})
}

func (k *TransmitKernel) FreeMembers() {
	for _, b := range []*compute.Buffer{k.colliders, k.sphereHit, k.aabbHit} {
		if b != nil {
			b.Release()
		}
	}
}
