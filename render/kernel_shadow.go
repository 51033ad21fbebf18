// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package render

import (
	"fmt"

	"github.com/duskforge/aether/render/compute"
)

// ShadowKernel casts shadow and first-bounce local-illumination rays
// from the RayBuffer's world-position attachment against the scene's
// collider world-space caches, writing the RayBuffer's shadow and
// final attachments. Grounded on original_source's
// RayTracerDirectionalShadowKernelProgram.c and
// RayTracerPointShadowKernelProgram.c, which the original splits by
// light type; ShadowKernel keeps that split as a Directional field
// rather than two Go types, since both share every other member.
type ShadowKernel struct {
	// Directional selects the RayTracerDirectionalShadowKernelProgram
	// dispatch (parallel rays) when true, the
	// RayTracerPointShadowKernelProgram dispatch (radial rays,
	// inverse-square-ish attenuation) when false.
	Directional bool

	pipeline *compute.Pipeline
	colliders *compute.Buffer
	lights    *compute.Buffer
}

func (k *ShadowKernel) name() string {
	if k.Directional {
		return "shadow_directional"
	}
	return "shadow_point"
}

// Initialize compiles the shadow kernel's compute pipeline. Directional
// and point variants compile from distinct WGSL sources: the device's
// pipeline cache keys on name alone, with no override-constant
// mechanism to branch a single source at compile time.
func (k *ShadowKernel) Initialize(dev *compute.Device) error {
	wgsl := shadowPointWGSL
	if k.Directional {
		wgsl = shadowDirectionalWGSL
	}
	pipe, err := dev.CompilePipeline(k.name(), wgsl, "main")
	if err != nil {
		return fmt.Errorf("render: %s kernel: %w", k.name(), err)
	}
	k.pipeline = pipe
	return nil
}

// Execute uploads the active light set and collider world-space
// caches, then dispatches one 8x8 work-group per pixel tile with the
// collider count along the third dimension, matching spec's "for every
// pixel, for every object" reduction.
func (k *ShadowKernel) Execute(dev *compute.Device, params KernelParams) error {
	colliders := encodeColliders(params.Scene.Colliders)
	if k.colliders == nil || k.colliders.Size() < uint64(len(colliders)) {
		buf, err := dev.NewBuffer(k.name()+".colliders", uint64(len(colliders)), 0)
		if err != nil {
			return fmt.Errorf("render: %s kernel: %w", k.name(), err)
		}
		k.colliders = buf
	}
	dev.Write(k.colliders, 0, colliders)

	var lightBytes []byte
	if k.Directional {
		lightBytes = encodeDirectionalLight(params.Scene.Sun)
	} else {
		lightBytes = encodePointLights(params.Scene.Points)
	}
	if k.lights == nil || k.lights.Size() < uint64(len(lightBytes)) {
		buf, err := dev.NewBuffer(k.name()+".lights", uint64(len(lightBytes)), 0)
		if err != nil {
			return fmt.Errorf("render: %s kernel: %w", k.name(), err)
		}
		k.lights = buf
	}
	dev.Write(k.lights, 0, lightBytes)

	groupsX := (params.RayBuf.Width + 7) / 8
	groupsY := (params.RayBuf.Height + 7) / 8
	groupsZ := uint32(len(params.Scene.Colliders))
	if groupsZ == 0 {
		groupsZ = 1
	}
	return dev.Execute(compute.Dispatch{
		Pipeline: k.pipeline,
		Buffers:  []*compute.Buffer{params.RayBuf.Position, params.RayBuf.Normal, k.colliders, k.lights, params.RayBuf.Shadow, params.RayBuf.Final},
		GroupsX:  groupsX,
		GroupsY:  groupsY,
		GroupsZ:  groupsZ,
	})
}

// FreeMembers releases the kernel's private device buffers.
func (k *ShadowKernel) FreeMembers() {
	if k.colliders != nil {
		k.colliders.Release()
	}
	if k.lights != nil {
		k.lights.Release()
	}
}

func encodeColliders(views []ColliderView) []byte {
	const stride = 4*4 + 4 + 4*4 // Kind + Center + Radius + Half, float32-packed
	buf := make([]byte, len(views)*stride)
	for i, v := range views {
		off := i * stride
		putF32(buf, off, float32(v.Kind))
		putVec3(buf, off+4, v.Center)
		putF32(buf, off+16, v.Radius)
		putVec3(buf, off+20, v.Half)
	}
	return buf
}

func encodeDirectionalLight(l DirectionalLight) []byte {
	buf := make([]byte, 32)
	putVec3(buf, 0, l.Direction)
	putVec3(buf, 12, l.Color)
	putF32(buf, 24, l.Ambient)
	putF32(buf, 28, l.Diffuse)
	return buf
}

func encodePointLights(lights []PointLight) []byte {
	const stride = 12 + 12 + 4 + 4 + 4
	buf := make([]byte, len(lights)*stride)
	for i, l := range lights {
		off := i * stride
		putVec3(buf, off, l.Position)
		putVec3(buf, off+12, l.Color)
		putF32(buf, off+24, l.Kc)
		putF32(buf, off+28, l.Kl)
		putF32(buf, off+32, l.Kq)
	}
	return buf
}
