// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package render

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/duskforge/aether/render/compute"
)

// Per-pixel byte sizes of a RayBuffer attachment, named after the
// internal format spec.md assigns it.
const (
	bytesRGB32F        = 12
	bytesRGBA8         = 4
	bytesRGBA32F       = 16
	bytesR8            = 1
	bytesDepthStencil8 = 8
)

// rwStorage is the usage every RayBuffer/GlobalBuffer attachment needs:
// written by a compute kernel, read back or copied by the next stage.
const rwStorage = wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst

// RayBuffer is the rasterised G-buffer the ray trace kernels read,
// grounded on original_source/Render/RayBuffer.h's
// RayBuffer_TextureType enum (POSITION, DIFFUSE, NORMAL, MATERIAL,
// SPECULAR, SHADOW, FINAL, DEPTH). The original's GL framebuffer
// object and its eight GL texture attachments are expressed here as
// compute storage buffers, since window/texture-object creation is an
// explicit Non-goal and the compute kernels only ever need read/write
// access to the attachment storage, not its GL-side binding.
type RayBuffer struct {
	Width, Height uint32

	Position *compute.Buffer // RGB32F world position
	Albedo   *compute.Buffer // RGBA8
	Normal   *compute.Buffer // RGB32F world normal
	Material *compute.Buffer // RGBA32F ambient/diffuse/specular/shininess
	Specular *compute.Buffer // RGBA8 specular tint
	Shadow   *compute.Buffer // R8
	Final    *compute.Buffer // RGBA8
	Depth    *compute.Buffer // DEPTH32F_STENCIL8

	owned bool // true while the compute context holds the attachments.
}

// NewRayBuffer allocates a RayBuffer's eight attachments at the given
// pixel dimensions.
func NewRayBuffer(dev *compute.Device, width, height uint32) (*RayBuffer, error) {
	n := uint64(width) * uint64(height)
	rb := &RayBuffer{Width: width, Height: height}
	var err error
	for _, a := range []struct {
		dst  **compute.Buffer
		name string
		size uint64
	}{
		{&rb.Position, "raybuffer.position", n * bytesRGB32F},
		{&rb.Albedo, "raybuffer.albedo", n * bytesRGBA8},
		{&rb.Normal, "raybuffer.normal", n * bytesRGB32F},
		{&rb.Material, "raybuffer.material", n * bytesRGBA32F},
		{&rb.Specular, "raybuffer.specular", n * bytesRGBA8},
		{&rb.Shadow, "raybuffer.shadow", n * bytesR8},
		{&rb.Final, "raybuffer.final", n * bytesRGBA8},
		{&rb.Depth, "raybuffer.depth", n * bytesDepthStencil8},
	} {
		if *a.dst, err = dev.NewBuffer(a.name, a.size, rwStorage); err != nil {
			return nil, fmt.Errorf("render: raybuffer: %w", err)
		}
	}
	return rb, nil
}

// Acquire hands the RayBuffer's attachments from the rasteriser to the
// compute context, per spec's GL-to-compute handoff. A full queue
// finish stands in for the ordering event the rasteriser's prior
// submission is waited on before any kernel reads the attachments.
func (rb *RayBuffer) Acquire(dev *compute.Device) error {
	if rb.owned {
		return fmt.Errorf("render: raybuffer already acquired")
	}
	dev.Finish()
	rb.owned = true
	return nil
}

// Release hands the attachments back to the rasteriser, emitting the
// matching ordering event the next geometry pass waits on.
func (rb *RayBuffer) Release(dev *compute.Device) error {
	if !rb.owned {
		return fmt.Errorf("render: raybuffer not acquired")
	}
	dev.Finish()
	rb.owned = false
	return nil
}

func (rb *RayBuffer) attachments() []*compute.Buffer {
	return []*compute.Buffer{rb.Position, rb.Albedo, rb.Normal, rb.Material, rb.Specular, rb.Shadow, rb.Final, rb.Depth}
}

// Free releases every attachment's GPU memory.
func (rb *RayBuffer) Free() {
	for _, b := range rb.attachments() {
		if b != nil {
			b.Release()
		}
	}
}
