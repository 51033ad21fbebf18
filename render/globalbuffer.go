// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package render

import (
	"fmt"

	"github.com/duskforge/aether/render/compute"
)

// GlobalBuffer accumulates the ray trace kernels' results: locally-lit
// colour, reflection and transmission radiance, the per-pixel global
// material coefficients, the transmitted medium's material, and the
// tone-mapped final image blitted to the screen. Luminance is the
// scalar buffer the tone reproduction kernel's log-average reduction
// writes into.
type GlobalBuffer struct {
	Width, Height uint32

	LocalColor     *compute.Buffer // RGBA8 locally-lit colour
	Reflection     *compute.Buffer // RGBA32F reflection radiance
	Transmission   *compute.Buffer // RGBA32F transmission radiance
	Coefficients   *compute.Buffer // RGB32F k_reflect, k_transmit, k_index
	MediumMaterial *compute.Buffer // RGBA32F transmitted-medium material
	Final          *compute.Buffer // RGBA8 tone-mapped final image

	// Luminance is the single-scalar log-average luminance buffer the
	// tone reproduction kernel's first pass reduces into before the
	// second pass's per-pixel Reinhard map.
	Luminance *compute.Buffer

	owned bool
}

// NewGlobalBuffer allocates a GlobalBuffer's attachments at the given
// pixel dimensions plus its single-scalar luminance reduction target.
func NewGlobalBuffer(dev *compute.Device, width, height uint32) (*GlobalBuffer, error) {
	n := uint64(width) * uint64(height)
	gb := &GlobalBuffer{Width: width, Height: height}
	var err error
	for _, a := range []struct {
		dst  **compute.Buffer
		name string
		size uint64
	}{
		{&gb.LocalColor, "globalbuffer.local_color", n * bytesRGBA8},
		{&gb.Reflection, "globalbuffer.reflection", n * bytesRGBA32F},
		{&gb.Transmission, "globalbuffer.transmission", n * bytesRGBA32F},
		{&gb.Coefficients, "globalbuffer.coefficients", n * bytesRGB32F},
		{&gb.MediumMaterial, "globalbuffer.medium_material", n * bytesRGBA32F},
		{&gb.Final, "globalbuffer.final", n * bytesRGBA8},
		{&gb.Luminance, "globalbuffer.luminance", 4},
	} {
		if *a.dst, err = dev.NewBuffer(a.name, a.size, rwStorage); err != nil {
			return nil, fmt.Errorf("render: globalbuffer: %w", err)
		}
	}
	return gb, nil
}

// Acquire hands the GlobalBuffer's attachments to the compute context.
func (gb *GlobalBuffer) Acquire(dev *compute.Device) error {
	if gb.owned {
		return fmt.Errorf("render: globalbuffer already acquired")
	}
	dev.Finish()
	gb.owned = true
	return nil
}

// Release hands the attachments back to the rasteriser for the blit.
func (gb *GlobalBuffer) Release(dev *compute.Device) error {
	if !gb.owned {
		return fmt.Errorf("render: globalbuffer not acquired")
	}
	dev.Finish()
	gb.owned = false
	return nil
}

func (gb *GlobalBuffer) attachments() []*compute.Buffer {
	return []*compute.Buffer{gb.LocalColor, gb.Reflection, gb.Transmission, gb.Coefficients, gb.MediumMaterial, gb.Final, gb.Luminance}
}

// Free releases every attachment's GPU memory.
func (gb *GlobalBuffer) Free() {
	for _, b := range gb.attachments() {
		if b != nil {
			b.Release()
		}
	}
}
