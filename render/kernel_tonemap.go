// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package render

import (
	"fmt"

	"github.com/duskforge/aether/render/compute"
)

// ToneMapKernel applies a two-pass Reinhard tone reproduction
// operator: a log-luminance reduction pass followed by the per-pixel
// map `L' = L*(1+L/L_white^2)/(1+L)`. Grounded on
// original_source/Device/ToneReproductionKernelProgram.c, recovering
// the reduction pass that spec.md's "two-pass Reinhard" names without
// detailing.
type ToneMapKernel struct {
	LWhite float32 // white point; values above this clip to white.

	reducePipe  *compute.Pipeline
	tonemapPipe *compute.Pipeline
	params      *compute.Buffer
}

func (k *ToneMapKernel) Initialize(dev *compute.Device) error {
	reduce, err := dev.CompilePipeline("tonemap_reduce", luminanceReduceWGSL, "main")
	if err != nil {
		return fmt.Errorf("render: tonemap kernel: %w", err)
	}
	tonemap, err := dev.CompilePipeline("tonemap_apply", tonemapApplyWGSL, "main")
	if err != nil {
		return fmt.Errorf("render: tonemap kernel: %w", err)
	}
	k.reducePipe, k.tonemapPipe = reduce, tonemap
	if k.LWhite == 0 {
		k.LWhite = 4.0
	}
	return nil
}

func (k *ToneMapKernel) Execute(dev *compute.Device, params KernelParams) error {
	groupsX := (params.RayBuf.Width + 7) / 8
	groupsY := (params.RayBuf.Height + 7) / 8

	// luminanceReduceWGSL atomically sums into a single fixed-point
	// scalar every dispatch, so it must start from zero each frame.
	dev.Write(params.GlobBuf.Luminance, 0, make([]byte, 4))

	// pass 1: per-tile log-luminance reduced into a single scalar.
	if err := dev.Execute(compute.Dispatch{
		Pipeline: k.reducePipe,
		Buffers:  []*compute.Buffer{params.GlobBuf.LocalColor, params.GlobBuf.Reflection, params.GlobBuf.Transmission, params.GlobBuf.Luminance},
		GroupsX:  groupsX,
		GroupsY:  groupsY,
	}); err != nil {
		return fmt.Errorf("render: tonemap reduce: %w", err)
	}

	if k.params == nil {
		buf, err := dev.NewBuffer("tonemap.params", 8, 0)
		if err != nil {
			return fmt.Errorf("render: tonemap kernel: %w", err)
		}
		k.params = buf
	}
	// params[0] is Lwhite^2 for the Reinhard map; params[1] is the
	// number of workgroups the reduce pass summed, needed to undo the
	// fixed-point atomic accumulation and recover the scene's average
	// log-luminance rather than its sum.
	tileCount := float32(groupsX * groupsY)
	paramBytes := append(f32bytes(k.LWhite*k.LWhite), f32bytes(tileCount)...)
	dev.Write(k.params, 0, paramBytes)

	// pass 2: per-pixel Reinhard map using the reduced scalar.
	if err := dev.Execute(compute.Dispatch{
		Pipeline: k.tonemapPipe,
		Buffers:  []*compute.Buffer{params.GlobBuf.LocalColor, params.GlobBuf.Reflection, params.GlobBuf.Transmission, params.GlobBuf.Luminance, k.params, params.GlobBuf.Final},
		GroupsX:  groupsX,
		GroupsY:  groupsY,
	}); err != nil {
		return fmt.Errorf("render: tonemap apply: %w", err)
	}
	return nil
}

func (k *ToneMapKernel) FreeMembers() {
	if k.params != nil {
		k.params.Release()
	}
}

func f32bytes(v float32) []byte {
	buf := make([]byte, 4)
	putF32(buf, 0, v)
	return buf
}
