// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package render orchestrates one frame's fixed pass sequence:
// rasterised geometry, GL-to-compute handoff, ray trace kernels, tone
// reproduction, compute-to-GL handoff, blit. Package render is
// provided as part of the duskforge/aether 3D engine.
package render

import (
	"fmt"
	"log/slog"

	"github.com/duskforge/aether/render/compute"
)

// GraphicsContext is the opaque handle to the host's graphics context.
// Window and context creation are out of scope; host code creates and
// swaps the underlying context and hands the Pipeline this reference
// so passes can be attributed to it. Mirrors the role gazed-vu's
// device package plays without the window lifecycle it also owns.
type GraphicsContext uintptr

// Rasterizer draws the geometry pass and performs the final blit.
// Host code implements this against whatever graphics backend owns
// GraphicsContext; Pipeline only orchestrates when each runs relative
// to the compute kernels, never how either binds to the GPU.
type Rasterizer interface {
	// DrawGeometry rasterises every packet in pass, writing the
	// position/albedo/normal/material/specular attachments and depth.
	DrawGeometry(ctx GraphicsContext, pass *Pass, rb *RayBuffer) error

	// Blit copies the GlobalBuffer's tone-mapped final image to the
	// default framebuffer.
	Blit(ctx GraphicsContext, gb *GlobalBuffer) error
}

// Pipeline owns the RayBuffer, GlobalBuffer, and the ordered kernel
// programs that turn a geometry pass into a tone-mapped frame.
// Grounded on gazed-vu/render.go's Renderer lifecycle (Init once,
// Render per frame), generalized from a Model/Shader/Mesh/Texture
// asset surface to RayBuffer/GlobalBuffer/KernelProgram orchestration.
type Pipeline struct {
	dev *compute.Device
	ctx GraphicsContext
	raz Rasterizer

	ray  *RayBuffer
	glob *GlobalBuffer

	// kernels run in order against the same RayBuffer/GlobalBuffer
	// pair: directional shadow, point shadow, reflection,
	// transmission, tone reproduction. A nil entry is skipped.
	kernels []KernelProgram

	log *slog.Logger
}

// NewPipeline allocates the RayBuffer and GlobalBuffer at the given
// pixel dimensions and returns a Pipeline ready for Initialize.
func NewPipeline(dev *compute.Device, ctx GraphicsContext, raz Rasterizer, width, height uint32) (*Pipeline, error) {
	ray, err := NewRayBuffer(dev, width, height)
	if err != nil {
		return nil, err
	}
	glob, err := NewGlobalBuffer(dev, width, height)
	if err != nil {
		ray.Free()
		return nil, err
	}
	return &Pipeline{
		dev:  dev,
		ctx:  ctx,
		raz:  raz,
		ray:  ray,
		glob: glob,
		log:  slog.Default().With("pkg", "render"),
	}, nil
}

// Initialize compiles the given kernel programs in the order they
// will run and keeps them for the lifetime of the Pipeline. A build
// failure is logged and returned as an error, and the Pipeline keeps
// none of the given kernels; it is not marked unusable, so a later
// Render still runs without them. Initialize does not exit the process.
func (p *Pipeline) Initialize(kernels ...KernelProgram) error {
	for i, k := range kernels {
		if k == nil {
			continue
		}
		if err := k.Initialize(p.dev); err != nil {
			p.log.Error("kernel initialize failed", "index", i, "err", err)
			return fmt.Errorf("render: initialize kernel %d: %w", i, err)
		}
	}
	p.kernels = kernels
	return nil
}

// Render runs one frame: geometry pass, GL-to-compute handoff, every
// kernel in initialization order, compute-to-GL handoff, blit. A
// runtime kernel error is logged and the frame continues with
// whatever the kernel had already written, per spec's runtime compute
// error handling; a geometry or handoff error aborts the frame.
func (p *Pipeline) Render(pass *Pass, scene *Scene) error {
	if err := p.raz.DrawGeometry(p.ctx, pass, p.ray); err != nil {
		return fmt.Errorf("render: geometry pass: %w", err)
	}
	if err := p.ray.Acquire(p.dev); err != nil {
		return fmt.Errorf("render: acquire raybuffer: %w", err)
	}
	if err := p.glob.Acquire(p.dev); err != nil {
		p.ray.Release(p.dev)
		return fmt.Errorf("render: acquire globalbuffer: %w", err)
	}

	params := KernelParams{Scene: scene, RayBuf: p.ray, GlobBuf: p.glob}
	for i, k := range p.kernels {
		if k == nil {
			continue
		}
		if err := k.Execute(p.dev, params); err != nil {
			p.log.Error("kernel execute failed", "index", i, "err", err)
		}
	}
	p.dev.Finish()

	if err := p.glob.Release(p.dev); err != nil {
		return fmt.Errorf("render: release globalbuffer: %w", err)
	}
	if err := p.ray.Release(p.dev); err != nil {
		return fmt.Errorf("render: release raybuffer: %w", err)
	}
	return p.raz.Blit(p.ctx, p.glob)
}

// Release frees every kernel's device resources and the Pipeline's
// RayBuffer/GlobalBuffer attachments.
func (p *Pipeline) Release() {
	for _, k := range p.kernels {
		if k != nil {
			k.FreeMembers()
		}
	}
	p.glob.Free()
	p.ray.Free()
}
