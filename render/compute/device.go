// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package compute wraps the GPU compute backend the render pipeline's
// kernel programs dispatch against: shadow, reflection, transmission,
// and tone reproduction all share one Device.
package compute

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// Device owns the WebGPU instance, adapter, logical device, and queue
// used by every kernel program. Create one per pipeline and share it;
// Pipeline objects it compiles are cached by name.
type Device struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	gpu      *wgpu.Device
	queue    *wgpu.Queue

	mu        sync.RWMutex
	pipelines map[string]*Pipeline
	log       *slog.Logger
}

// Pipeline is a compiled compute kernel ready to dispatch.
type Pipeline struct {
	shader *wgpu.ShaderModule
	pipe   *wgpu.ComputePipeline
	layout *wgpu.BindGroupLayout
}

// Buffer wraps a GPU buffer used to pass data into or out of a kernel.
type Buffer struct {
	handle *wgpu.Buffer
	size   uint64
}

// Size returns the buffer's byte size.
func (b *Buffer) Size() uint64 { return b.size }

// NewDevice requests a high-performance GPU adapter and opens a
// logical device against it, returning an error if no adapter or
// device is available.
func NewDevice() (*Device, error) {
	instance := wgpu.CreateInstance(nil)
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("compute: request adapter: %w", err)
	}
	gpu, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("compute: request device: %w", err)
	}
	return &Device{
		instance:  instance,
		adapter:   adapter,
		gpu:       gpu,
		queue:     gpu.GetQueue(),
		pipelines: map[string]*Pipeline{},
		log:       slog.Default().With("pkg", "render/compute"),
	}, nil
}

// CompilePipeline compiles and caches a kernel's WGSL source under
// name, returning the cached pipeline on repeat calls. A kernel
// program's initialize step calls this once per kernel it owns.
func (d *Device) CompilePipeline(name, wgsl, entry string) (*Pipeline, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p, ok := d.pipelines[name]; ok {
		return p, nil
	}
	shader, err := d.gpu.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: wgsl},
	})
	if err != nil {
		d.log.Error("kernel build failed", "kernel", name, "err", err)
		return nil, fmt.Errorf("compute: build %s: %w", name, err)
	}
	pipe, err := d.gpu.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label:   name,
		Compute: wgpu.ProgrammableStageDescriptor{Module: shader, EntryPoint: entry},
	})
	if err != nil {
		shader.Release()
		d.log.Error("kernel link failed", "kernel", name, "err", err)
		return nil, fmt.Errorf("compute: link %s: %w", name, err)
	}
	p := &Pipeline{shader: shader, pipe: pipe, layout: pipe.GetBindGroupLayout(0)}
	d.pipelines[name] = p
	return p, nil
}

// NewBuffer allocates a GPU buffer of size bytes for the given usage.
func (d *Device) NewBuffer(label string, size uint64, usage wgpu.BufferUsage) (*Buffer, error) {
	buf, err := d.gpu.CreateBuffer(&wgpu.BufferDescriptor{Label: label, Size: size, Usage: usage})
	if err != nil {
		return nil, fmt.Errorf("compute: create buffer %s: %w", label, err)
	}
	return &Buffer{handle: buf, size: size}, nil
}

// Write uploads data into buf at offset.
func (d *Device) Write(buf *Buffer, offset uint64, data []byte) {
	d.queue.WriteBuffer(buf.handle, offset, data)
}

// Dispatch is one kernel invocation: a compiled pipeline, its bound
// buffers in @binding order, and the workgroup grid to launch.
type Dispatch struct {
	Pipeline *Pipeline
	Buffers  []*Buffer
	GroupsX  uint32
	GroupsY  uint32
	GroupsZ  uint32
}

// Execute runs one kernel dispatch to completion on the device queue.
// Runtime compute errors are returned rather than panicking so the
// caller can log and continue the frame with degraded output.
func (d *Device) Execute(disp Dispatch) error {
	if disp.GroupsY == 0 {
		disp.GroupsY = 1
	}
	if disp.GroupsZ == 0 {
		disp.GroupsZ = 1
	}
	entries := make([]wgpu.BindGroupEntry, len(disp.Buffers))
	for i, b := range disp.Buffers {
		entries[i] = wgpu.BindGroupEntry{Binding: uint32(i), Buffer: b.handle, Size: b.size}
	}
	bindGroup, err := d.gpu.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label: "kernel_bind_group", Layout: disp.Pipeline.layout, Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("compute: bind group: %w", err)
	}
	defer bindGroup.Release()

	encoder, err := d.gpu.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("compute: command encoder: %w", err)
	}
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(disp.Pipeline.pipe)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.DispatchWorkgroups(disp.GroupsX, disp.GroupsY, disp.GroupsZ)
	pass.End()
	pass.Release()

	commands, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("compute: encoder finish: %w", err)
	}
	defer commands.Release()
	d.queue.Submit(commands)
	return nil
}

// Finish blocks until every dispatch submitted so far has completed,
// the full-finish barrier the render pipeline issues at frame end
// before the GL flush and swap.
func (d *Device) Finish() {
	d.gpu.Poll(true, nil)
}

// Release frees every cached pipeline and the device itself.
func (d *Device) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, p := range d.pipelines {
		p.layout.Release()
		p.pipe.Release()
		p.shader.Release()
	}
	d.pipelines = nil
	d.queue.Release()
	d.gpu.Release()
	d.adapter.Release()
	d.instance.Release()
}

// Release frees the buffer's GPU memory.
func (b *Buffer) Release() { b.handle.Release() }
