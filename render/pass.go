// SPDX-FileCopyrightText : © 2022-2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

import "github.com/duskforge/aether/math/lin"

// pass.go

// PassID identifies a render.Pass.
// Lower number render passes are rendered before higher numbers.
type PassID uint8 // upto 256 passes should be sufficient.

const (
	PassGeometry PassID = iota // rasterised G-buffer geometry pass.
	PassRayTrace                // compute shadow/reflection/transmission pass.
)

// NewPass initializes a render pass.
// The returned Pass is expected to be reused in render loops.
func NewPass() Pass {
	return Pass{
		Uniforms: map[PassUniform][]byte{},
		Lights:   []Light{{}, {}, {}}, // max 3 lights
	}
}

// Pass contains a group of Packets for rendering in this render pass.
type Pass struct {

	// Packets are a reusable list of packets, one per model.
	Packets  Packets
	Uniforms map[PassUniform][]byte // Scene uniform data

	// Light position and color information.
	// Lights are reused to generate scene light uniform data.
	Lights []Light // max 3 scene lights.
}

// Light is one scene light's position/direction and colour, packed
// into the pass's LIGHTS uniform each frame. Kind distinguishes
// directional from point lights for the ray trace kernel's
// attenuation model.
type Light struct {
	Kind    LightKind
	X, Y, Z float32 // position (point) or direction (directional).
	R, G, B float32 // colour.
	Kc, Kl, Kq float32 // point light attenuation coefficients.
}

func (l *Light) reset() { *l = Light{} }

// LightKind distinguishes a directional (parallel-ray) light from a
// point (radial, attenuated) light.
type LightKind uint8

const (
	DirectionalLightKind LightKind = iota
	PointLightKind
)

// SetCamera encodes the frame's projection and view matrices and the
// camera's world position into the PROJ/VIEW/CAM uniform slots.
func (rp *Pass) SetCamera(proj, view *lin.M4, eye lin.V3) {
	rp.Uniforms[PROJ] = (&m4{}).tom4(proj).bytes()
	rp.Uniforms[VIEW] = (&m4{}).tom4(view).bytes()
	rp.Uniforms[CAM] = (&v3{}).set(&eye).bytes()
}

// SetLights packs the pass's active lights into the LIGHTS uniform and
// records the active count in NLIGHTS. Each light is encoded as
// kind, position-or-direction, colour, attenuation coefficients, 40
// bytes a light. This layout differs from ShadowKernel's light buffers,
// which carry no kind field.
func (rp *Pass) SetLights() {
	const stride = 4 + 12 + 12 + 12 // kind + xyz + rgb + kc,kl,kq
	buf := make([]byte, len(rp.Lights)*stride)
	n := 0
	for i, l := range rp.Lights {
		off := i * stride
		putF32(buf, off, float32(l.Kind))
		putF32(buf, off+4, l.X)
		putF32(buf, off+8, l.Y)
		putF32(buf, off+12, l.Z)
		putF32(buf, off+16, l.R)
		putF32(buf, off+20, l.G)
		putF32(buf, off+24, l.B)
		putF32(buf, off+28, l.Kc)
		putF32(buf, off+32, l.Kl)
		putF32(buf, off+36, l.Kq)
		if l != (Light{}) {
			n++
		}
	}
	rp.Uniforms[LIGHTS] = buf
	countBuf := make([]byte, 4)
	putF32(countBuf, 0, float32(n))
	rp.Uniforms[NLIGHTS] = countBuf
}

// Reset the pass data.
func (rp *Pass) Reset() {
	for i := PassUniform(0); i < PassUniforms; i++ {
		d, ok := rp.Uniforms[i]
		if !ok {
			rp.Uniforms[i] = []byte{}
		} else {
			rp.Uniforms[i] = d[:0] // reset keeping memory
		}
	}
	for i := range rp.Lights {
		rp.Lights[i].reset()
	}
	rp.Packets = rp.Packets[:0] // reset packets, keeping allocated memory
}
