// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package render

import (
	"github.com/duskforge/aether/math/lin"
)

// lin hides the fact that the current underlying graphics implementation
// deals in float32 rather than float64 used by Go and vu/math/lin.
// These are kept package local because it is expected that GPU's will
// transition from 32 to 64 bit and then these 32 bit structures and
// conversions can disappear.
//
// These are data holders only. Please keep all math operations
// restricted to vu/math/lin.
//
// The teacher's m3 (normal matrix) and m34 (packed bone transform) are
// dropped here: normal shading runs in the ray trace kernels against
// the G-buffer's world-space normal attachment rather than a per-model
// normal matrix, and this engine has no skeletal animation to pack
// bone transforms for. m4 and v3 gain a bytes() encoder alongside
// their original tom4/Pointer conversions since uniform data now
// travels to the GPU as an explicit byte slice (compute.Device.Write)
// rather than a raw pointer into a cgo call.

// m4 is a 4x4 float32 matrix that is populated from the more precise
// math/lin float64 representation.
type m4 struct {
	xx, xy, xz, xw float32 // indices 0, 1, 2, 3  [00, 01, 02, 03] X-Axis
	yx, yy, yz, yw float32 // indices 4, 5, 6, 7  [10, 11, 12, 13] Y-Axis
	zx, zy, zz, zw float32 // indices 8, 9, a, b  [20, 21, 22, 23] Z-Axis
	wx, wy, wz, ww float32 // indices c, d, e, f  [30, 31, 32, 33]
}

// Mvp makes m4 compatible for the Mvp interface.
func (m *m4) Set(mm *lin.M4) Mvp { return m.tom4(mm) }

// Pointer is used to access the matrix data as an array of floats.
// Used to pass the matrix to native graphic layer.
func (m *m4) Pointer() *float32 { return &(m.xx) }

// tom4 turns a math/lin matrix into a matrix that can be used
// by the render system. The input math matrix, mm, is used to fill the values
// in the given render matrix rm.  The updated rm matrix is returned.
func (m *m4) tom4(mm *lin.M4) *m4 {
	m.xx, m.xy, m.xz, m.xw = float32(mm.Xx), float32(mm.Xy), float32(mm.Xz), float32(mm.Xw)
	m.yx, m.yy, m.yz, m.yw = float32(mm.Yx), float32(mm.Yy), float32(mm.Yz), float32(mm.Yw)
	m.zx, m.zy, m.zz, m.zw = float32(mm.Zx), float32(mm.Zy), float32(mm.Zz), float32(mm.Zw)
	m.wx, m.wy, m.wz, m.ww = float32(mm.Wx), float32(mm.Wy), float32(mm.Wz), float32(mm.Ww)
	return m
}

// bytes encodes m as 16 tightly packed little-endian float32s, row
// by row, the layout a Pass/Packet uniform slot expects.
func (m *m4) bytes() []byte {
	buf := make([]byte, 64)
	rows := [16]float32{
		m.xx, m.xy, m.xz, m.xw,
		m.yx, m.yy, m.yz, m.yw,
		m.zx, m.zy, m.zz, m.zw,
		m.wx, m.wy, m.wz, m.ww,
	}
	for i, v := range rows {
		putF32(buf, i*4, v)
	}
	return buf
}

// =============================================================================

// v3 is a float32 based vector that is populated from the more precise
// math/physics float64 representation.
type v3 struct {
	x, y, z float32
}

// set fills v from the more precise math/lin vector.
func (v *v3) set(vv *lin.V3) *v3 {
	v.x, v.y, v.z = float32(vv.X), float32(vv.Y), float32(vv.Z)
	return v
}

// bytes encodes v as a tightly packed little-endian float32 triple.
func (v *v3) bytes() []byte {
	buf := make([]byte, 12)
	putF32(buf, 0, v.x)
	putF32(buf, 4, v.y)
	putF32(buf, 8, v.z)
	return buf
}

// =============================================================================

// Mvp exposes the render matrix representation. This is needed by
// applications using the vu/render system, but not the vu engine.
type Mvp interface {
	Set(tm *lin.M4) Mvp // Converts the transform matrix tm to internal data.
	Pointer() *float32  // A pointer to the internal transform data.
}

// NewMvp creates a new internal render transform matrix.
// This is needed by applications using the vu/render system,
// but not the vu engine.
func NewMvp() Mvp { return &m4{} }
