// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// frame.go extends T (location + rotation) with a non-uniform
// per-axis Scale, combining them into the placement used throughout
// the engine for colliders, rigid bodies, and cameras.

// Frame is a location, rotation and non-uniform scale used to place a
// collider, a rigid body, or a camera in world space.
//
//	Frame.Loc   : location/position             - where we are.
//	Frame.Rot   : rotation/orientation           - which way we're facing.
//	Frame.Scale : per-axis scale, applied before rotation and translation.
type Frame struct {
	Loc   *V3
	Rot   *Q
	Scale *V3
}

// NewFrame returns a frame at the origin with no rotation and unit scale.
func NewFrame() *Frame {
	return &Frame{Loc: &V3{}, Rot: NewQI(), Scale: &V3{X: 1, Y: 1, Z: 1}}
}

// Set (=, copy, clone) assigns the location, rotation, and scale of
// frame a to the corresponding fields in frame f. The updated frame f
// is returned.
func (f *Frame) Set(a *Frame) *Frame {
	f.Loc.Set(a.Loc)
	f.Rot.Set(a.Rot)
	f.Scale.Set(a.Scale)
	return f
}

// Move increments the current position with respect to the current
// orientation, i.e. adds the distance travelled in the current
// direction to the current location.
func (f *Frame) Move(x, y, z float64) {
	dx, dy, dz := MultSQ(x, y, z, f.Rot)
	f.Loc.X += dx
	f.Loc.Y += dy
	f.Loc.Z += dz
}

// Spin rotates the current direction by the given number of degrees
// around each axis.
func (f *Frame) Spin(x, y, z float64) {
	if x != 0 {
		f.Rot.Mult(NewQ().SetAa(1, 0, 0, Rad(x)), f.Rot)
	}
	if y != 0 {
		f.Rot.Mult(NewQ().SetAa(0, 1, 0, Rad(y)), f.Rot)
	}
	if z != 0 {
		f.Rot.Mult(NewQ().SetAa(0, 0, 1, Rad(z)), f.Rot)
	}
}

// ToM4 composes f into a model matrix: scale, then rotate, then
// translate. The result is written into and returned as m.
func (f *Frame) ToM4(m *M4) *M4 {
	m.SetQ(f.Rot)
	m.ScaleMS(f.Scale.X, f.Scale.Y, f.Scale.Z)
	m.TranslateMT(f.Loc.X, f.Loc.Y, f.Loc.Z)
	return m
}

// AppT applies f as a rigid transform to local point (x, y, z),
// ignoring scale: rotate then translate into world space.
func (f *Frame) AppT(x, y, z float64) (wx, wy, wz float64) {
	rx, ry, rz := MultSQ(x, y, z, f.Rot)
	return rx + f.Loc.X, ry + f.Loc.Y, rz + f.Loc.Z
}
