// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// Multivector implements a 3D geometric algebra multivector restricted to
// the eight basis blades of Cl(3,0): 1, e1, e2, e3, e23, e31, e12, e123.
// Rotor is the even-graded (scalar + bivector) subset used to represent
// orientation, the geometric-algebra equivalent of a unit quaternion. See
// Math/Multivector.c in the original engine this was ported from for the
// general N-dimensional geometric product this specializes.

import "math"

// MV is a full eight component multivector.
//
//	S              scalar               (grade 0)
//	E1, E2, E3     vector               (grade 1)
//	E23, E31, E12  bivector             (grade 2)
//	E123           trivector/pseudoscalar (grade 3)
type MV struct {
	S              float64
	E1, E2, E3     float64
	E23, E31, E12  float64
	E123           float64
}

// Rotor is the even subalgebra of MV: a scalar plus a bivector. Unit
// rotors double-cover SO(3) exactly as unit quaternions do, and rotate
// a vector v by sandwiching: v' = R~ v R (see Rotate).
type Rotor struct {
	S             float64
	E23, E31, E12 float64
}

// RI is the identity rotor (no rotation).
var RI = &Rotor{S: 1}

// NewRotor returns a new identity rotor.
func NewRotor() *Rotor { return &Rotor{S: 1} }

// SetAa sets rotor r to the rotation of angle radians around the given
// axis (ax, ay, az), mirroring Q.SetAa. Axis is normalized internally; a
// zero length axis leaves r as the identity.
func (r *Rotor) SetAa(ax, ay, az, angle float64) *Rotor {
	lenSqr := ax*ax + ay*ay + az*az
	if lenSqr == 0 {
		r.S, r.E23, r.E31, r.E12 = 1, 0, 0, 0
		return r
	}
	s := math.Sin(angle*0.5) / math.Sqrt(lenSqr)
	// the bivector dual to axis (ax,ay,az) is ax*e23 + ay*e31 + az*e12.
	r.S = math.Cos(angle * 0.5)
	r.E23, r.E31, r.E12 = ax*s, ay*s, az*s
	return r
}

// SetQ sets rotor r from quaternion q. The quaternion vector part
// (x, y, z) maps onto the bivector dual (e23, e31, e12); q and -q
// represent the same rotation, as do r and -r.
func (r *Rotor) SetQ(q *Q) *Rotor {
	r.S, r.E23, r.E31, r.E12 = q.W, q.X, q.Y, q.Z
	return r
}

// Q converts rotor r back to a quaternion.
func (r *Rotor) Q() *Q { return &Q{X: r.E23, Y: r.E31, Z: r.E12, W: r.S} }

// Set (=) copies rotor s into r and returns r.
func (r *Rotor) Set(s *Rotor) *Rotor {
	r.S, r.E23, r.E31, r.E12 = s.S, s.E23, s.E31, s.E12
	return r
}

// Len returns the magnitude of rotor r.
func (r *Rotor) Len() float64 {
	return math.Sqrt(r.S*r.S + r.E23*r.E23 + r.E31*r.E31 + r.E12*r.E12)
}

// Unit normalizes r to unit length in place and returns r.
func (r *Rotor) Unit() *Rotor {
	l := r.Len()
	if l != 0 {
		inv := 1 / l
		r.S, r.E23, r.E31, r.E12 = r.S*inv, r.E23*inv, r.E31*inv, r.E12*inv
	}
	return r
}

// Reverse sets r to the reverse (conjugate) of rotor s: the bivector part
// is negated. For a unit rotor the reverse is also the inverse.
func (r *Rotor) Reverse(s *Rotor) *Rotor {
	r.S, r.E23, r.E31, r.E12 = s.S, -s.E23, -s.E31, -s.E12
	return r
}

// Mult sets r to the geometric product a*b of rotors a and b, composing
// the two rotations (Rotate applies a first, then b). Safe to call as
// r.Mult(r, b).
func (r *Rotor) Mult(a, b *Rotor) *Rotor {
	// even*even product restricted to the scalar+bivector subalgebra,
	// using e23*e23=e31*e31=e12*e12=-1 and e23*e31=-e12 (cyclic).
	s := a.S*b.S - a.E23*b.E23 - a.E31*b.E31 - a.E12*b.E12
	e23 := a.S*b.E23 + a.E23*b.S - a.E31*b.E12 + a.E12*b.E31
	e31 := a.S*b.E31 + a.E23*b.E12 + a.E31*b.S - a.E12*b.E23
	e12 := a.S*b.E12 - a.E23*b.E31 + a.E31*b.E23 + a.E12*b.S
	r.S, r.E23, r.E31, r.E12 = s, e23, e31, e12
	return r
}

// Rotate sets out to the rotation of vector v by rotor r: out = r~ v r,
// which matches Q.MultQ on the quaternion r.Q(). out may alias v.
func (r *Rotor) Rotate(out, v *V3) *V3 {
	// expand the sandwich product directly in terms of the bivector
	// components of r~ rather than building intermediate multivectors.
	s, b23, b31, b12 := r.S, -r.E23, -r.E31, -r.E12

	// t = r~ * v  (scalar*vector + bivector*vector -> vector + trivector)
	tx := s*v.X + b12*v.Y - b31*v.Z
	ty := s*v.Y + b23*v.Z - b12*v.X
	tz := s*v.Z + b31*v.X - b23*v.Y
	t0 := b23*v.X + b31*v.Y + b12*v.Z // trivector (e123) component

	// out = t * r  (vector/trivector * rotor -> vector)
	x := tx*s + t0*b23 + ty*b12 - tz*b31
	y := ty*s + t0*b31 + tz*b23 - tx*b12
	z := tz*s + t0*b12 + tx*b31 - ty*b23
	out.X, out.Y, out.Z = x, y, z
	return out
}

// ToM3 writes the 3x3 rotation matrix equivalent of rotor r into m.
func (r *Rotor) ToM3(m *M3) *M3 { return m.SetQ(r.Q()) }

// Geometric product of two full multivectors, following the same
// basis-blade table the original float[8] implementation builds at
// runtime, specialized here to a fixed dimension of 3 so it can be
// written out term by term instead of walked generically.
func (m *MV) Mult(a, b *MV) *MV {
	m.S = a.S*b.S + a.E1*b.E1 + a.E2*b.E2 + a.E3*b.E3 -
		a.E23*b.E23 - a.E31*b.E31 - a.E12*b.E12 - a.E123*b.E123

	m.E1 = a.S*b.E1 + a.E1*b.S - a.E2*b.E12 + a.E3*b.E31 -
		a.E23*b.E123 - a.E31*b.E3 + a.E12*b.E2 - a.E123*b.E23
	m.E2 = a.S*b.E2 + a.E1*b.E12 + a.E2*b.S - a.E3*b.E23 +
		a.E23*b.E3 - a.E31*b.E123 - a.E12*b.E1 - a.E123*b.E31
	m.E3 = a.S*b.E3 - a.E1*b.E31 + a.E2*b.E23 + a.E3*b.S -
		a.E23*b.E2 + a.E31*b.E1 - a.E12*b.E123 - a.E123*b.E12

	m.E23 = a.S*b.E23 + a.E1*b.E123 + a.E23*b.S + a.E2*b.E3 - a.E3*b.E2 -
		a.E31*b.E12 + a.E12*b.E31 + a.E123*b.E1
	m.E31 = a.S*b.E31 + a.E2*b.E123 + a.E31*b.S + a.E3*b.E1 - a.E1*b.E3 -
		a.E12*b.E23 + a.E23*b.E12 + a.E123*b.E2
	m.E12 = a.S*b.E12 + a.E3*b.E123 + a.E12*b.S + a.E1*b.E2 - a.E2*b.E1 -
		a.E23*b.E31 + a.E31*b.E23 + a.E123*b.E3

	m.E123 = a.S*b.E123 + a.E123*b.S + a.E1*b.E23 + a.E23*b.E1 +
		a.E2*b.E31 + a.E31*b.E2 + a.E3*b.E12 + a.E12*b.E3
	return m
}

// FromVector sets m to the grade-1 multivector embedding of v.
func (m *MV) FromVector(v *V3) *MV {
	m.S, m.E1, m.E2, m.E3, m.E23, m.E31, m.E12, m.E123 = 0, v.X, v.Y, v.Z, 0, 0, 0, 0
	return m
}
