// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// caster.go contains ray casting logic, separate from full collision
// tracking, often used to answer "what did the user click on?". Kept
// from gazed-vu/physics/caster.go: castRaySphere's derivation. New is
// castRayAABB and castRayHull, implementing the ray-box support the
// teacher's own FUTURE comment flagged as never finished.

import (
	"math"

	"github.com/duskforge/aether/math/lin"
)

// castFn is the ray casting algorithm for one Collider Kind. It takes
// the ray's world origin and unit direction plus the target's
// collider, and returns the nearest positive hit distance t, if any.
type castFn func(origin, dir *lin.V3, target *Collider) (hit bool, t float64)

var castTable [numKinds]castFn

func init() {
	castTable[Sphere] = castRaySphere
	castTable[AABB] = castRayAABB
	castTable[ConvexHull] = castRayHull
	// Ray-vs-Ray is geometrically meaningless (two infinitesimally thin
	// lines almost never share a point); left unset.
}

// Cast fires a ray from origin in direction dir (need not be unit
// length; it is normalized internally) against target, returning the
// world-space point of the nearest intersection.
func Cast(origin, dir *lin.V3, target *Collider) (hit bool, point lin.V3) {
	fn := castTable[target.Kind]
	if fn == nil {
		return false, lin.V3{}
	}
	unit := dir.Unit()
	ok, t := fn(origin, unit, target)
	if !ok {
		return false, lin.V3{}
	}
	return true, lin.V3{X: origin.X + unit.X*t, Y: origin.Y + unit.Y*t, Z: origin.Z + unit.Z*t}
}

// castRaySphere calculates the nearest point of collision between a
// ray and sphere b, unchanged in derivation from
// gazed-vu/physics/caster.go's castRaySphere.
func castRaySphere(origin, dir *lin.V3, b *Collider) (hit bool, t float64) {
	sc := lin.V3{X: b.WorldCenter.X - origin.X, Y: b.WorldCenter.Y - origin.Y, Z: b.WorldCenter.Z - origin.Z}
	d0 := dir.Dot(&sc)
	if d0 < 0 {
		return false, 0
	}
	radius2 := b.Radius * b.Radius
	d1 := sc.Dot(&sc) - d0*d0
	if d1 > radius2 {
		return false, 0
	}
	return true, d0 - math.Sqrt(radius2-d1)
}

// castRayAABB uses the slab method: intersect the ray with each pair
// of parallel planes bounding the box and track the tightest
// [tMin, tMax] interval that survives all three axes.
func castRayAABB(origin, dir *lin.V3, b *Collider) (hit bool, t float64) {
	tMin, tMax := -math.MaxFloat64, math.MaxFloat64
	axes := [3]struct{ o, d, lo, hi float64 }{
		{origin.X, dir.X, b.Bounds.Sx, b.Bounds.Lx},
		{origin.Y, dir.Y, b.Bounds.Sy, b.Bounds.Ly},
		{origin.Z, dir.Z, b.Bounds.Sz, b.Bounds.Lz},
	}
	for _, a := range axes {
		if math.Abs(a.d) < lin.Epsilon {
			if a.o < a.lo || a.o > a.hi {
				return false, 0
			}
			continue
		}
		inv := 1 / a.d
		t0, t1 := (a.lo-a.o)*inv, (a.hi-a.o)*inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin, tMax = math.Max(tMin, t0), math.Min(tMax, t1)
		if tMin > tMax {
			return false, 0
		}
	}
	if tMax < 0 {
		return false, 0
	}
	if tMin < 0 {
		return true, tMax
	}
	return true, tMin
}

// castRayHull intersects the ray against every face plane of the
// hull and keeps the entry/exit interval, the same slab-clipping
// technique as castRayAABB generalized from three axis-aligned planes
// to one arbitrary plane per face.
func castRayHull(origin, dir *lin.V3, h *Collider) (hit bool, t float64) {
	tMin, tMax := -math.MaxFloat64, math.MaxFloat64
	for i, face := range h.FaceVerts {
		if len(face) == 0 {
			continue
		}
		n := h.WorldNorms[i]
		v0 := h.WorldVerts[face[0]]
		toPlane := lin.V3{X: v0.X - origin.X, Y: v0.Y - origin.Y, Z: v0.Z - origin.Z}
		denom := dir.Dot(&n)
		dist := toPlane.Dot(&n)
		if math.Abs(denom) < lin.Epsilon {
			if dist < 0 {
				return false, 0 // origin outside this face's plane, ray parallel to it.
			}
			continue
		}
		tFace := dist / denom
		if denom < 0 {
			tMin = math.Max(tMin, tFace)
		} else {
			tMax = math.Min(tMax, tFace)
		}
		if tMin > tMax {
			return false, 0
		}
	}
	if tMax < 0 {
		return false, 0
	}
	if tMin < 0 {
		return true, tMax
	}
	return true, tMin
}
