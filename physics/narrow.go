// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// narrow.go is the narrow-phase collision detector: a 16-entry
// pairwise dispatch table over the four Collider Kinds, in the shape
// of gazed-vu/physics/collision.go's own Kind x Kind dispatch table,
// rebuilt around the Separating Axis Theorem instead of the deleted
// cgo box-box routine. Each test follows spec's variant-dependent
// contact-point determination: the point on a body is a function of
// that body's own collider kind, not the pair.

import (
	"math"

	"github.com/duskforge/aether/math/lin"
)

// narrowFn reports whether a and b (already Update-d to world space)
// are in contact, appending contact points to out.
type narrowFn func(a, b *RigidBody, out []Contact) []Contact

var narrowTable [numKinds][numKinds]narrowFn

func init() {
	narrowTable[Sphere][Sphere] = sphereSphere
	narrowTable[Sphere][AABB] = swapFn(aabbSphere)
	narrowTable[AABB][Sphere] = aabbSphere
	narrowTable[Sphere][ConvexHull] = swapFn(hullSphere)
	narrowTable[ConvexHull][Sphere] = hullSphere
	narrowTable[AABB][AABB] = aabbAabb
	narrowTable[AABB][ConvexHull] = swapFn(hullAabb)
	narrowTable[ConvexHull][AABB] = hullAabb
	narrowTable[ConvexHull][ConvexHull] = hullHull
	// Ray never produces a resting Contact: ray-vs-anything is handled
	// by caster.go's Cast, not the resolver's narrow phase.
}

func swapFn(fn narrowFn) narrowFn {
	return func(a, b *RigidBody, out []Contact) []Contact {
		before := len(out)
		out = fn(b, a, out)
		for i := before; i < len(out); i++ {
			out[i].Normal.X, out[i].Normal.Y, out[i].Normal.Z = -out[i].Normal.X, -out[i].Normal.Y, -out[i].Normal.Z
			out[i].PointA, out[i].PointB = out[i].PointB, out[i].PointA
		}
		return out
	}
}

// Narrow tests the ordered pair (a, b) for contact, dispatching on
// collider kind the way collision.go's table does, and appends any
// contact points found to out.
func Narrow(a, b *RigidBody, out []Contact) []Contact {
	fn := narrowTable[a.Collider.Kind][b.Collider.Kind]
	if fn == nil {
		return out
	}
	return fn(a, b, out)
}

func sphereSphere(a, b *RigidBody, out []Contact) []Contact {
	ca, cb := a.Collider, b.Collider
	d := lin.V3{X: cb.WorldCenter.X - ca.WorldCenter.X, Y: cb.WorldCenter.Y - ca.WorldCenter.Y, Z: cb.WorldCenter.Z - ca.WorldCenter.Z}
	dist := d.Len()
	radiiSum := ca.Radius + cb.Radius
	if dist >= radiiSum {
		return out
	}
	var n lin.V3
	if dist > lin.Epsilon {
		n = lin.V3{X: d.X / dist, Y: d.Y / dist, Z: d.Z / dist}
	} else {
		n = lin.V3{X: 0, Y: 1, Z: 0}
	}
	// sphere contact point: centre + radius * MTV-toward-other-body.
	pointA := lin.V3{X: ca.WorldCenter.X + n.X*ca.Radius, Y: ca.WorldCenter.Y + n.Y*ca.Radius, Z: ca.WorldCenter.Z + n.Z*ca.Radius}
	pointB := lin.V3{X: cb.WorldCenter.X - n.X*cb.Radius, Y: cb.WorldCenter.Y - n.Y*cb.Radius, Z: cb.WorldCenter.Z - n.Z*cb.Radius}
	return append(out, Contact{PointA: pointA, PointB: pointB, Normal: n, Depth: radiiSum - dist})
}

func aabbAabb(a, b *RigidBody, out []Contact) []Contact {
	ba, bb := &a.Collider.Bounds, &b.Collider.Bounds
	if !ba.Overlaps(bb) {
		return out
	}
	// penetration along each world axis; resolve along the axis of
	// least penetration, matching the face-normal phase of SAT.
	overlaps := [3]float64{
		math.Min(ba.Lx, bb.Lx) - math.Max(ba.Sx, bb.Sx),
		math.Min(ba.Ly, bb.Ly) - math.Max(ba.Sy, bb.Sy),
		math.Min(ba.Lz, bb.Lz) - math.Max(ba.Sz, bb.Sz),
	}
	axis, depth := 0, overlaps[0]
	for i := 1; i < 3; i++ {
		if overlaps[i] < depth {
			axis, depth = i, overlaps[i]
		}
	}
	if depth <= 0 {
		return out
	}
	ca, cb := a.Collider.WorldCenter, b.Collider.WorldCenter
	var n lin.V3
	switch axis {
	case 0:
		n.X = sign(cb.X - ca.X)
	case 1:
		n.Y = sign(cb.Y - ca.Y)
	case 2:
		n.Z = sign(cb.Z - ca.Z)
	}
	// AABB contact point is always the box's own centre of mass,
	// regardless of the other body's shape: this zeroes the torque term
	// and prevents box rotation from resting contacts, a deliberate
	// design trade to avoid pathological spin-up from discrete-step
	// corner contacts.
	return append(out, Contact{PointA: ca, PointB: cb, Normal: n, Depth: depth})
}

func aabbSphere(a, b *RigidBody, out []Contact) []Contact {
	box, sph := a.Collider, b.Collider
	closest := lin.V3{
		X: clampf(sph.WorldCenter.X, box.Bounds.Sx, box.Bounds.Lx),
		Y: clampf(sph.WorldCenter.Y, box.Bounds.Sy, box.Bounds.Ly),
		Z: clampf(sph.WorldCenter.Z, box.Bounds.Sz, box.Bounds.Lz),
	}
	d := lin.V3{X: sph.WorldCenter.X - closest.X, Y: sph.WorldCenter.Y - closest.Y, Z: sph.WorldCenter.Z - closest.Z}
	dist := d.Len()
	if dist >= sph.Radius {
		return out
	}
	var n lin.V3
	if dist > lin.Epsilon {
		n = lin.V3{X: d.X / dist, Y: d.Y / dist, Z: d.Z / dist}
	} else {
		n = lin.V3{X: 0, Y: 1, Z: 0}
	}
	pointA := box.WorldCenter // AABB's own centre-of-mass rule.
	pointB := lin.V3{X: sph.WorldCenter.X - n.X*sph.Radius, Y: sph.WorldCenter.Y - n.Y*sph.Radius, Z: sph.WorldCenter.Z - n.Z*sph.Radius}
	return append(out, Contact{PointA: pointA, PointB: pointB, Normal: n, Depth: sph.Radius - dist})
}

// hullSphere finds, per face, the closest point to the sphere centre:
// the perpendicular foot of the centre onto the face plane when that
// foot lies inside the face polygon, otherwise the closest point on
// whichever edge the foot falls outside of. The globally closest of
// these, across every face, is the hull's contact point.
func hullSphere(a, b *RigidBody, out []Contact) []Contact {
	hull, sph := a.Collider, b.Collider
	best := math.MaxFloat64
	var bestPoint lin.V3
	found := false
	for i, face := range hull.FaceVerts {
		if len(face) == 0 {
			continue
		}
		n := hull.WorldNorms[i]
		pt := closestPointOnFace(hull.WorldVerts, face, &n, &sph.WorldCenter)
		d := pt.Dist(&sph.WorldCenter)
		if d < best {
			best, bestPoint, found = d, pt, true
		}
	}
	if !found || best >= sph.Radius {
		return out
	}
	var normal lin.V3
	if best > lin.Epsilon {
		diff := lin.V3{X: sph.WorldCenter.X - bestPoint.X, Y: sph.WorldCenter.Y - bestPoint.Y, Z: sph.WorldCenter.Z - bestPoint.Z}
		normal = lin.V3{X: diff.X / best, Y: diff.Y / best, Z: diff.Z / best}
	} else {
		normal = hull.WorldNorms[0]
	}
	pointB := lin.V3{X: sph.WorldCenter.X - normal.X*sph.Radius, Y: sph.WorldCenter.Y - normal.Y*sph.Radius, Z: sph.WorldCenter.Z - normal.Z*sph.Radius}
	return append(out, Contact{PointA: bestPoint, PointB: pointB, Normal: normal, Depth: sph.Radius - best})
}

// closestPointOnFace projects p onto the face's plane (the
// perpendicular foot); if the foot lies inside the face polygon it is
// the closest point, otherwise the closest point lies on whichever
// edge the foot is outside of, clamped to that edge's segment.
// "Inside" is tested the standard convex-polygon way: the foot is
// inside iff it is on the polygon-interior side of every edge, judged
// by the sign of (edge × toFoot)·faceNormal.
func closestPointOnFace(verts []lin.V3, face []int, n *lin.V3, p *lin.V3) lin.V3 {
	v0 := verts[face[0]]
	toP := lin.V3{X: p.X - v0.X, Y: p.Y - v0.Y, Z: p.Z - v0.Z}
	d := n.Dot(&toP)
	foot := lin.V3{X: p.X - n.X*d, Y: p.Y - n.Y*d, Z: p.Z - n.Z*d}

	inside := true
	var clamped lin.V3
	bestEdgeDist := math.MaxFloat64
	for i := range face {
		va := verts[face[i]]
		vb := verts[face[(i+1)%len(face)]]
		edge := lin.V3{X: vb.X - va.X, Y: vb.Y - va.Y, Z: vb.Z - va.Z}
		toFoot := lin.V3{X: foot.X - va.X, Y: foot.Y - va.Y, Z: foot.Z - va.Z}
		var cr lin.V3
		cr.Cross(&edge, &toFoot)
		if cr.Dot(n) < 0 {
			inside = false
			cp := closestPointOnSegment(va, vb, foot)
			dist := cp.DistSqr(&foot)
			if dist < bestEdgeDist {
				bestEdgeDist, clamped = dist, cp
			}
		}
	}
	if inside {
		return foot
	}
	return clamped
}

func closestPointOnSegment(a, b, p lin.V3) lin.V3 {
	ab := lin.V3{X: b.X - a.X, Y: b.Y - a.Y, Z: b.Z - a.Z}
	t := 0.0
	lenSqr := ab.Dot(&ab)
	if lenSqr > lin.Epsilon {
		ap := lin.V3{X: p.X - a.X, Y: p.Y - a.Y, Z: p.Z - a.Z}
		t = clampf(ap.Dot(&ab)/lenSqr, 0, 1)
	}
	return lin.V3{X: a.X + ab.X*t, Y: a.Y + ab.Y*t, Z: a.Z + ab.Z*t}
}

// hullAabb synthesizes the AABB as a canonical 8-vertex/6-face hull so
// the pair runs through the same full SAT test as hull-vs-hull, then
// overrides the AABB side's contact point to its own centre of mass,
// per spec's AABB contact-point rule (which holds regardless of the
// partner's shape).
func hullAabb(a, b *RigidBody, out []Contact) []Contact {
	synthetic := &RigidBody{Collider: aabbAsHull(b.Collider), Movable: b.Movable}
	before := len(out)
	out = hullHull(a, synthetic, out)
	for i := before; i < len(out); i++ {
		out[i].PointB = b.Collider.WorldCenter
	}
	return out
}

// aabbAsHull builds a read-only ConvexHull view of c's current
// world-space AABB: eight corners, six faces, axis-aligned normals.
// Winding and normal order mirror the cube fixture narrow_test.go
// builds for its hull-hull tests.
func aabbAsHull(c *Collider) *Collider {
	b := c.Bounds
	verts := []lin.V3{
		{X: b.Sx, Y: b.Sy, Z: b.Sz}, {X: b.Lx, Y: b.Sy, Z: b.Sz},
		{X: b.Lx, Y: b.Ly, Z: b.Sz}, {X: b.Sx, Y: b.Ly, Z: b.Sz},
		{X: b.Sx, Y: b.Sy, Z: b.Lz}, {X: b.Lx, Y: b.Sy, Z: b.Lz},
		{X: b.Lx, Y: b.Ly, Z: b.Lz}, {X: b.Sx, Y: b.Ly, Z: b.Lz},
	}
	faces := [][]int{
		{0, 3, 2, 1}, {4, 5, 6, 7}, {0, 1, 5, 4},
		{2, 3, 7, 6}, {1, 2, 6, 5}, {0, 4, 7, 3},
	}
	norms := []lin.V3{
		{Z: -1}, {Z: 1}, {Y: -1}, {Y: 1}, {X: 1}, {X: -1},
	}
	return &Collider{Kind: ConvexHull, WorldCenter: c.WorldCenter, WorldVerts: verts, FaceVerts: faces, WorldNorms: norms, Bounds: b}
}

// hullHull runs the Separating Axis Theorem over each hull's face
// normals plus the cross products of their edges, per spec's SAT
// requirement. On overlap on every tested axis, the axis of least
// penetration yields the contact normal; each side's contact point is
// the support vertex (or, for a tied edge/face support set, its
// centroid) that maximises the dot product with the outward MTV,
// mirroring the face-normal-then-edge-cross structure of gazed-vu's
// original (deleted) collision.go dispatch, without its cgo backend.
func hullHull(a, b *RigidBody, out []Contact) []Contact {
	ha, hb := a.Collider, b.Collider
	minDepth := math.MaxFloat64
	var minAxis lin.V3
	test := func(axis lin.V3) bool {
		l := axis.Len()
		if l < lin.Epsilon {
			return true
		}
		axis = lin.V3{X: axis.X / l, Y: axis.Y / l, Z: axis.Z / l}
		aMin, aMax := projectHull(ha, &axis)
		bMin, bMax := projectHull(hb, &axis)
		if aMax < bMin || bMax < aMin {
			return false
		}
		depth := math.Min(aMax, bMax) - math.Max(aMin, bMin)
		if depth < minDepth {
			minDepth = depth
			minAxis = axis
		}
		return true
	}
	for _, n := range ha.WorldNorms {
		if !test(n) {
			return out
		}
	}
	for _, n := range hb.WorldNorms {
		if !test(n) {
			return out
		}
	}
	for _, ea := range hullEdges(ha) {
		for _, eb := range hullEdges(hb) {
			var axis lin.V3
			axis.Cross(&ea, &eb)
			if !test(axis) {
				return out
			}
		}
	}
	if minDepth == math.MaxFloat64 {
		return out
	}
	ca, cb := ha.WorldCenter, hb.WorldCenter
	if minAxis.Dot(&lin.V3{X: cb.X - ca.X, Y: cb.Y - ca.Y, Z: cb.Z - ca.Z}) < 0 {
		minAxis.X, minAxis.Y, minAxis.Z = -minAxis.X, -minAxis.Y, -minAxis.Z
	}
	outward := lin.V3{X: -minAxis.X, Y: -minAxis.Y, Z: -minAxis.Z}
	pointA := hullSupport(ha.WorldVerts, &minAxis)
	pointB := hullSupport(hb.WorldVerts, &outward)
	return append(out, Contact{PointA: pointA, PointB: pointB, Normal: minAxis, Depth: minDepth})
}

// hullSupport returns the vertex, or the centroid of the tied vertex
// subset, that maximises the dot product with dir: the exact contact
// point for a vertex-vertex hit, and a centroid approximation of
// spec's parametric edge-edge solve / face-plane projection for a
// tied edge or face support set.
func hullSupport(verts []lin.V3, dir *lin.V3) lin.V3 {
	const tolerance = 1e-6
	best := -math.MaxFloat64
	var sum lin.V3
	n := 0
	for _, v := range verts {
		d := dir.Dot(&v)
		switch {
		case d > best+tolerance:
			best, sum, n = d, v, 1
		case d > best-tolerance:
			sum.X, sum.Y, sum.Z = sum.X+v.X, sum.Y+v.Y, sum.Z+v.Z
			n++
		}
	}
	if n == 0 {
		return lin.V3{}
	}
	return lin.V3{X: sum.X / float64(n), Y: sum.Y / float64(n), Z: sum.Z / float64(n)}
}

func projectHull(c *Collider, axis *lin.V3) (min, max float64) {
	min, max = math.MaxFloat64, -math.MaxFloat64
	for _, v := range c.WorldVerts {
		d := axis.Dot(&v)
		min, max = math.Min(min, d), math.Max(max, d)
	}
	return min, max
}

// hullEdges returns one direction vector per edge of the hull's
// faces, used as candidate cross-product axes in the SAT edge phase.
func hullEdges(c *Collider) []lin.V3 {
	edges := make([]lin.V3, 0, len(c.FaceVerts)*2)
	for _, face := range c.FaceVerts {
		for i := range face {
			v0 := c.WorldVerts[face[i]]
			v1 := c.WorldVerts[face[(i+1)%len(face)]]
			edges = append(edges, lin.V3{X: v1.X - v0.X, Y: v1.Y - v0.Y, Z: v1.Z - v0.Z})
		}
	}
	return edges
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
