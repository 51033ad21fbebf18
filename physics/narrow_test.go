// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/duskforge/aether/math/lin"
)

func sphereBodyAt(id ObjectID, radius float64, x, y, z float64) *RigidBody {
	f := lin.NewFrame()
	f.Loc.SetS(x, y, z)
	b := NewRigidBody(id, NewSphere(radius), f, 1)
	b.Collider.Update(f)
	return b
}

func TestSphereSphereOverlap(t *testing.T) {
	a := sphereBodyAt(1, 1, 0, 0, 0)
	b := sphereBodyAt(2, 1, 1.5, 0, 0)
	out := Narrow(a, b, nil)
	if len(out) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(out))
	}
	if !lin.Aeq(out[0].Depth, 0.5) {
		t.Errorf("expected depth 0.5, got %f", out[0].Depth)
	}
	want := lin.V3{X: 1, Y: 0, Z: 0}
	if !out[0].Normal.Aeq(&want) {
		t.Errorf("expected normal %+v, got %+v", want, out[0].Normal)
	}
}

func TestSphereSphereNoOverlap(t *testing.T) {
	a := sphereBodyAt(1, 1, 0, 0, 0)
	b := sphereBodyAt(2, 1, 5, 0, 0)
	out := Narrow(a, b, nil)
	if len(out) != 0 {
		t.Fatalf("expected no contact, got %d", len(out))
	}
}

func boxBodyAt(id ObjectID, hx, hy, hz, x, y, z float64) *RigidBody {
	f := lin.NewFrame()
	f.Loc.SetS(x, y, z)
	b := NewRigidBody(id, NewAABB(hx, hy, hz), f, 1)
	b.Collider.Update(f)
	return b
}

func TestAabbAabbOverlap(t *testing.T) {
	a := boxBodyAt(1, 1, 1, 1, 0, 0, 0)
	b := boxBodyAt(2, 1, 1, 1, 1.5, 0, 0)
	out := Narrow(a, b, nil)
	if len(out) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(out))
	}
	if !lin.Aeq(out[0].Depth, 0.5) {
		t.Errorf("expected depth 0.5, got %f", out[0].Depth)
	}
}

func TestAabbSphereOverlap(t *testing.T) {
	box := boxBodyAt(1, 1, 1, 1, 0, 0, 0)
	sph := sphereBodyAt(2, 0.5, 1.2, 0, 0)
	out := Narrow(box, sph, nil)
	if len(out) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(out))
	}
	// aabbSphere's normal points from the box (A) towards the sphere (B).
	if out[0].Normal.X <= 0 {
		t.Errorf("expected normal pointing towards +X, got %+v", out[0].Normal)
	}
}

func cubeHullBodyAt(id ObjectID, h float64, x, y, z float64) *RigidBody {
	verts := []lin.V3{
		{X: -h, Y: -h, Z: -h}, {X: h, Y: -h, Z: -h}, {X: h, Y: h, Z: -h}, {X: -h, Y: h, Z: -h},
		{X: -h, Y: -h, Z: h}, {X: h, Y: -h, Z: h}, {X: h, Y: h, Z: h}, {X: -h, Y: h, Z: h},
	}
	faces := [][]int{
		{0, 3, 2, 1}, {4, 5, 6, 7}, {0, 1, 5, 4},
		{2, 3, 7, 6}, {1, 2, 6, 5}, {0, 4, 7, 3},
	}
	normals := []lin.V3{
		{Z: -1}, {Z: 1}, {Y: -1}, {Y: 1}, {X: 1}, {X: -1},
	}
	f := lin.NewFrame()
	f.Loc.SetS(x, y, z)
	b := NewRigidBody(id, NewConvexHull(verts, faces, normals), f, 1)
	b.Collider.Update(f)
	return b
}

func TestHullHullOverlap(t *testing.T) {
	a := cubeHullBodyAt(1, 1, 0, 0, 0)
	b := cubeHullBodyAt(2, 1, 1.5, 0, 0)
	out := Narrow(a, b, nil)
	if len(out) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(out))
	}
	if out[0].Depth <= 0 {
		t.Errorf("expected positive penetration depth, got %f", out[0].Depth)
	}
}

func TestHullHullNoOverlap(t *testing.T) {
	a := cubeHullBodyAt(1, 1, 0, 0, 0)
	b := cubeHullBodyAt(2, 1, 5, 0, 0)
	out := Narrow(a, b, nil)
	if len(out) != 0 {
		t.Fatalf("expected no contact, got %d", len(out))
	}
}
