// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/duskforge/aether/math/lin"
)

func TestSphereUpdateBounds(t *testing.T) {
	c := NewSphere(2)
	f := lin.NewFrame()
	f.Loc.SetS(1, 2, 3)
	c.Update(f)
	want := Abox{Sx: -1, Sy: 0, Sz: 1, Lx: 3, Ly: 4, Lz: 5}
	if c.Bounds != want {
		t.Errorf("got bounds %+v, want %+v", c.Bounds, want)
	}
}

func TestSphereVolumeAndInertia(t *testing.T) {
	c := NewSphere(1)
	if !lin.Aeq(c.Volume(), 4.0/3.0*3.141592653589793) {
		t.Errorf("unexpected sphere volume %f", c.Volume())
	}
	var it lin.V3
	c.Inertia(1, &it)
	if !lin.Aeq(it.X, 0.4) || !lin.Aeq(it.Y, 0.4) || !lin.Aeq(it.Z, 0.4) {
		t.Errorf("unexpected sphere inertia %+v", it)
	}
}

func TestAABBUpdateBoundsRotated(t *testing.T) {
	c := NewAABB(1, 1, 1)
	f := lin.NewFrame()
	f.Rot.SetAa(0, 1, 0, lin.Rad(45))
	c.Update(f)
	// a 45 degree rotation about Y grows the box's X/Z extents.
	if c.Bounds.Lx <= 1 || c.Bounds.Lz <= 1 {
		t.Errorf("expected grown extents after rotation, got %+v", c.Bounds)
	}
}

func TestAboxOverlaps(t *testing.T) {
	a := &Abox{Sx: 0, Sy: 0, Sz: 0, Lx: 1, Ly: 1, Lz: 1}
	b := &Abox{Sx: 0.5, Sy: 0.5, Sz: 0.5, Lx: 1.5, Ly: 1.5, Lz: 1.5}
	c := &Abox{Sx: 2, Sy: 2, Sz: 2, Lx: 3, Ly: 3, Lz: 3}
	if !a.Overlaps(b) {
		t.Error("expected overlapping boxes to overlap")
	}
	if a.Overlaps(c) {
		t.Error("expected disjoint boxes to not overlap")
	}
}
