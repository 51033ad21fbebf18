// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "testing"

func TestOctreePairsFindsOverlap(t *testing.T) {
	bodies := map[ObjectID]*RigidBody{
		1: sphereBodyAt(1, 1, 0, 0, 0),
		2: sphereBodyAt(2, 1, 1.5, 0, 0),
		3: sphereBodyAt(3, 1, 50, 50, 50),
	}
	o := NewOctree(Abox{Sx: -100, Sy: -100, Sz: -100, Lx: 100, Ly: 100, Lz: 100})
	o.Rebuild(bodies)
	pairs := o.Pairs(bodies)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 candidate pair, got %d: %+v", len(pairs), pairs)
	}
	if pairs[0].A != 1 || pairs[0].B != 2 {
		t.Errorf("expected pair (1,2), got %+v", pairs[0])
	}
}

func TestOctreeRebuildCadence(t *testing.T) {
	o := NewOctree(Abox{Lx: 1, Ly: 1, Lz: 1})
	for i := 0; i < rebuildEvery-1; i++ {
		if o.ShouldRebuild() {
			t.Fatalf("rebuilt too early at tick %d", i)
		}
	}
	if !o.ShouldRebuild() {
		t.Error("expected rebuild due after rebuildEvery ticks")
	}
}

func TestOctreeNoDuplicatePairs(t *testing.T) {
	bodies := map[ObjectID]*RigidBody{}
	for i := ObjectID(1); i <= 20; i++ {
		bodies[i] = sphereBodyAt(i, 5, 0, 0, 0) // all mutually overlapping.
	}
	o := NewOctree(Abox{Sx: -50, Sy: -50, Sz: -50, Lx: 50, Ly: 50, Lz: 50})
	o.Rebuild(bodies)
	pairs := o.Pairs(bodies)
	seen := map[Pair]bool{}
	for _, p := range pairs {
		if seen[p] {
			t.Fatalf("duplicate pair %+v", p)
		}
		seen[p] = true
	}
	want := 20 * 19 / 2
	if len(pairs) != want {
		t.Errorf("expected %d pairs among mutually overlapping bodies, got %d", want, len(pairs))
	}
}
