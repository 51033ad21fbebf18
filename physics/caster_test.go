// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/duskforge/aether/math/lin"
)

func TestCastRaySphereHit(t *testing.T) {
	sph := NewSphere(1)
	f := lin.NewFrame()
	f.Loc.SetS(10, 0, 0)
	sph.Update(f)

	origin := lin.V3{}
	dir := lin.V3{X: 1}
	hit, point := Cast(&origin, &dir, sph)
	if !hit {
		t.Fatal("expected ray to hit sphere")
	}
	if !lin.Aeq(point.X, 9.0) {
		t.Errorf("expected hit at x=9.0, got %f", point.X)
	}
}

func TestCastRaySphereMiss(t *testing.T) {
	sph := NewSphere(1)
	f := lin.NewFrame()
	f.Loc.SetS(10, 5, 0)
	sph.Update(f)

	origin := lin.V3{}
	dir := lin.V3{X: 1}
	hit, _ := Cast(&origin, &dir, sph)
	if hit {
		t.Error("expected ray to miss sphere")
	}
}

func TestCastRayAABBHit(t *testing.T) {
	box := NewAABB(1, 1, 1)
	f := lin.NewFrame()
	f.Loc.SetS(5, 0, 0)
	box.Update(f)

	origin := lin.V3{}
	dir := lin.V3{X: 1}
	hit, point := Cast(&origin, &dir, box)
	if !hit {
		t.Fatal("expected ray to hit box")
	}
	if !lin.Aeq(point.X, 4.0) {
		t.Errorf("expected hit at x=4.0, got %f", point.X)
	}
}

func TestCastRayAABBMissParallel(t *testing.T) {
	box := NewAABB(1, 1, 1)
	f := lin.NewFrame()
	f.Loc.SetS(5, 5, 0)
	box.Update(f)

	origin := lin.V3{}
	dir := lin.V3{X: 1}
	hit, _ := Cast(&origin, &dir, box)
	if hit {
		t.Error("expected ray above box to miss")
	}
}

func TestCastRayHullHit(t *testing.T) {
	hull := cubeHullBodyAt(1, 1, 5, 0, 0).Collider
	origin := lin.V3{}
	dir := lin.V3{X: 1}
	hit, point := Cast(&origin, &dir, hull)
	if !hit {
		t.Fatal("expected ray to hit hull")
	}
	if !lin.Aeq(point.X, 4.0) {
		t.Errorf("expected hit at x=4.0, got %f", point.X)
	}
}
