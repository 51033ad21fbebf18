// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/duskforge/aether/math/lin"
)

func TestWorldStepAppliesGravity(t *testing.T) {
	w := NewWorld(Abox{Sx: -100, Sy: -100, Sz: -100, Lx: 100, Ly: 100, Lz: 100})
	b := NewRigidBody(1, NewSphere(1), lin.NewFrame(), 1)
	w.Add(b)
	w.Step(0.003)
	if b.LinVel.Y >= 0 {
		t.Errorf("expected downward velocity from gravity, got %f", b.LinVel.Y)
	}
}

func TestWorldStepRestsBallOnFloor(t *testing.T) {
	w := NewWorld(Abox{Sx: -100, Sy: -100, Sz: -100, Lx: 100, Ly: 100, Lz: 100})
	floor := NewStaticBody(1, NewAABB(50, 1, 50), lin.NewFrame())
	w.Add(floor)

	ballFrame := lin.NewFrame()
	ballFrame.Loc.SetS(0, 1.9, 0)
	ball := NewRigidBody(2, NewSphere(1), ballFrame, 1)
	ball.Restitution = 0
	w.Add(ball)

	for i := 0; i < 500; i++ {
		w.Step(0.003)
	}
	if ball.Frame.Loc.Y < 1.9 {
		t.Errorf("expected ball to settle at or above resting height, got %f", ball.Frame.Loc.Y)
	}
	if ball.Frame.Loc.Y > 2.2 {
		t.Errorf("expected ball to have fallen onto the floor, got %f", ball.Frame.Loc.Y)
	}
}

func TestWorldRemove(t *testing.T) {
	w := NewWorld(Abox{Lx: 1, Ly: 1, Lz: 1})
	b := NewRigidBody(1, NewSphere(1), lin.NewFrame(), 1)
	w.Add(b)
	w.Remove(1)
	if _, ok := w.Body(1); ok {
		t.Error("expected body to be removed")
	}
}

func TestWorldRaycastFindsClosest(t *testing.T) {
	w := NewWorld(Abox{Sx: -100, Sy: -100, Sz: -100, Lx: 100, Ly: 100, Lz: 100})
	near := NewStaticBody(1, NewSphere(1), lin.NewFrame())
	near.Frame.Loc.SetS(5, 0, 0)
	near.Collider.Update(near.Frame)
	w.Add(near)

	far := NewStaticBody(2, NewSphere(1), lin.NewFrame())
	far.Frame.Loc.SetS(20, 0, 0)
	far.Collider.Update(far.Frame)
	w.Add(far)

	id, _, hit := w.Raycast(lin.V3{}, lin.V3{X: 1})
	if !hit {
		t.Fatal("expected raycast to hit a body")
	}
	if id != 1 {
		t.Errorf("expected closest body id 1, got %d", id)
	}
}
