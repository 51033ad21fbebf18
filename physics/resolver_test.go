// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/duskforge/aether/math/lin"
)

func TestResolveSeparatesApproachingSpheres(t *testing.T) {
	a := sphereBodyAt(1, 1, -0.6, 0, 0)
	b := sphereBodyAt(2, 1, 0.6, 0, 0)
	a.Restitution, b.Restitution = 1, 1
	a.LinVel = lin.V3{X: 1}
	b.LinVel = lin.V3{X: -1}

	contacts := Narrow(a, b, nil)
	if len(contacts) != 1 {
		t.Fatalf("expected contact, got %d", len(contacts))
	}
	Resolve(a, b, &contacts[0])

	if a.LinVel.X >= 0 {
		t.Errorf("expected body a to bounce back (negative X), got %f", a.LinVel.X)
	}
	if b.LinVel.X <= 0 {
		t.Errorf("expected body b to bounce back (positive X), got %f", b.LinVel.X)
	}
}

func TestResolveIgnoresSeparatingContact(t *testing.T) {
	a := sphereBodyAt(1, 1, -0.6, 0, 0)
	b := sphereBodyAt(2, 1, 0.6, 0, 0)
	a.LinVel = lin.V3{X: -1} // already moving apart.
	b.LinVel = lin.V3{X: 1}

	contacts := Narrow(a, b, nil)
	Resolve(a, b, &contacts[0])
	if !lin.Aeq(a.LinVel.X, -1) || !lin.Aeq(b.LinVel.X, 1) {
		t.Errorf("expected velocities unchanged for separating contact, got %f %f", a.LinVel.X, b.LinVel.X)
	}
}

func TestResolveStaticBodyUnaffected(t *testing.T) {
	floor := NewStaticBody(1, NewAABB(10, 1, 10), lin.NewFrame())
	floor.Collider.Update(floor.Frame)
	ball := sphereBodyAt(2, 1, 0, 1.5, 0)
	ball.LinVel = lin.V3{Y: -2}

	contacts := Narrow(floor, ball, nil)
	if len(contacts) != 1 {
		t.Fatalf("expected contact, got %d", len(contacts))
	}
	Resolve(floor, ball, &contacts[0])
	if floor.LinVel.Y != 0 {
		t.Errorf("expected static floor velocity to remain zero, got %f", floor.LinVel.Y)
	}
	if ball.LinVel.Y <= 0 {
		t.Errorf("expected ball to rebound upward, got %f", ball.LinVel.Y)
	}
}

func TestCombinedFrictionClampsTangentialImpulse(t *testing.T) {
	floor := NewStaticBody(1, NewAABB(10, 1, 10), lin.NewFrame())
	floor.Collider.Update(floor.Frame)
	ball := sphereBodyAt(2, 1, 0, 1.5, 0)
	ball.StaticFriction, ball.DynamicFriction = 0.9, 0.9
	ball.LinVel = lin.V3{X: 5, Y: -1}

	contacts := Narrow(floor, ball, nil)
	Resolve(floor, ball, &contacts[0])
	if ball.LinVel.X >= 5 {
		t.Errorf("expected friction to reduce tangential velocity, got %f", ball.LinVel.X)
	}
}
