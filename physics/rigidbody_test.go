// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/duskforge/aether/math/lin"
)

func TestNewRigidBodySphereInertia(t *testing.T) {
	b := NewRigidBody(1, NewSphere(1), lin.NewFrame(), 2)
	if !lin.Aeq(b.InvMass, 0.5) {
		t.Errorf("expected invmass 0.5, got %f", b.InvMass)
	}
	want := 0.4 * 2 * 1 * 1
	if !lin.Aeq(b.InertiaLocal.X, want) {
		t.Errorf("expected inertia %f, got %f", want, b.InertiaLocal.X)
	}
}

func TestSetMassZeroMakesImmovable(t *testing.T) {
	b := NewRigidBody(1, NewSphere(1), lin.NewFrame(), 2)
	b.SetMass(0)
	if b.Movable || b.InvMass != 0 {
		t.Error("expected body with zero mass to be immovable")
	}
}

func TestNewStaticBodyIsImmovable(t *testing.T) {
	b := NewStaticBody(1, NewAABB(1, 1, 1), lin.NewFrame())
	if b.Movable || b.InvMass != 0 {
		t.Error("expected static body to be immovable")
	}
}

func TestCombinedStaticFriction(t *testing.T) {
	a := NewRigidBody(1, NewSphere(1), lin.NewFrame(), 1)
	b := NewRigidBody(2, NewSphere(1), lin.NewFrame(), 1)
	a.StaticFriction, b.StaticFriction = 0.8, 0.2
	want := 0.4 // sqrt(0.8*0.2)
	if got := combinedStaticFriction(a, b); !lin.Aeq(got, want) {
		t.Errorf("expected combined static friction %f, got %f", want, got)
	}
}

func TestCombinedDynamicFriction(t *testing.T) {
	a := NewRigidBody(1, NewSphere(1), lin.NewFrame(), 1)
	b := NewRigidBody(2, NewSphere(1), lin.NewFrame(), 1)
	a.DynamicFriction, b.DynamicFriction = 0.5, 0.2
	want := 0.31622776601683794 // sqrt(0.5*0.2)
	if got := combinedDynamicFriction(a, b); !lin.Aeq(got, want) {
		t.Errorf("expected combined dynamic friction %f, got %f", want, got)
	}
}

func TestCombinedRestitutionTakesMax(t *testing.T) {
	a := NewRigidBody(1, NewSphere(1), lin.NewFrame(), 1)
	b := NewRigidBody(2, NewSphere(1), lin.NewFrame(), 1)
	a.Restitution, b.Restitution = 0.3, 0.9
	if got := combinedRestitution(a, b); !lin.Aeq(got, 0.9) {
		t.Errorf("expected combined restitution 0.9, got %f", got)
	}
}

func TestVelocityAtPointIncludesAngular(t *testing.T) {
	b := NewRigidBody(1, NewSphere(1), lin.NewFrame(), 1)
	b.LinVel = lin.V3{X: 1}
	b.AngVel = lin.V3{Z: 1} // spin around Z.
	rp := lin.V3{X: 0, Y: 1, Z: 0}
	v := b.velocityAt(&rp)
	// angular x rp = (0,0,1) x (0,1,0) = (-1,0,0)
	want := lin.V3{X: 0, Y: 0, Z: 0}
	if !v.Aeq(&want) {
		t.Errorf("expected velocity %+v, got %+v", want, v)
	}
}
