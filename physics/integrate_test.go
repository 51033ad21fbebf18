// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/duskforge/aether/math/lin"
)

func TestIntegrateAppliesForceToVelocity(t *testing.T) {
	b := NewRigidBody(1, NewSphere(1), lin.NewFrame(), 2)
	b.Force = lin.V3{Y: -10}
	Integrate(b, 0.001)
	want := -10 * b.InvMass * 0.001
	if !lin.Aeq(b.LinVel.Y, want) {
		t.Errorf("expected linvel.y %f, got %f", want, b.LinVel.Y)
	}
}

func TestIntegrateClampsSubTick(t *testing.T) {
	b := NewRigidBody(1, NewSphere(1), lin.NewFrame(), 1)
	b.LinVel = lin.V3{X: 1}
	Integrate(b, 1.0) // far larger than maxSubTick.
	if !lin.Aeq(b.Frame.Loc.X, 1*maxSubTick) {
		t.Errorf("expected position advanced by clamped dt, got %f want %f", b.Frame.Loc.X, maxSubTick)
	}
}

func TestIntegrateClearsForceAndTorque(t *testing.T) {
	b := NewRigidBody(1, NewSphere(1), lin.NewFrame(), 1)
	b.Force = lin.V3{X: 5}
	b.Torque = lin.V3{Y: 5}
	Integrate(b, 0.001)
	if b.Force != (lin.V3{}) || b.Torque != (lin.V3{}) {
		t.Errorf("expected force/torque cleared after integration, got %+v %+v", b.Force, b.Torque)
	}
}

func TestIntegrateSkipsStaticBody(t *testing.T) {
	b := NewStaticBody(1, NewSphere(1), lin.NewFrame())
	b.LinVel = lin.V3{X: 1} // should never happen, but confirm it is ignored.
	Integrate(b, 0.001)
	if b.Frame.Loc.X != 0 {
		t.Errorf("expected static body to stay put, got %f", b.Frame.Loc.X)
	}
}

func TestIntegrateOrientationStaysUnit(t *testing.T) {
	b := NewRigidBody(1, NewSphere(1), lin.NewFrame(), 1)
	b.AngVel = lin.V3{Y: 10}
	for i := 0; i < 50; i++ {
		Integrate(b, 0.002)
	}
	if !lin.Aeq(b.Frame.Rot.Len(), 1) {
		t.Errorf("expected unit quaternion after repeated integration, got len %f", b.Frame.Rot.Len())
	}
}
