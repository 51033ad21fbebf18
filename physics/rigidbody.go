// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// rigidbody.go keeps the inverse-mass/inverse-inertia-tensor conventions
// of gazed-vu/physics/body.go's body struct, minus its cgo box-box
// dependency, and threads RigidBody instances by ObjectID instead of
// pointer, per spec guidance.

import (
	"math"

	"github.com/duskforge/aether/math/lin"
)

// ObjectID identifies a rigid body / collider pair owned by a game
// object. Mirrors the aether package's own pooled ObjectID so physics
// can be driven without importing the scene layer.
type ObjectID uint32

// RigidBody holds the dynamic state needed to integrate and resolve
// collisions for one game object: its collider, its world Frame, and
// the linear/angular velocity and mass properties used by the solver.
type RigidBody struct {
	ID       ObjectID
	Collider *Collider
	Frame    *lin.Frame

	Movable bool // false for static/kinematic bodies: infinite mass.

	Mass    float64
	InvMass float64

	InertiaLocal    lin.V3 // diagonal local inertia tensor.
	InvInertiaLocal lin.V3
	InertiaWorld    lin.M3 // refreshed each tick from orientation.
	InvInertiaWorld lin.M3 // refreshed each tick from orientation.

	LinVel lin.V3
	AngVel lin.V3

	Force  lin.V3 // accumulated external force this tick.
	Torque lin.V3 // accumulated external torque this tick.

	// Impulse and InstantTorque are applied directly to velocity on the
	// next Integrate (no dt factor), unlike Force/Torque which accumulate
	// through acceleration. A behaviour wanting an instantaneous velocity
	// change (an explosion, a jump) accumulates here instead of faking a
	// huge one-tick force.
	Impulse       lin.V3
	InstantTorque lin.V3

	// PrevForce and PrevTorque hold the previous tick's Force/Torque,
	// snapshotted by Integrate before the accumulators clear. The
	// resolver's linear friction falls back to the relative previous-tick
	// force's tangential direction when the relative velocity has none.
	PrevForce  lin.V3
	PrevTorque lin.V3

	// FreezeTranslation/FreezeRotation pin a body's position/orientation:
	// Integrate skips the corresponding velocity and placement update,
	// and the resolver's decoupling step gives the body a zero
	// displacement share.
	FreezeTranslation bool
	FreezeRotation    bool

	LinDamping float64
	AngDamping float64

	StaticFriction  float64
	DynamicFriction float64
	Restitution     float64

	// RollingResistance scales the angular momentum removed from rolling
	// sphere/hull contacts, applied by the resolver per spec's rolling
	// resistance requirement.
	RollingResistance float64
}

// NewRigidBody creates a dynamic rigid body with the given collider,
// frame, and mass, deriving inverse mass and inverse inertia tensor the
// way gazed-vu/physics/body.go's setMaterial does.
func NewRigidBody(id ObjectID, c *Collider, f *lin.Frame, mass float64) *RigidBody {
	b := &RigidBody{ID: id, Collider: c, Frame: f, Movable: true, StaticFriction: 0.5, DynamicFriction: 0.3, Restitution: 0.2}
	b.SetMass(mass)
	return b
}

// NewStaticBody creates an immovable rigid body: infinite mass, never
// integrated, only ever the non-moving half of a collision pair.
func NewStaticBody(id ObjectID, c *Collider, f *lin.Frame) *RigidBody {
	return &RigidBody{ID: id, Collider: c, Frame: f, Movable: false, StaticFriction: 0.5, DynamicFriction: 0.3, Restitution: 0.2}
}

// SetMass assigns mass and recomputes inverse mass and local inverse
// inertia tensor from the collider's shape. A mass of zero or less
// makes the body immovable.
func (b *RigidBody) SetMass(mass float64) {
	if mass <= 0 {
		b.Mass, b.InvMass = 0, 0
		b.Movable = false
		return
	}
	b.Mass = mass
	b.InvMass = 1 / mass
	b.Collider.Inertia(mass, &b.InertiaLocal)
	b.InvInertiaLocal = lin.V3{}
	if b.InertiaLocal.X != 0 {
		b.InvInertiaLocal.X = 1 / b.InertiaLocal.X
	}
	if b.InertiaLocal.Y != 0 {
		b.InvInertiaLocal.Y = 1 / b.InertiaLocal.Y
	}
	if b.InertiaLocal.Z != 0 {
		b.InvInertiaLocal.Z = 1 / b.InertiaLocal.Z
	}
	b.Movable = true
}

// updateInertiaTensor rotates the local inertia tensor and its inverse
// into world space: Iw = R * Il * R^T, Iw^-1 = R * Il^-1 * R^T,
// refreshed once per tick before the resolver runs. Mirrors body.go's
// updateInertiaTensor. The world-space (non-inverse) tensor backs the
// resolver's angular friction, which converts a relative spin into an
// angular-momentum-like impulse candidate.
func (b *RigidBody) updateInertiaTensor() {
	if !b.Movable {
		return
	}
	r := lin.NewM3().SetQ(b.Frame.Rot)
	rt := lin.NewM3().Transpose(r)

	invDiag := lin.NewM3().SetS(
		b.InvInertiaLocal.X, 0, 0,
		0, b.InvInertiaLocal.Y, 0,
		0, 0, b.InvInertiaLocal.Z,
	)
	tmp := lin.NewM3().Mult(r, invDiag)
	b.InvInertiaWorld = *lin.NewM3().Mult(tmp, rt)

	diag := lin.NewM3().SetS(
		b.InertiaLocal.X, 0, 0,
		0, b.InertiaLocal.Y, 0,
		0, 0, b.InertiaLocal.Z,
	)
	tmp2 := lin.NewM3().Mult(r, diag)
	b.InertiaWorld = *lin.NewM3().Mult(tmp2, rt)
}

// velocityAt returns the linear velocity of the point rp (relative to
// the body's center of mass, world-space) on b, combining linear and
// angular velocity contributions.
func (b *RigidBody) velocityAt(rp *lin.V3) lin.V3 {
	var angular lin.V3
	angular.Cross(&b.AngVel, rp)
	return lin.V3{X: b.LinVel.X + angular.X, Y: b.LinVel.Y + angular.Y, Z: b.LinVel.Z + angular.Z}
}

// combinedStaticFriction blends two bodies' static friction
// coefficients the way gazed-vu/physics/body.go blends a single
// friction value: geometric mean.
func combinedStaticFriction(a, b *RigidBody) float64 {
	return math.Sqrt(a.StaticFriction * b.StaticFriction)
}

// combinedDynamicFriction blends two bodies' dynamic (kinetic) friction
// coefficients, same geometric-mean convention.
func combinedDynamicFriction(a, b *RigidBody) float64 {
	return math.Sqrt(a.DynamicFriction * b.DynamicFriction)
}

// combinedRestitution blends two bodies' restitution using the larger
// value, matching Bullet's convention that gazed-vu's solver also uses.
func combinedRestitution(a, b *RigidBody) float64 {
	if a.Restitution > b.Restitution {
		return a.Restitution
	}
	return b.Restitution
}
