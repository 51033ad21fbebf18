// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// integrate.go advances a RigidBody's position and orientation using
// semi-implicit (symplectic) Euler integration, clamping any sub-tick
// larger than maxSubTick the way gazed-vu/physics/physics_util.go's
// Integrate clamps its timestep before it ever reaches the force
// accumulation stage, preventing a single long frame from producing a
// non-physical velocity spike.

import "github.com/duskforge/aether/math/lin"

// maxSubTick is the largest dt, in seconds, ever handed to Integrate
// in one call. World.Step splits any larger frame time into whole
// sub-ticks of this length plus a remainder, per spec's fixed sub-tick clamp.
const maxSubTick = 0.003

// Integrate advances body b's velocity from its accumulated force,
// torque, impulse and instantaneous torque, then its position and
// orientation from the resulting velocity, over a timestep no larger
// than maxSubTick. Static bodies are left untouched.
// FreezeTranslation/FreezeRotation each skip their half of the
// velocity-from-accumulator and placement update, holding that half
// of the body fixed while the other half still integrates. Force and
// torque are snapshotted into PrevForce/PrevTorque before they, and
// the Impulse/InstantTorque accumulators, are cleared for the next
// tick.
func Integrate(b *RigidBody, dt float64) {
	if !b.Movable {
		return
	}
	if dt > maxSubTick {
		dt = maxSubTick
	}

	// semi-implicit Euler: update velocity first, then use the new
	// velocity to update position, which is unconditionally stable for
	// the damping terms below.
	if !b.FreezeTranslation {
		b.LinVel.X += (b.Force.X*dt + b.Impulse.X) * b.InvMass
		b.LinVel.Y += (b.Force.Y*dt + b.Impulse.Y) * b.InvMass
		b.LinVel.Z += (b.Force.Z*dt + b.Impulse.Z) * b.InvMass

		linDamp := 1 / (1 + dt*b.LinDamping)
		b.LinVel.X *= linDamp
		b.LinVel.Y *= linDamp
		b.LinVel.Z *= linDamp

		b.Frame.Loc.X += b.LinVel.X * dt
		b.Frame.Loc.Y += b.LinVel.Y * dt
		b.Frame.Loc.Z += b.LinVel.Z * dt
	}

	if !b.FreezeRotation {
		var angAccel, instant lin.V3
		angAccel.MultvM(&b.Torque, &b.InvInertiaWorld)
		instant.MultvM(&b.InstantTorque, &b.InvInertiaWorld)
		b.AngVel.X += angAccel.X*dt + instant.X
		b.AngVel.Y += angAccel.Y*dt + instant.Y
		b.AngVel.Z += angAccel.Z*dt + instant.Z

		angDamp := 1 / (1 + dt*b.AngDamping)
		b.AngVel.X *= angDamp
		b.AngVel.Y *= angDamp
		b.AngVel.Z *= angDamp

		integrateOrientation(b.Frame.Rot, &b.AngVel, dt)
	}

	b.PrevForce = b.Force
	b.PrevTorque = b.Torque
	b.Force = lin.V3{}
	b.Torque = lin.V3{}
	b.Impulse = lin.V3{}
	b.InstantTorque = lin.V3{}
}

// integrateOrientation advances rotation q by angular velocity w over
// dt using the standard quaternion derivative q' = 0.5 * w * q,
// renormalizing afterward to counter the method's first-order drift.
func integrateOrientation(q *lin.Q, w *lin.V3, dt float64) {
	spin := lin.NewQ().SetS(w.X*0.5*dt, w.Y*0.5*dt, w.Z*0.5*dt, 0)
	delta := lin.NewQ().Mult(spin, q)
	q.X += delta.X
	q.Y += delta.Y
	q.Z += delta.Z
	q.W += delta.W
	q.Unit()
}
