// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// resolver.go resolves contacts using the Chris Hecker impulse form
// (single-pass normal + tangential impulse, not iterative PGS), per
// spec guidance. Adapted from gazed-vu/physics/solver.go's Bullet-
// derived sequential impulse solver: the scratch-vector reuse
// discipline and combinedFriction/combinedRestitution calls are kept,
// the outer PGS iteration loop is replaced by the closed-form Hecker
// impulse magnitude. Decoupling, angular friction and the
// impulse-based rolling resistance below replace solver.go's single
// Baumgarte correctPenetration and fixed angular damping.

import (
	"github.com/duskforge/aether/math/lin"
)

// Resolve applies an impulse to a and b for contact c, updating their
// linear and angular velocities in place, then decouples any
// remaining penetration. Static/non-movable bodies are treated as
// infinite mass and left unchanged.
func Resolve(a, b *RigidBody, c *Contact) {
	ra := lin.V3{X: c.PointA.X - a.Frame.Loc.X, Y: c.PointA.Y - a.Frame.Loc.Y, Z: c.PointA.Z - a.Frame.Loc.Z}
	rb := lin.V3{X: c.PointB.X - b.Frame.Loc.X, Y: c.PointB.Y - b.Frame.Loc.Y, Z: c.PointB.Z - b.Frame.Loc.Z}

	relVel := relativeVelocity(a, b, &ra, &rb)
	vn := relVel.Dot(&c.Normal)
	c.Impulse = 0

	if vn <= 0 {
		restitution := combinedRestitution(a, b)
		invMassSum := a.InvMass + b.InvMass
		angTermA := angularTerm(a, &ra, &c.Normal)
		angTermB := angularTerm(b, &rb, &c.Normal)
		denom := invMassSum + angTermA + angTermB
		if denom > 0 {
			jn := -(1 + restitution) * vn / denom
			if jn < 0 {
				jn = 0
			}
			impulse := lin.V3{X: c.Normal.X * jn, Y: c.Normal.Y * jn, Z: c.Normal.Z * jn}
			applyImpulse(a, b, &ra, &rb, &impulse)
			c.Impulse = jn

			relVel = relativeVelocity(a, b, &ra, &rb)
			applyLinearFriction(a, b, c, &ra, &rb, &relVel, invMassSum)
			applyAngularFriction(a, b, c)
		}
	}

	applyRollingResistance(a, b, c, &ra, &rb)

	if c.Depth > 0 {
		decouple(a, b, c)
	}
}

func relativeVelocity(a, b *RigidBody, ra, rb *lin.V3) lin.V3 {
	va := a.velocityAt(ra)
	vb := b.velocityAt(rb)
	return lin.V3{X: vb.X - va.X, Y: vb.Y - va.Y, Z: vb.Z - va.Z}
}

func angularTerm(b *RigidBody, r, n *lin.V3) float64 {
	if !b.Movable {
		return 0
	}
	var rxn lin.V3
	rxn.Cross(r, n)
	var inertiaTerm lin.V3
	inertiaTerm.MultvM(&rxn, &b.InvInertiaWorld)
	var back lin.V3
	back.Cross(&inertiaTerm, r)
	return back.Dot(n)
}

func applyImpulse(a, b *RigidBody, ra, rb *lin.V3, impulse *lin.V3) {
	if a.Movable {
		a.LinVel.X -= impulse.X * a.InvMass
		a.LinVel.Y -= impulse.Y * a.InvMass
		a.LinVel.Z -= impulse.Z * a.InvMass
		var torque, angDelta lin.V3
		torque.Cross(ra, impulse)
		angDelta.MultvM(&torque, &a.InvInertiaWorld)
		a.AngVel.X -= angDelta.X
		a.AngVel.Y -= angDelta.Y
		a.AngVel.Z -= angDelta.Z
	}
	if b.Movable {
		b.LinVel.X += impulse.X * b.InvMass
		b.LinVel.Y += impulse.Y * b.InvMass
		b.LinVel.Z += impulse.Z * b.InvMass
		var torque, angDelta lin.V3
		torque.Cross(rb, impulse)
		angDelta.MultvM(&torque, &b.InvInertiaWorld)
		b.AngVel.X += angDelta.X
		b.AngVel.Y += angDelta.Y
		b.AngVel.Z += angDelta.Z
	}
}

func tangentOf(relVel, normal *lin.V3) lin.V3 {
	vn := relVel.Dot(normal)
	t := lin.V3{X: relVel.X - normal.X*vn, Y: relVel.Y - normal.Y*vn, Z: relVel.Z - normal.Z*vn}
	if l := t.Len(); l > lin.Epsilon {
		return lin.V3{X: t.X / l, Y: t.Y / l, Z: t.Z / l}
	}
	return lin.V3{}
}

// applyLinearFriction applies the tangential impulse for contact c.
// The tangent direction is the relative velocity's component
// perpendicular to the normal; when that is degenerate (resting
// contact, zero relative tangential motion) the relative previous-tick
// net force's perpendicular component is used instead, purely to give
// the friction direction a well-defined, deterministic value rather
// than to manufacture a friction magnitude from nothing — the
// candidate impulse computed against a zero v_rel tangential component
// is itself zero either way, per spec's literal v_rel·t̂/m⁻¹ formula.
func applyLinearFriction(a, b *RigidBody, c *Contact, ra, rb, relVel *lin.V3, invMassSum float64) {
	tangent := tangentOf(relVel, &c.Normal)
	if tangent.AeqZ() {
		prevRel := lin.V3{X: b.PrevForce.X - a.PrevForce.X, Y: b.PrevForce.Y - a.PrevForce.Y, Z: b.PrevForce.Z - a.PrevForce.Z}
		tangent = tangentOf(&prevRel, &c.Normal)
		if tangent.AeqZ() {
			return
		}
	}

	vt := relVel.Dot(&tangent)
	angTermAt := angularTerm(a, ra, &tangent)
	angTermBt := angularTerm(b, rb, &tangent)
	denomT := invMassSum + angTermAt + angTermBt
	if denomT <= 0 {
		return
	}
	jtFull := -vt / denomT

	js := combinedStaticFriction(a, b) * c.Impulse
	jd := combinedDynamicFriction(a, b) * c.Impulse

	jt := jtFull
	if abs(jtFull) > js {
		jt = jd
		if jtFull < 0 {
			jt = -jd
		}
	}

	friction := lin.V3{X: tangent.X * jt, Y: tangent.Y * jt, Z: tangent.Z * jt}
	applyImpulse(a, b, ra, rb, &friction)
}

// applyAngularFriction resists relative spin about the contact normal
// (e.g. two boxes grinding against each other), separately from the
// linear tangential friction above which resists relative sliding.
func applyAngularFriction(a, b *RigidBody, c *Contact) {
	relAng := lin.V3{X: b.AngVel.X - a.AngVel.X, Y: b.AngVel.Y - a.AngVel.Y, Z: b.AngVel.Z - a.AngVel.Z}
	proj := relAng.Dot(&c.Normal)
	if proj == 0 {
		return
	}

	candidate := proj * (normalInertia(a, &c.Normal) + normalInertia(b, &c.Normal))

	js := combinedStaticFriction(a, b) * c.Impulse
	jd := combinedDynamicFriction(a, b) * c.Impulse

	jr := -candidate
	if abs(candidate) > js {
		jr = -jd
		if candidate < 0 {
			jr = jd
		}
	}

	torque := lin.V3{X: c.Normal.X * jr, Y: c.Normal.Y * jr, Z: c.Normal.Z * jr}
	if a.Movable {
		var delta lin.V3
		delta.MultvM(&torque, &a.InvInertiaWorld)
		a.AngVel.X -= delta.X
		a.AngVel.Y -= delta.Y
		a.AngVel.Z -= delta.Z
	}
	if b.Movable {
		var delta lin.V3
		delta.MultvM(&torque, &b.InvInertiaWorld)
		b.AngVel.X += delta.X
		b.AngVel.Y += delta.Y
		b.AngVel.Z += delta.Z
	}
}

// normalInertia projects body's world-space inertia tensor onto the
// contact normal, the scalar moment of inertia resisting spin about
// that axis.
func normalInertia(body *RigidBody, n *lin.V3) float64 {
	if !body.Movable {
		return 0
	}
	var in lin.V3
	in.MultvM(n, &body.InertiaWorld)
	return in.Dot(n)
}

// applyRollingResistance removes the in-plane (rolling) component of
// each body's angular momentum, clamped to RollingResistance*|j|*|rc|,
// per spec's rolling resistance requirement. Mirrors the damping-term
// shape of gazed-vu/physics/physics_util.go, replaced with an
// impulse magnitude instead of a fixed per-tick decay so the effect
// scales with how hard the contact is being pressed.
func applyRollingResistance(a, b *RigidBody, c *Contact, ra, rb *lin.V3) {
	if c.Impulse == 0 {
		return
	}
	for i, body := range [2]*RigidBody{a, b} {
		if !body.Movable || body.RollingResistance <= 0 {
			continue
		}
		rc := ra
		if i == 1 {
			rc = rb
		}
		var momentum lin.V3
		momentum.MultvM(&body.AngVel, &body.InertiaWorld)
		along := momentum.Dot(&c.Normal)
		inPlane := lin.V3{X: momentum.X - c.Normal.X*along, Y: momentum.Y - c.Normal.Y*along, Z: momentum.Z - c.Normal.Z*along}

		limit := body.RollingResistance * abs(c.Impulse) * rc.Len()
		removal := inPlane
		if l := inPlane.Len(); l > limit && l > lin.Epsilon {
			scale := limit / l
			removal = lin.V3{X: inPlane.X * scale, Y: inPlane.Y * scale, Z: inPlane.Z * scale}
		}

		var delta lin.V3
		delta.MultvM(&removal, &body.InvInertiaWorld)
		body.AngVel.X -= delta.X
		body.AngVel.Y -= delta.Y
		body.AngVel.Z -= delta.Z
	}
}

// decouple separates a and b along the contact normal by c.Depth,
// splitting the displacement between the two bodies in proportion to
// each one's speed along the normal relative to the sum of both
// speeds, replacing Baumgarte velocity-bias stabilization with a
// direct position correction. A body that is immovable, infinite
// mass, or translation-frozen contributes, and receives, zero share.
func decouple(a, b *RigidBody, c *Contact) {
	sa := movableSpeed(a, &c.Normal)
	sb := movableSpeed(b, &c.Normal)
	total := sa + sb

	var shareA, shareB float64
	if total > lin.Epsilon {
		shareA, shareB = sa/total, sb/total
	} else {
		// Resting contact with no relative motion along the normal:
		// spec leaves this case open, so fall back to an even split
		// among the bodies actually free to move, rather than leaving
		// a zero-speed resting penetration uncorrected forever.
		movers := 0
		if canMove(a) {
			movers++
		}
		if canMove(b) {
			movers++
		}
		if movers == 0 {
			return
		}
		share := 1.0 / float64(movers)
		if canMove(a) {
			shareA = share
		}
		if canMove(b) {
			shareB = share
		}
	}

	if canMove(a) {
		a.Frame.Loc.X -= c.Normal.X * c.Depth * shareA
		a.Frame.Loc.Y -= c.Normal.Y * c.Depth * shareA
		a.Frame.Loc.Z -= c.Normal.Z * c.Depth * shareA
	}
	if canMove(b) {
		b.Frame.Loc.X += c.Normal.X * c.Depth * shareB
		b.Frame.Loc.Y += c.Normal.Y * c.Depth * shareB
		b.Frame.Loc.Z += c.Normal.Z * c.Depth * shareB
	}
}

func canMove(body *RigidBody) bool {
	return body.Movable && !body.FreezeTranslation
}

func movableSpeed(body *RigidBody, n *lin.V3) float64 {
	if !canMove(body) {
		return 0
	}
	return abs(body.LinVel.Dot(n))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
