// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package physics is a real-time simulation of collision and rigid
// body dynamics. Physics applies forces to rigid bodies and resolves
// the collisions between their colliders, updating each body's
// location and orientation over time.
//
// Package physics is provided as part of the aether 3D engine.
package physics

// physics.go exposes the top-level World, orchestrating one
// simulation tick as: refresh collider world-space caches, run broad
// phase to gather candidate pairs, run narrow phase (SAT) on each
// pair, resolve contacts with an impulse, then integrate every moving
// body forward in clamped sub-ticks. Grounded on the per-tick
// structure of gazed-vu/physics/physics.go's Simulate, replacing its
// PBD solver with the impulse resolver in resolver.go.

import (
	"log/slog"

	"github.com/duskforge/aether/math/lin"
)

// Gravity is the default downward acceleration applied to every
// movable body each tick, in world units per second squared.
const Gravity = 9.8

// World owns every RigidBody in the simulation plus the broad-phase
// index over their colliders.
type World struct {
	bodies    map[ObjectID]*RigidBody
	octree    *Octree
	gravity   lin.V3
	log       *slog.Logger
	manifolds map[Pair]*Manifold
	scratch   []Contact
}

// NewWorld creates an empty simulation world bounded by bounds, used
// to size the broad-phase oct-tree. Bodies outside bounds are still
// simulated correctly but lose broad-phase culling benefit.
func NewWorld(bounds Abox) *World {
	return &World{
		bodies:    map[ObjectID]*RigidBody{},
		octree:    NewOctree(bounds),
		gravity:   lin.V3{Y: -Gravity},
		log:       slog.Default().With("pkg", "physics"),
		manifolds: map[Pair]*Manifold{},
	}
}

// Add registers a body with the world under its ID. Re-adding an
// existing ID replaces the previous body.
func (w *World) Add(b *RigidBody) {
	w.bodies[b.ID] = b
}

// Remove drops a body from the world. A no-op if id is not present.
func (w *World) Remove(id ObjectID) {
	delete(w.bodies, id)
}

// Body returns the body for id, and whether it was found.
func (w *World) Body(id ObjectID) (*RigidBody, bool) {
	b, ok := w.bodies[id]
	return b, ok
}

// SetGravity overrides the world's default downward gravity vector.
func (w *World) SetGravity(g lin.V3) {
	w.gravity = g
}

// Step advances the simulation by dt seconds, splitting dt into whole
// sub-ticks of at most maxSubTick seconds plus a final remainder, per
// spec's mandatory sub-tick clamp. Each sub-tick runs the full
// update-colliders -> broad -> narrow -> resolve -> integrate
// pipeline, so fast-moving bodies never tunnel through a slow one in
// a single oversized frame.
func (w *World) Step(dt float64) {
	for dt > 0 {
		step := dt
		if step > maxSubTick {
			step = maxSubTick
		}
		w.substep(step)
		dt -= step
	}
}

func (w *World) substep(dt float64) {
	for _, b := range w.bodies {
		b.Collider.Update(b.Frame)
		b.updateInertiaTensor()
		if b.Movable {
			b.Force.X += w.gravity.X * b.Mass
			b.Force.Y += w.gravity.Y * b.Mass
			b.Force.Z += w.gravity.Z * b.Mass
		}
	}

	if w.octree.ShouldRebuild() {
		w.octree.Rebuild(w.bodies)
	}
	pairs := w.octree.Pairs(w.bodies)

	live := make(map[Pair]bool, len(pairs))
	for _, p := range pairs {
		a, b := w.bodies[p.A], w.bodies[p.B]
		if !a.Movable && !b.Movable {
			continue // two static bodies never need resolving.
		}
		live[p] = true

		m := w.manifolds[p]
		if m == nil {
			m = newManifold(p.A, p.B)
			w.manifolds[p] = m
		}
		m.refresh(a, b, breakingTolerance)

		w.scratch = w.scratch[:0]
		w.scratch = Narrow(a, b, w.scratch)
		m.merge(a, b, w.scratch, breakingTolerance)

		for i := range m.Contacts {
			Resolve(a, b, &m.Contacts[i])
		}
	}
	for p := range w.manifolds {
		if !live[p] {
			delete(w.manifolds, p)
		}
	}

	for _, b := range w.bodies {
		Integrate(b, dt)
	}
}

// Raycast fires a ray from origin in direction dir against every body
// in the world and returns the ID and point of the closest hit, if
// any.
func (w *World) Raycast(origin, dir lin.V3) (id ObjectID, point lin.V3, hit bool) {
	bestDist := -1.0
	for oid, b := range w.bodies {
		ok, p := Cast(&origin, &dir, b.Collider)
		if !ok {
			continue
		}
		d := p.Dist(&origin)
		if bestDist < 0 || d < bestDist {
			bestDist, id, point, hit = d, oid, p, true
		}
	}
	return id, point, hit
}
