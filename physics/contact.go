// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// contact.go is the Collision record of spec.md: ObjectId-threaded
// contact points between two bodies, replacing the pointer backrefs
// gazed-vu/physics/contact.go's contactPair used, per spec's redesign
// guidance. The manifold bookkeeping (up to 4 persistent points,
// closest-point matching, largest-area eviction) is kept and wired
// into World.substep so a resting contact keeps the same points
// across ticks instead of being rebuilt from scratch every tick. Resolve
// recomputes each point's Impulse from zero on every call.

import (
	"math"

	"github.com/duskforge/aether/math/lin"
)

// breakingTolerance is the distance a persisted contact point may
// drift from its matching fresh point before the manifold drops it,
// mirroring Bullet's btPersistentManifold contact-processing threshold.
const breakingTolerance = 0.02

// maxManifoldContacts is the most contact points a single Manifold
// keeps; a fifth point evicts whichever existing point contributes
// least to the contact patch's area.
const maxManifoldContacts = 4

// Contact describes one point of contact between two bodies. Per
// spec's contact-point determination, the point on A and the point on
// B are independent: a resting AABB uses its own centre of mass on
// both sides of a pair, while a sphere's side of the same pair is the
// surface point facing the other body.
type Contact struct {
	PointA lin.V3 // contact point on body A.
	PointB lin.V3 // contact point on body B.
	Normal lin.V3 // unit MTV, points from A towards B.
	Depth  float64

	// Impulse is the scalar resolution impulse |j| the resolver applied
	// for this point, filled in during Resolve and consumed by the same
	// call's friction, angular friction, and rolling resistance steps.
	Impulse float64

	// localA, localB are PointA/PointB expressed in each body's local
	// frame as of the last merge, used by refresh to re-test separation
	// against the bodies' current transforms without re-running the
	// narrow phase.
	localA, localB lin.V3
}

// Manifold is the Collision record for a single ordered pair of bodies:
// up to four persistent contact points plus the ObjectIDs of the two
// bodies involved.
type Manifold struct {
	A, B     ObjectID
	Contacts []Contact
}

func newManifold(a, b ObjectID) *Manifold {
	return &Manifold{A: a, B: b, Contacts: make([]Contact, 0, maxManifoldContacts)}
}

// merge folds freshly detected contacts into the manifold, replacing
// the closest existing point when one is found within the breaking
// tolerance, appending when there is room, and otherwise evicting the
// point that contributes least contact area. Mirrors
// gazed-vu/physics/contact.go's mergeContacts/closestPoint/largestArea.
// a and b are the manifold's owning bodies, used to record each fresh
// point's local-frame offset for the next tick's refresh.
func (m *Manifold) merge(a, b *RigidBody, fresh []Contact, breakingLimit float64) {
	for _, c := range fresh {
		c.localA = worldToLocal(a.Frame, c.PointA)
		c.localB = worldToLocal(b.Frame, c.PointB)
		idx := m.closest(c, breakingLimit)
		switch {
		case idx >= 0:
			// keep the warm Impulse history; everything else refreshes.
			c.Impulse = m.Contacts[idx].Impulse
			m.Contacts[idx] = c
		case len(m.Contacts) < maxManifoldContacts:
			m.Contacts = append(m.Contacts, c)
		default:
			idx = m.largestAreaIndex(c)
			m.Contacts[idx] = c
		}
	}
}

func (c *Contact) mid() lin.V3 {
	return lin.V3{X: (c.PointA.X + c.PointB.X) / 2, Y: (c.PointA.Y + c.PointB.Y) / 2, Z: (c.PointA.Z + c.PointB.Z) / 2}
}

func (m *Manifold) closest(c Contact, breakingLimit float64) int {
	shortest := breakingLimit * breakingLimit
	best := -1
	cm := c.mid()
	for i, existing := range m.Contacts {
		em := existing.mid()
		d := lin.V3{X: em.X - cm.X, Y: em.Y - cm.Y, Z: em.Z - cm.Z}
		distSqr := d.Dot(&d)
		if distSqr < shortest {
			shortest, best = distSqr, i
		}
	}
	return best
}

func (m *Manifold) largestAreaIndex(c Contact) int {
	pts := m.Contacts
	area := func(p0, p1, p2, p3 lin.V3) float64 {
		v0 := lin.V3{X: p0.X - p1.X, Y: p0.Y - p1.Y, Z: p0.Z - p1.Z}
		v1 := lin.V3{X: p2.X - p3.X, Y: p2.Y - p3.Y, Z: p2.Z - p3.Z}
		var cr lin.V3
		cr.Cross(&v0, &v1)
		return cr.LenSqr()
	}
	cm := c.mid()
	m0, m1, m2, m3 := pts[0].mid(), pts[1].mid(), pts[2].mid(), pts[3].mid()
	a0 := area(cm, m1, m2, m3)
	a1 := area(cm, m0, m2, m3)
	a2 := area(cm, m0, m1, m3)
	a3 := area(cm, m0, m1, m2)
	return lin.AbsMax(a0, a1, a2, a3)
}

// refresh recomputes each contact's separation using the current body
// transforms and drops any that have drifted outside the breaking
// tolerance, mirroring btPersistentManifold::refreshContactPoints.
// Surviving points have PointA/PointB updated in place so the
// resolver always sees the current-tick world positions.
func (m *Manifold) refresh(a, b *RigidBody, breakingLimit float64) {
	kept := m.Contacts[:0]
	for _, c := range m.Contacts {
		ax, ay, az := a.Frame.AppT(c.localA.X, c.localA.Y, c.localA.Z)
		bx, by, bz := b.Frame.AppT(c.localB.X, c.localB.Y, c.localB.Z)
		dx, dy, dz := bx-ax, by-ay, bz-az
		dist := dx*c.Normal.X + dy*c.Normal.Y + dz*c.Normal.Z
		if dist <= breakingLimit {
			c.PointA = lin.V3{X: ax, Y: ay, Z: az}
			c.PointB = lin.V3{X: bx, Y: by, Z: bz}
			kept = append(kept, c)
		}
	}
	m.Contacts = kept
}

// worldToLocal converts world point w into frame f's local space,
// undoing AppT's rotate-then-translate.
func worldToLocal(f *lin.Frame, w lin.V3) lin.V3 {
	inv := lin.NewQ().Inv(f.Rot)
	lx, ly, lz := lin.MultSQ(w.X-f.Loc.X, w.Y-f.Loc.Y, w.Z-f.Loc.Z, inv)
	return lin.V3{X: lx, Y: ly, Z: lz}
}

func clampf(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) }
