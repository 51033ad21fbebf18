// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// octree.go is the broad-phase spatial index: an oct-tree over body
// Abox bounds, replacing the naive O(n^2) all-pairs sweep of
// gazed-vu/physics/broad.go. Kept is broad.go's output shape, a flat
// slice of candidate pairs handed to the narrow phase; new is the
// tree itself and its periodic full-rebuild cadence, grounded on
// original_source/Physics/CollisionManager.c which rebuilds its
// partition structure every N ticks rather than incrementally
// reinserting on every Update.

const (
	octMaxDepth    = 6
	octMaxBodies   = 8
	rebuildEvery   = 30 // ticks between full oct-tree rebuilds.
)

type octNode struct {
	bounds   Abox
	bodies   []ObjectID
	children [8]*octNode
	leaf     bool
}

// Octree is the broad-phase spatial index over a fixed world Abox,
// rebuilt wholesale every rebuildEvery ticks rather than incrementally
// reinserted, trading a small amount of staleness for a much simpler
// and cheaper update per spec's periodic-rebuild decision.
type Octree struct {
	root    *octNode
	bounds  Abox
	ticks   int
}

// NewOctree creates an oct-tree broad phase covering the given world
// bounds. Bodies outside bounds are still tracked, folded into the
// root node rather than dropped.
func NewOctree(bounds Abox) *Octree {
	return &Octree{bounds: bounds, root: &octNode{bounds: bounds, leaf: true}}
}

// Pair is a broad-phase candidate: two bodies whose Abox bounds
// overlap and therefore warrant a narrow-phase test. Mirrors the
// broad_Collision_Pair shape of gazed-vu/physics/broad.go.
type Pair struct {
	A, B ObjectID
}

// Rebuild discards the current tree and reinserts every body from
// scratch. Called by World.Step every rebuildEvery ticks; between
// rebuilds, Pairs() still reflects the last full layout.
func (o *Octree) Rebuild(bodies map[ObjectID]*RigidBody) {
	o.root = &octNode{bounds: o.bounds, leaf: true}
	for id, b := range bodies {
		insert(o.root, id, &b.Collider.Bounds, 0)
	}
	o.ticks = 0
}

// ShouldRebuild reports whether rebuildEvery ticks have elapsed since
// the last Rebuild, and advances the internal tick counter.
func (o *Octree) ShouldRebuild() bool {
	o.ticks++
	return o.ticks >= rebuildEvery
}

func insert(n *octNode, id ObjectID, bounds *Abox, depth int) {
	if n.leaf && (len(n.bodies) < octMaxBodies || depth >= octMaxDepth) {
		n.bodies = append(n.bodies, id)
		return
	}
	if n.leaf {
		split(n)
	}
	placed := false
	for _, c := range n.children {
		if boxContains(&c.bounds, bounds) {
			insert(c, id, bounds, depth+1)
			placed = true
			break
		}
	}
	if !placed {
		// straddles a split plane: keep at this level so both sides see it.
		n.bodies = append(n.bodies, id)
	}
}

func split(n *octNode) {
	n.leaf = false
	mid := n.bounds.Center()
	for i := 0; i < 8; i++ {
		sx, sy, sz := n.bounds.Sx, n.bounds.Sy, n.bounds.Sz
		lx, ly, lz := mid.X, mid.Y, mid.Z
		if i&1 != 0 {
			sx, lx = mid.X, n.bounds.Lx
		}
		if i&2 != 0 {
			sy, ly = mid.Y, n.bounds.Ly
		}
		if i&4 != 0 {
			sz, lz = mid.Z, n.bounds.Lz
		}
		n.children[i] = &octNode{bounds: Abox{Sx: sx, Sy: sy, Sz: sz, Lx: lx, Ly: ly, Lz: lz}, leaf: true}
	}
}

func boxContains(outer, inner *Abox) bool {
	return inner.Sx >= outer.Sx && inner.Lx <= outer.Lx &&
		inner.Sy >= outer.Sy && inner.Ly <= outer.Ly &&
		inner.Sz >= outer.Sz && inner.Lz <= outer.Lz
}

// Pairs walks the tree and returns every candidate pair of bodies
// whose bounds overlap, testing bodies straddling a split against
// both their siblings at that level and everything below it.
func (o *Octree) Pairs(bodies map[ObjectID]*RigidBody) []Pair {
	seen := map[Pair]bool{}
	var pairs []Pair
	collectPairs(o.root, bodies, nil, seen, &pairs)
	return pairs
}

func collectPairs(n *octNode, bodies map[ObjectID]*RigidBody, ancestors []ObjectID, seen map[Pair]bool, pairs *[]Pair) {
	for i := 0; i < len(n.bodies); i++ {
		for j := i + 1; j < len(n.bodies); j++ {
			tryPair(n.bodies[i], n.bodies[j], bodies, seen, pairs)
		}
		for _, anc := range ancestors {
			tryPair(n.bodies[i], anc, bodies, seen, pairs)
		}
	}
	if !n.leaf {
		nested := append(append([]ObjectID{}, ancestors...), n.bodies...)
		for _, c := range n.children {
			collectPairs(c, bodies, nested, seen, pairs)
		}
	}
}

func tryPair(a, b ObjectID, bodies map[ObjectID]*RigidBody, seen map[Pair]bool, pairs *[]Pair) {
	if a == b {
		return
	}
	if a > b {
		a, b = b, a
	}
	p := Pair{A: a, B: b}
	if seen[p] {
		return
	}
	ba, okA := bodies[a]
	bb, okB := bodies[b]
	if okA && okB && ba.Collider.Bounds.Overlaps(&bb.Collider.Bounds) {
		seen[p] = true
		*pairs = append(*pairs, p)
	}
}
