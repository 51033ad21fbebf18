// Copyright © 2017-2024 Galvanized Logic Inc.

package aether

// object.go provides unique, stable game object identifiers, tracking
// created physics bodies, colliders and render models the way
// gazed-vu/entity.go tracks application resources.

import (
	"log/slog"
)

// ObjectID identifies a game object comprised of an id used as a live
// reference to data and an edition used to detect stale handles after
// the id slot has been recycled. ObjectIDs are used as array indices
// for per-object component data (frame, collider, rigid body) and as
// such never change value over their lifetime.
type ObjectID uint32

const idBits = 20                    // object array index : max 1048575
const edBits = 12                    // object edition     : max    4095
const maxObjID = (1 << idBits) - 1   // mask and max active objects.
const maxEdition = (1 << edBits) - 1 // mask and max dispose/reuse cycles.

// id is the value to be used for array lookups.
func (o ObjectID) id() uint32 { return uint32(o & maxObjID) }

// edition returns the value that tracks whether the id is still valid.
func (o ObjectID) edition() uint16 { return uint16((o >> idBits) & maxEdition) }

// maxFree starts recycling ids once the number of disposed ids
// exceeds this size, exactly as gazed-vu/entity.go's maxFree does.
const maxFree = (1 << (edBits - 1)) // recycle once free exceeds 2048.

// objectPool handles creation and two-phase deletion of game object
// identifiers. The first phase queues an id for reuse; the second
// phase (reached once more than maxFree ids are queued) reallocates it, bumping
// its edition so stale ObjectIDs held elsewhere fail Valid checks.
type objectPool struct {
	editions []uint16 // current edition per live array slot.
	free     []uint32 // ids queued for reuse.
}

func newObjectPool() *objectPool {
	return &objectPool{editions: []uint16{}, free: []uint32{}}
}

// create returns a new object id starting at 1. Returns zero once all
// object identifiers are exhausted (a design error to be caught during
// development, not a runtime condition to recover from).
func (p *objectPool) create() ObjectID {
	id := uint32(0)
	if len(p.free) > maxFree {
		id = p.free[0]
		p.free = append(p.free[:0], p.free[1:]...)
	} else {
		p.editions = append(p.editions, 0)
		if id = uint32(len(p.editions)); id >= maxObjID {
			if len(p.free) == 0 {
				slog.Warn("all object identifiers in use", "max_objects", maxObjID+1)
				return 0
			}
			id = p.free[0]
			p.free = append(p.free[:0], p.free[1:]...)
		}
	}
	return ObjectID(id | uint32(p.editions[id-1])<<idBits)
}

// valid objects are those that have been created and not yet disposed.
func (p *objectPool) valid(o ObjectID) bool {
	id := o.id()
	if id == 0 || id > uint32(len(p.editions)) {
		return false
	}
	return p.editions[id-1] == o.edition()
}

// dispose marks an object as no longer valid and queues its id slot
// for reallocation. The id can be reallocated maxEdition times before
// it risks duplicating a previously issued ObjectID.
func (p *objectPool) dispose(o ObjectID) {
	id := o.id()
	if id == 0 || id > uint32(len(p.editions)) {
		return
	}
	p.editions[id-1]++
	p.free = append(p.free, id)
}
