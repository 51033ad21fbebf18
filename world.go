// Copyright © 2017-2024 Galvanized Logic Inc.

package aether

// world.go is the scene manager: a memory-pooled array of game
// objects with a stable-id lookup and two per-tick queues (add,
// delete), composed with the physics World. Grounded on the same
// pooled-id/two-phase-dispose shape as object.go's objectPool, with
// the update/add/delete ordering gazed-vu/entity.go's dispose-then-
// recycle pattern generalizes into a per-tick pipeline.

import (
	"log/slog"

	"github.com/duskforge/aether/config"
	"github.com/duskforge/aether/math/lin"
	"github.com/duskforge/aether/physics"
)

// Behavior mutates a GameObject's physics state once per tick: apply
// forces, spawn new objects via TickState.Spawn, or request removal
// via TickState.Remove. Behaviors run in the order they were attached
// to a GameObject, before detection.
type Behavior interface {
	Update(obj *GameObject, state *TickState)
}

// GameObject pairs a stable ObjectID with the rigid body (and the
// collider it carries) that ID owns, plus its ordered behaviour chain.
type GameObject struct {
	ID       ObjectID
	Body     *physics.RigidBody
	Behaviors []Behavior
}

// TickState is threaded through one tick's behaviour updates. Spawn
// and Remove append to the world's add/delete queues rather than
// mutating live state directly, so in-flight collision records from
// the same tick never reference a half-constructed or deleted object.
type TickState struct {
	Dt float64

	world *World
}

// Spawn queues body for addition to the world once the current tick's
// behaviour updates finish.
func (s *TickState) Spawn(body *physics.RigidBody, behaviors ...Behavior) {
	s.world.addQueue = append(s.world.addQueue, spawnRequest{body: body, behaviors: behaviors})
}

// Remove queues id for deletion once the current tick's behaviour
// updates finish.
func (s *TickState) Remove(id ObjectID) {
	s.world.deleteQueue = append(s.world.deleteQueue, id)
}

type spawnRequest struct {
	body      *physics.RigidBody
	behaviors []Behavior
}

// World owns the game object pool and the physics simulation those
// objects drive. One tick runs, in order: behaviour update, add-queue
// flush, delete-queue flush, physics detect/resolve/integrate. Render
// is driven separately by host code calling render.Pipeline.Render
// once per tick with the objects this World currently holds.
type World struct {
	pool    *objectPool
	objects map[ObjectID]*GameObject
	physics *physics.World
	cfg     config.Config

	addQueue    []spawnRequest
	deleteQueue []ObjectID

	log *slog.Logger
}

// NewWorld creates an empty scene bounded by bounds, used to size the
// physics World's broad-phase oct-tree.
func NewWorld(bounds physics.Abox, cfg config.Config) *World {
	w := &World{
		pool:    newObjectPool(),
		objects: map[ObjectID]*GameObject{},
		physics: physics.NewWorld(bounds),
		cfg:     cfg,
		log:     slog.Default().With("pkg", "aether"),
	}
	w.log.Info("scene created",
		"max_sub_tick", cfg.MaxSubTick,
		"octree_leaf_bodies", cfg.OctreeLeafBodies,
		"rebuild_every", cfg.RebuildEvery,
	)
	return w
}

// Config returns the tuning configuration this World was created with.
func (w *World) Config() config.Config { return w.cfg }

// Spawn immediately registers a new game object, bypassing the
// add-queue. Used for initial scene population before the tick loop
// starts; mid-tick spawns should go through TickState.Spawn instead.
func (w *World) Spawn(body *physics.RigidBody, behaviors ...Behavior) *GameObject {
	id := w.pool.create()
	body.ID = physics.ObjectID(uint32(id))
	w.physics.Add(body)
	obj := &GameObject{ID: id, Body: body, Behaviors: behaviors}
	w.objects[id] = obj
	return obj
}

// Object returns the live game object for id, if any.
func (w *World) Object(id ObjectID) (*GameObject, bool) {
	if !w.pool.valid(id) {
		return nil, false
	}
	obj, ok := w.objects[id]
	return obj, ok
}

// Tick advances the scene by dt seconds: behaviour update, add/delete
// queue flush, then the physics pipeline's detect/resolve/integrate.
func (w *World) Tick(dt float64) {
	state := &TickState{Dt: dt, world: w}
	for _, obj := range w.objects {
		for _, b := range obj.Behaviors {
			b.Update(obj, state)
		}
	}

	w.flushAdds()
	w.flushDeletes()

	w.physics.Step(dt)
}

func (w *World) flushAdds() {
	for _, req := range w.addQueue {
		id := w.pool.create()
		req.body.ID = physics.ObjectID(uint32(id))
		w.physics.Add(req.body)
		w.objects[id] = &GameObject{ID: id, Body: req.body, Behaviors: req.behaviors}
	}
	w.addQueue = w.addQueue[:0]
}

func (w *World) flushDeletes() {
	for _, id := range w.deleteQueue {
		if !w.pool.valid(id) {
			continue
		}
		obj, ok := w.objects[id]
		if !ok {
			continue
		}
		w.physics.Remove(physics.ObjectID(uint32(id)))
		delete(w.objects, id)
		w.pool.dispose(id)
	}
	w.deleteQueue = w.deleteQueue[:0]
}

// Raycast fires a ray from origin in direction dir against every
// object in the scene, returning the closest hit's ObjectID and point.
func (w *World) Raycast(origin, dir lin.V3) (id ObjectID, point lin.V3, hit bool) {
	pid, p, ok := w.physics.Raycast(origin, dir)
	return ObjectID(uint32(pid)), p, ok
}
