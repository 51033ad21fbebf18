// Copyright © 2017-2024 Galvanized Logic Inc.

package aether

import (
	"testing"

	"github.com/duskforge/aether/config"
	"github.com/duskforge/aether/math/lin"
	"github.com/duskforge/aether/physics"
)

func testBounds() physics.Abox {
	return physics.Abox{Sx: -100, Sy: -100, Sz: -100, Lx: 100, Ly: 100, Lz: 100}
}

func TestWorldSpawnTracksObject(t *testing.T) {
	w := NewWorld(testBounds(), config.Defaults)
	body := physics.NewRigidBody(0, physics.NewSphere(1), lin.NewFrame(), 1)
	obj := w.Spawn(body)

	got, ok := w.Object(obj.ID)
	if !ok || got != obj {
		t.Fatal("expected spawned object to be retrievable by id")
	}
}

func TestWorldTickAppliesGravity(t *testing.T) {
	w := NewWorld(testBounds(), config.Defaults)
	body := physics.NewRigidBody(0, physics.NewSphere(1), lin.NewFrame(), 1)
	obj := w.Spawn(body)

	w.Tick(0.003)
	if obj.Body.LinVel.Y >= 0 {
		t.Errorf("expected downward velocity from gravity, got %f", obj.Body.LinVel.Y)
	}
}

// removeAfterOneTick is a Behavior that queues its own object for
// removal the first time it runs.
type removeAfterOneTick struct{ ticked bool }

func (b *removeAfterOneTick) Update(obj *GameObject, state *TickState) {
	if b.ticked {
		return
	}
	b.ticked = true
	state.Remove(obj.ID)
}

func TestWorldTickProcessesDeleteQueue(t *testing.T) {
	w := NewWorld(testBounds(), config.Defaults)
	body := physics.NewRigidBody(0, physics.NewSphere(1), lin.NewFrame(), 1)
	obj := w.Spawn(body, &removeAfterOneTick{})

	w.Tick(0.003)
	if _, ok := w.Object(obj.ID); ok {
		t.Error("expected object to be removed after its behaviour queued deletion")
	}
	if _, ok := w.physics.Body(physics.ObjectID(uint32(obj.ID))); ok {
		t.Error("expected physics body to be removed along with the game object")
	}
}

// spawnOneChild is a Behavior that queues one new object for addition
// the first time it runs.
type spawnOneChild struct{ spawned bool }

func (b *spawnOneChild) Update(obj *GameObject, state *TickState) {
	if b.spawned {
		return
	}
	b.spawned = true
	child := physics.NewRigidBody(0, physics.NewSphere(1), lin.NewFrame(), 1)
	state.Spawn(child)
}

func TestWorldTickProcessesAddQueue(t *testing.T) {
	w := NewWorld(testBounds(), config.Defaults)
	body := physics.NewRigidBody(0, physics.NewSphere(1), lin.NewFrame(), 1)
	w.Spawn(body, &spawnOneChild{})

	w.Tick(0.003)
	if len(w.objects) != 2 {
		t.Errorf("expected 2 live objects after spawn, got %d", len(w.objects))
	}
}

func TestWorldRaycastFindsSpawnedObject(t *testing.T) {
	w := NewWorld(testBounds(), config.Defaults)
	frame := lin.NewFrame()
	frame.Loc.SetS(10, 0, 0)
	body := physics.NewRigidBody(0, physics.NewSphere(1), frame, 1)
	obj := w.Spawn(body)

	id, _, hit := w.Raycast(lin.V3{}, lin.V3{X: 1})
	if !hit {
		t.Fatal("expected raycast to hit the spawned sphere")
	}
	if id != obj.ID {
		t.Errorf("got id %d, want %d", id, obj.ID)
	}
}
