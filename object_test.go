// Copyright © 2017-2024 Galvanized Logic Inc.

package aether

import "testing"

func TestObjectPoolCreateIsValid(t *testing.T) {
	p := newObjectPool()
	id := p.create()
	if id == 0 {
		t.Fatal("create returned zero id")
	}
	if !p.valid(id) {
		t.Error("expected freshly created id to be valid")
	}
}

func TestObjectPoolDisposeInvalidatesID(t *testing.T) {
	p := newObjectPool()
	id := p.create()
	p.dispose(id)
	if p.valid(id) {
		t.Error("expected disposed id to be invalid")
	}
}

func TestObjectPoolZeroIDIsNeverValid(t *testing.T) {
	p := newObjectPool()
	if p.valid(ObjectID(0)) {
		t.Error("expected zero id to be invalid")
	}
}

func TestObjectPoolRecycledIDGetsNewEdition(t *testing.T) {
	p := newObjectPool()
	ids := make([]ObjectID, 0, maxFree+1)
	for i := 0; i < maxFree+1; i++ {
		ids = append(ids, p.create())
	}
	first := ids[0]
	for _, id := range ids {
		p.dispose(id)
	}
	recycled := p.create()
	if recycled.id() != first.id() {
		t.Fatalf("expected recycled id to reuse slot %d, got %d", first.id(), recycled.id())
	}
	if recycled.edition() == first.edition() {
		t.Error("expected recycled id to carry a new edition")
	}
	if p.valid(first) {
		t.Error("stale handle to recycled slot must not read as valid")
	}
	if !p.valid(recycled) {
		t.Error("recycled handle must be valid")
	}
}

func TestObjectPoolIndependentIDs(t *testing.T) {
	p := newObjectPool()
	a := p.create()
	b := p.create()
	if a == b {
		t.Fatal("expected distinct ids from successive create calls")
	}
	p.dispose(a)
	if !p.valid(b) {
		t.Error("disposing one id must not invalidate another live id")
	}
}
