// Copyright © 2024 Galvanized Logic Inc.

package lin

import (
	"fmt"
	"testing"
)

func (r *Rotor) Dump() string { return fmt.Sprintf("%2.9f", *r) }

func TestRotorIdentityRotate(t *testing.T) {
	r := NewRotor()
	v, want := &V3{1, 2, 3}, &V3{1, 2, 3}
	if !r.Rotate(v, v).Aeq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestRotorMatchesQuaternionRotation(t *testing.T) {
	r := NewRotor().SetAa(0, 1, 0, Rad(90))

	v := &V3{1, 0, 0}
	got := r.Rotate(&V3{}, v)
	want := &V3{0, 0, -1} // rotating +X by +90deg around Y.
	if !got.Aeq(want) {
		t.Errorf(format, got.Dump(), want.Dump())
	}
}

func TestRotorCompose(t *testing.T) {
	a := NewRotor().SetAa(0, 0, 1, Rad(90))
	b := NewRotor().SetAa(0, 0, 1, Rad(90))
	c := NewRotor().Mult(a, b) // two 90 degree turns == one 180 degree turn.
	want := NewRotor().SetAa(0, 0, 1, Rad(180))
	if !c.Aeq(want) && !c.Aeq(&Rotor{S: -want.S, E23: -want.E23, E31: -want.E31, E12: -want.E12}) {
		t.Errorf(format, c.Dump(), want.Dump())
	}
}

func (r *Rotor) Aeq(s *Rotor) bool {
	return Aeq(r.S, s.S) && Aeq(r.E23, s.E23) && Aeq(r.E31, s.E31) && Aeq(r.E12, s.E12)
}

func TestRotorQuaternionRoundTrip(t *testing.T) {
	q := NewQ().SetAa(1, 1, 0, Rad(42))
	r := NewRotor().SetQ(q)
	back := r.Q()
	if !back.Aeq(q) {
		t.Errorf(format, back.Dump(), q.Dump())
	}
}

func TestMultivectorVectorProductIsAssociative(t *testing.T) {
	a, b, c := &MV{}, &MV{}, &MV{}
	a.FromVector(&V3{1, 0, 0})
	b.FromVector(&V3{0, 1, 0})
	ab := (&MV{}).Mult(a, b)
	c.FromVector(&V3{0, 0, 1})
	left := (&MV{}).Mult(ab, c)
	bc := (&MV{}).Mult(b, c)
	right := (&MV{}).Mult(a, bc)
	if !Aeq(left.S, right.S) || !Aeq(left.E123, right.E123) {
		t.Errorf(format, fmt.Sprintf("%+v", left), fmt.Sprintf("%+v", right))
	}
}
