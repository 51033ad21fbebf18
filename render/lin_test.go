// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package render

import (
	"fmt"
	"strconv"
	"testing"
	"unsafe"

	"github.com/duskforge/aether/math/lin"
)

// Check that golang lays out the data structure as sequential floats.
// Memory structures layout is important as the memory is handed down
// to the c-language graphics layer.
func TestMemoryLayout(t *testing.T) {
	x4 := m4{
		11, 12, 13, 14,
		21, 22, 23, 24,
		31, 32, 33, 34,
		41, 42, 43, 44}
	oneFloat := uint64(unsafe.Sizeof(x4.xx))
	fourFloats := oneFloat * 4
	mema, _ := strconv.ParseUint(fmt.Sprintf("%d", &(x4.xx)), 0, 64)
	memb, _ := strconv.ParseUint(fmt.Sprintf("%d", &(x4.xy)), 0, 64) // next value.
	if memb-mema != oneFloat {
		t.Errorf("Next value should be %d bytes. Was %d", oneFloat, memb-mema)
	}
	memc, _ := strconv.ParseUint(fmt.Sprintf("%d", &(x4.yx)), 0, 64) // next row.
	if memc-mema != fourFloats {
		t.Errorf("Next row should be %d bytes. Was %d", fourFloats, memc-mema)
	}
}

func TestM4BytesRowMajor(t *testing.T) {
	mm := &lin.M4{
		Xx: 1, Xy: 2, Xz: 3, Xw: 4,
		Yx: 5, Yy: 6, Yz: 7, Yw: 8,
		Zx: 9, Zy: 10, Zz: 11, Zw: 12,
		Wx: 13, Wy: 14, Wz: 15, Ww: 16,
	}
	buf := (&m4{}).tom4(mm).bytes()
	if len(buf) != 64 {
		t.Fatalf("expected 64 bytes, got %d", len(buf))
	}
	want := float32(1)
	if got := readF32(buf, 0); got != want {
		t.Errorf("expected first float %v, got %v", want, got)
	}
	if got := readF32(buf, 60); got != 16 {
		t.Errorf("expected last float 16, got %v", got)
	}
}

func TestV3Bytes(t *testing.T) {
	vv := lin.V3{X: 1, Y: 2, Z: 3}
	buf := (&v3{}).set(&vv).bytes()
	if len(buf) != 12 {
		t.Fatalf("expected 12 bytes, got %d", len(buf))
	}
	if got := readF32(buf, 8); got != 3 {
		t.Errorf("expected third float 3, got %v", got)
	}
}

func readF32(buf []byte, off int) float32 {
	bits := uint32(buf[off]) | uint32(buf[off+1])<<8 | uint32(buf[off+2])<<16 | uint32(buf[off+3])<<24
	return *(*float32)(unsafe.Pointer(&bits))
}
