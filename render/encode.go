// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package render

import "encoding/binary"
import "math"

// putF32 writes v as little-endian IEEE-754 bits at buf[off:off+4],
// the layout every kernel's WGSL uniform/storage buffer expects.
func putF32(buf []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
}

// putVec3 writes a tightly packed [3]float32 at buf[off:off+12].
func putVec3(buf []byte, off int, v [3]float32) {
	putF32(buf, off, v[0])
	putF32(buf, off+4, v[1])
	putF32(buf, off+8, v[2])
}
