// Copyright © 2024 Galvanized Logic Inc.

package render

import (
	"testing"

	"github.com/duskforge/aether/math/lin"
)

func TestPassSetCamera(t *testing.T) {
	rp := NewPass()
	proj := lin.M4{Xx: 1, Yy: 1, Zz: 1, Ww: 1}
	view := lin.M4{Xx: 1, Yy: 1, Zz: 1, Ww: 1}
	rp.SetCamera(&proj, &view, lin.V3{X: 0, Y: 2, Z: -5})
	if len(rp.Uniforms[PROJ]) != 64 {
		t.Errorf("expected 64 byte PROJ, got %d", len(rp.Uniforms[PROJ]))
	}
	if len(rp.Uniforms[VIEW]) != 64 {
		t.Errorf("expected 64 byte VIEW, got %d", len(rp.Uniforms[VIEW]))
	}
	if len(rp.Uniforms[CAM]) != 12 {
		t.Errorf("expected 12 byte CAM, got %d", len(rp.Uniforms[CAM]))
	}
}

func TestPassSetLightsCountsActiveLights(t *testing.T) {
	rp := NewPass()
	rp.Lights[0] = Light{Kind: DirectionalLightKind, X: 0, Y: -1, Z: 0, R: 1, G: 1, B: 1}
	rp.SetLights()
	if len(rp.Uniforms[NLIGHTS]) != 4 {
		t.Fatalf("expected 4 byte NLIGHTS, got %d", len(rp.Uniforms[NLIGHTS]))
	}
	if got := readF32(rp.Uniforms[NLIGHTS], 0); got != 1 {
		t.Errorf("expected 1 active light, got %v", got)
	}
	wantStride := 4 + 12 + 12 + 12
	if len(rp.Uniforms[LIGHTS]) != len(rp.Lights)*wantStride {
		t.Errorf("expected %d byte LIGHTS, got %d", len(rp.Lights)*wantStride, len(rp.Uniforms[LIGHTS]))
	}
}
