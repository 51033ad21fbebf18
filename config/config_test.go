// SPDX-FileCopyrightText : © 2022-2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package config

import "testing"

func TestNewAppliesDefaults(t *testing.T) {
	cfg := New()
	if cfg != Defaults {
		t.Errorf("got %+v want %+v", cfg, Defaults)
	}
}

func TestAttrOverrides(t *testing.T) {
	cfg := New(
		MaxSubTick(0.001),
		SolverIterations(4),
		OctreeLeafBodies(16),
		OctreeMaxDepth(8),
		RebuildEvery(10),
		ToneMapWhitePoint(2.5),
	)
	if cfg.MaxSubTick != 0.001 {
		t.Errorf("MaxSubTick = %v, want 0.001", cfg.MaxSubTick)
	}
	if cfg.SolverIterations != 4 {
		t.Errorf("SolverIterations = %d, want 4", cfg.SolverIterations)
	}
	if cfg.OctreeLeafBodies != 16 {
		t.Errorf("OctreeLeafBodies = %d, want 16", cfg.OctreeLeafBodies)
	}
	if cfg.OctreeMaxDepth != 8 {
		t.Errorf("OctreeMaxDepth = %d, want 8", cfg.OctreeMaxDepth)
	}
	if cfg.RebuildEvery != 10 {
		t.Errorf("RebuildEvery = %d, want 10", cfg.RebuildEvery)
	}
	if cfg.ToneMapWhitePoint != 2.5 {
		t.Errorf("ToneMapWhitePoint = %v, want 2.5", cfg.ToneMapWhitePoint)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
