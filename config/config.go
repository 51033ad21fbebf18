// SPDX-FileCopyrightText : © 2022-2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package config reduces the engine's tuning-knob footprint using
// functional options, the way the teacher's top-level config.go
// reduced NewEngine's footprint for window attributes.
// See: http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the engine's physics and render tuning constants.
// Unset fields take the values in Defaults. The physics and render
// packages do not read a Config: they run on their own compile-time
// constants, and World only stores and logs the Config it is given.
type Config struct {
	// integrator
	MaxSubTick float64 `yaml:"max_sub_tick"` // sub-tick clamp, seconds.

	// resolver
	SolverIterations int `yaml:"solver_iterations"`

	// spatial index
	OctreeMaxDepth   int `yaml:"octree_max_depth"`
	OctreeLeafBodies int `yaml:"octree_leaf_bodies"`
	RebuildEvery     int `yaml:"rebuild_every"`

	// contact manifold
	ContactBreakingTolerance float64 `yaml:"contact_breaking_tolerance"`
	ManifoldMaxContacts      int     `yaml:"manifold_max_contacts"`

	// render
	ToneMapWhitePoint float32 `yaml:"tonemap_white_point"`
}

// Defaults provides reasonable values so the engine runs even if no
// configuration attributes are set.
var Defaults = Config{
	MaxSubTick:               0.003,
	SolverIterations:         1,
	OctreeMaxDepth:           6,
	OctreeLeafBodies:         8,
	RebuildEvery:             30,
	ContactBreakingTolerance: 0.02,
	ManifoldMaxContacts:      4,
	ToneMapWhitePoint:        4.0,
}

// Attr defines an optional tuning override.
//
//	cfg := config.New(
//	    config.MaxSubTick(0.002),
//	    config.OctreeLeafBodies(16),
//	)
type Attr func(*Config)

// New builds a Config starting from Defaults and applying each Attr
// in order.
func New(attrs ...Attr) Config {
	cfg := Defaults
	for _, attr := range attrs {
		attr(&cfg)
	}
	return cfg
}

// MaxSubTick overrides the integrator's sub-tick clamp.
func MaxSubTick(seconds float64) Attr {
	return func(c *Config) { c.MaxSubTick = seconds }
}

// SolverIterations overrides the Config's solver iteration count. The
// resolver is single-pass and has no iteration count of its own.
func SolverIterations(n int) Attr {
	return func(c *Config) { c.SolverIterations = n }
}

// OctreeLeafBodies overrides the spatial index's per-leaf body capacity
// before a node splits.
func OctreeLeafBodies(n int) Attr {
	return func(c *Config) { c.OctreeLeafBodies = n }
}

// OctreeMaxDepth overrides the spatial index's maximum split depth.
func OctreeMaxDepth(n int) Attr {
	return func(c *Config) { c.OctreeMaxDepth = n }
}

// RebuildEvery overrides the spatial index's full-rebuild tick cadence.
func RebuildEvery(ticks int) Attr {
	return func(c *Config) { c.RebuildEvery = ticks }
}

// ToneMapWhitePoint overrides the render pipeline's Reinhard white point.
func ToneMapWhitePoint(lWhite float32) Attr {
	return func(c *Config) { c.ToneMapWhitePoint = lWhite }
}

// Load reads a yaml Config file from path, starting from Defaults for
// any field the file omits.
func Load(path string) (Config, error) {
	cfg := Defaults
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
