// SPDX-FileCopyrightText : © 2022-2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

// uniform.go defines the pass- and packet-level uniform slot enums
// the teacher's render package imported from its asset-description
// package `load` (PassUniform/PacketUniform). Asset loading is out of
// scope here, so the two enums are redefined locally with the same
// slot semantics, keeping render free of any asset-loading import.

// PassUniform is scene level data shared by every packet in a pass.
type PassUniform uint8

const (
	PROJ         PassUniform = iota // projection matrix.
	VIEW                            // view matrix.
	CAM                             // camera world position.
	LIGHTS                          // packed light array.
	NLIGHTS                         // active light count.
	PassUniforms                    // must be last.
)

// PacketUniform is per-model data supplied with one draw call.
type PacketUniform uint8

const (
	MODEL          PacketUniform = iota // model matrix.
	SCALE                               // per-axis scale.
	COLOR                               // tint colour.
	MATERIAL                            // ambient/diffuse/specular/shininess.
	PacketUniforms                      // must be last.
)
