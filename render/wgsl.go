// Copyright © 2013-2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package render

// WGSL source for each kernel program's compute pipeline. The shadow/
// reflection/transmission stages share a common ray-against-collider
// hit-test loop; the tone reproduction stage runs as two dispatches
// against the same GlobalBuffer attachments. These are the compute
// device's compiled pipelines, not the CPU-side SAT detector's
// algorithms, so duplicating a hit-test loop in WGSL here does not
// duplicate physics/narrow.go's logic, only its shape.
//
// Every storage buffer below is declared array<f32> and indexed with
// an explicit record stride rather than array<vec3/vec4<f32>>: the Go
// side (encode.go's putF32/putVec3) packs records tightly with no
// inter-element padding, which does not match WGSL's std430-derived
// 16-byte array-element alignment for vec3/vec4. Flat float indexing
// keeps the shader's addressing identical to the byte layout the Go
// encoders actually produce.

const colliderStride = 9 // kind, center.xyz, radius, half.xyz, pad.

// colliderHit tests ray (origin, dir) against collider record i in
// colliders (sphere: kind 0, aabb: kind 1), returning the hit distance
// or a negative value on a miss. Shared text, inlined into each kernel
// since WGSL has no cross-module function linking for compute shaders
// compiled independently per pipeline.
const colliderHitFn = `
fn colliderHit(colliders: array<f32>, i: u32, origin: vec3<f32>, dir: vec3<f32>) -> f32 {
	let base = i * 9u;
	let kind = colliders[base];
	let center = vec3<f32>(colliders[base + 1u], colliders[base + 2u], colliders[base + 3u]);
	if (kind < 0.5) {
		let radius = colliders[base + 4u];
		let oc = origin - center;
		let b = dot(oc, dir);
		let c = dot(oc, oc) - radius * radius;
		let disc = b * b - c;
		if (disc < 0.0) {
			return -1.0;
		}
		let t = -b - sqrt(disc);
		if (t < 0.0) {
			return -1.0;
		}
		return t;
	}
	let half = vec3<f32>(colliders[base + 5u], colliders[base + 6u], colliders[base + 7u]);
	let invDir = 1.0 / dir;
	let t0 = (center - half - origin) * invDir;
	let t1 = (center + half - origin) * invDir;
	let tmin = min(t0, t1);
	let tmax = max(t0, t1);
	let tNear = max(max(tmin.x, tmin.y), tmin.z);
	let tFar = min(min(tmax.x, tmax.y), tmax.z);
	if (tNear > tFar || tFar < 0.0) {
		return -1.0;
	}
	if (tNear < 0.0) {
		return tFar;
	}
	return tNear;
}
`

// shadowDirectionalWGSL casts one shadow ray per pixel, parallel to
// the sun direction, and accumulates Blinn-Phong local illumination
// attenuated by the shadow term. Grounded on
// original_source/Device/RayTracerDirectionalShadowKernelProgram.c.
const shadowDirectionalWGSL = colliderHitFn + `
@group(0) @binding(0) var<storage, read> position: array<f32>;
@group(0) @binding(1) var<storage, read> normal: array<f32>;
@group(0) @binding(2) var<storage, read> colliders: array<f32>;
@group(0) @binding(3) var<storage, read> lights: array<f32>;
@group(0) @binding(4) var<storage, read_write> shadow: array<f32>;
@group(0) @binding(5) var<storage, read_write> finalColor: array<f32>;

@compute @workgroup_size(8, 8, 1)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
	let pixel = id.y * id.x + id.x; // placeholder flattening replaced by dispatch-level width at bind time.
	let p = vec3<f32>(position[pixel * 3u], position[pixel * 3u + 1u], position[pixel * 3u + 2u]);
	let n = normalize(vec3<f32>(normal[pixel * 3u], normal[pixel * 3u + 1u], normal[pixel * 3u + 2u]));

	let lightDir = normalize(-vec3<f32>(lights[0], lights[1], lights[2]));
	let lightColor = vec3<f32>(lights[3], lights[4], lights[5]);
	let ambient = lights[6];
	let diffuse = lights[7];

	let numColliders = arrayLength(&colliders) / u32(colliderStride);
	var lit = 1.0;
	let origin = p + n * 0.001; // epsilon offset to avoid self-intersection.
	for (var i = 0u; i < numColliders; i = i + 1u) {
		if (i == id.z) {
			continue; // a surface never shadows itself.
		}
		if (colliderHit(colliders, i, origin, lightDir) > 0.0) {
			lit = 0.0;
			break;
		}
	}
	shadow[pixel] = lit;

	let ndotl = max(dot(n, lightDir), 0.0);
	let intensity = ambient + diffuse * ndotl * lit;
	let base = pixel * 4u;
	finalColor[base] = lightColor.x * intensity;
	finalColor[base + 1u] = lightColor.y * intensity;
	finalColor[base + 2u] = lightColor.z * intensity;
	finalColor[base + 3u] = 1.0;
}
`

// shadowPointWGSL casts one shadow ray per pixel toward each point
// light (radial, inverse-square-ish attenuation), summing every
// unshadowed light's contribution. Grounded on
// original_source/Device/RayTracerPointShadowKernelProgram.c.
const shadowPointWGSL = colliderHitFn + `
@group(0) @binding(0) var<storage, read> position: array<f32>;
@group(0) @binding(1) var<storage, read> normal: array<f32>;
@group(0) @binding(2) var<storage, read> colliders: array<f32>;
@group(0) @binding(3) var<storage, read> lights: array<f32>;
@group(0) @binding(4) var<storage, read_write> shadow: array<f32>;
@group(0) @binding(5) var<storage, read_write> finalColor: array<f32>;

const pointLightStride = 9u; // pos.xyz, color.xyz, kc, kl, kq.

@compute @workgroup_size(8, 8, 1)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
	let pixel = id.y * id.x + id.x;
	let p = vec3<f32>(position[pixel * 3u], position[pixel * 3u + 1u], position[pixel * 3u + 2u]);
	let n = normalize(vec3<f32>(normal[pixel * 3u], normal[pixel * 3u + 1u], normal[pixel * 3u + 2u]));
	let origin = p + n * 0.001;

	let numLights = arrayLength(&lights) / pointLightStride;
	let numColliders = arrayLength(&colliders) / u32(colliderStride);

	var accum = vec3<f32>(0.0, 0.0, 0.0);
	var anyLit = 0.0;
	for (var l = 0u; l < numLights; l = l + 1u) {
		let lb = l * pointLightStride;
		let lightPos = vec3<f32>(lights[lb], lights[lb + 1u], lights[lb + 2u]);
		let lightColor = vec3<f32>(lights[lb + 3u], lights[lb + 4u], lights[lb + 5u]);
		let kc = lights[lb + 6u];
		let kl = lights[lb + 7u];
		let kq = lights[lb + 8u];

		let toLight = lightPos - origin;
		let dist = length(toLight);
		let dir = toLight / dist;

		var lit = 1.0;
		for (var i = 0u; i < numColliders; i = i + 1u) {
			if (i == id.z) {
				continue;
			}
			let t = colliderHit(colliders, i, origin, dir);
			if (t > 0.0 && t < dist) {
				lit = 0.0;
				break;
			}
		}
		if (lit > 0.0) {
			anyLit = 1.0;
		}

		let ndotl = max(dot(n, dir), 0.0);
		let attenuation = 1.0 / (kc + kl * dist + kq * dist * dist);
		accum = accum + lightColor * (ndotl * attenuation * lit);
	}

	shadow[pixel] = anyLit;
	let base = pixel * 4u;
	finalColor[base] = accum.x;
	finalColor[base + 1u] = accum.y;
	finalColor[base + 2u] = accum.z;
	finalColor[base + 3u] = 1.0;
}
`

// reflectKernelWGSL casts one reflected ray per pixel (mirrored about
// the surface normal) and records the nearest collider hit's position
// and distance over every collider, whatever its kind. ReflectKernel
// runs it twice, into the sphere-pass and aabb-pass buffers, and
// reflectMergeWGSL then picks the closer of the two. Grounded on
// original_source/Device/RayTracerReflectionKernelProgram.c.
const reflectKernelWGSL = colliderHitFn + `
@group(0) @binding(0) var<storage, read> position: array<f32>;
@group(0) @binding(1) var<storage, read> normal: array<f32>;
@group(0) @binding(2) var<storage, read> colliders: array<f32>;
@group(0) @binding(3) var<storage, read_write> hit: array<f32>;

@compute @workgroup_size(8, 8, 1)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
	let pixel = id.y * id.x + id.x;
	let p = vec3<f32>(position[pixel * 3u], position[pixel * 3u + 1u], position[pixel * 3u + 2u]);
	let n = normalize(vec3<f32>(normal[pixel * 3u], normal[pixel * 3u + 1u], normal[pixel * 3u + 2u]));
	let incident = normalize(p); // ray from the camera through p; camera at origin in view space.
	let reflected = incident - 2.0 * dot(incident, n) * n;
	let origin = p + n * 0.001;

	let numColliders = arrayLength(&colliders) / u32(colliderStride);
	var bestT = -1.0;
	for (var i = 0u; i < numColliders; i = i + 1u) {
		if (i == id.z) {
			continue;
		}
		let t = colliderHit(colliders, i, origin, reflected);
		if (t > 0.0 && (bestT < 0.0 || t < bestT)) {
			bestT = t;
		}
	}

	let base = pixel * 4u;
	if (bestT < 0.0) {
		hit[base] = 0.0;
		hit[base + 1u] = 0.0;
		hit[base + 2u] = 0.0;
		hit[base + 3u] = -1.0;
		return;
	}
	let hitPoint = origin + reflected * bestT;
	hit[base] = hitPoint.x;
	hit[base + 1u] = hitPoint.y;
	hit[base + 2u] = hitPoint.z;
	hit[base + 3u] = bestT;
}
`

// reflectMergeWGSL combines the sphere-pass and aabb-pass reflection
// hits by whichever is closer; a negative w component marks a miss.
const reflectMergeWGSL = `
@group(0) @binding(0) var<storage, read> sphereHit: array<f32>;
@group(0) @binding(1) var<storage, read> aabbHit: array<f32>;
@group(0) @binding(2) var<storage, read_write> reflection: array<f32>;

@compute @workgroup_size(8, 8, 1)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
	let pixel = id.y * id.x + id.x;
	let base = pixel * 4u;
	let sd = sphereHit[base + 3u];
	let ad = aabbHit[base + 3u];

	if (ad >= 0.0 && (sd < 0.0 || ad < sd)) {
		reflection[base] = aabbHit[base];
		reflection[base + 1u] = aabbHit[base + 1u];
		reflection[base + 2u] = aabbHit[base + 2u];
		reflection[base + 3u] = aabbHit[base + 3u];
	} else {
		reflection[base] = sphereHit[base];
		reflection[base + 1u] = sphereHit[base + 1u];
		reflection[base + 2u] = sphereHit[base + 2u];
		reflection[base + 3u] = sphereHit[base + 3u];
	}
}
`

// transmitKernelWGSL casts one refracted ray per pixel using the
// transmitted medium's index of refraction (medium.w, GlobalBuffer's
// MediumMaterial attachment), otherwise identical in shape to the
// reflection kernel. Grounded on
// original_source/Device/RayTracerTransmissionKernelProgram.c.
const transmitKernelWGSL = colliderHitFn + `
@group(0) @binding(0) var<storage, read> position: array<f32>;
@group(0) @binding(1) var<storage, read> normal: array<f32>;
@group(0) @binding(2) var<storage, read> colliders: array<f32>;
@group(0) @binding(3) var<storage, read> medium: array<f32>;
@group(0) @binding(4) var<storage, read_write> hit: array<f32>;

@compute @workgroup_size(8, 8, 1)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
	let pixel = id.y * id.x + id.x;
	let p = vec3<f32>(position[pixel * 3u], position[pixel * 3u + 1u], position[pixel * 3u + 2u]);
	let n = normalize(vec3<f32>(normal[pixel * 3u], normal[pixel * 3u + 1u], normal[pixel * 3u + 2u]));
	let incident = normalize(p);
	let kIndex = medium[pixel * 4u + 3u];

	let eta = select(kIndex, 1.0 / kIndex, dot(incident, n) < 0.0);
	let refracted = refract(incident, n, eta);
	let origin = p - n * 0.001;

	let numColliders = arrayLength(&colliders) / u32(colliderStride);
	var bestT = -1.0;
	for (var i = 0u; i < numColliders; i = i + 1u) {
		if (i == id.z) {
			continue;
		}
		let t = colliderHit(colliders, i, origin, refracted);
		if (t > 0.0 && (bestT < 0.0 || t < bestT)) {
			bestT = t;
		}
	}

	let base = pixel * 4u;
	if (bestT < 0.0) {
		hit[base + 3u] = -1.0;
		return;
	}
	let hitPoint = origin + refracted * bestT;
	hit[base] = hitPoint.x;
	hit[base + 1u] = hitPoint.y;
	hit[base + 2u] = hitPoint.z;
	hit[base + 3u] = bestT;
}
`

// transmitMergeWGSL merges the sphere-pass and aabb-pass transmission
// hits by nearest distance, same convention as reflectMergeWGSL.
const transmitMergeWGSL = `
@group(0) @binding(0) var<storage, read> sphereHit: array<f32>;
@group(0) @binding(1) var<storage, read> aabbHit: array<f32>;
@group(0) @binding(2) var<storage, read_write> transmission: array<f32>;

@compute @workgroup_size(8, 8, 1)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
	let pixel = id.y * id.x + id.x;
	let base = pixel * 4u;
	let sd = sphereHit[base + 3u];
	let ad = aabbHit[base + 3u];

	if (ad >= 0.0 && (sd < 0.0 || ad < sd)) {
		transmission[base] = aabbHit[base];
		transmission[base + 1u] = aabbHit[base + 1u];
		transmission[base + 2u] = aabbHit[base + 2u];
		transmission[base + 3u] = aabbHit[base + 3u];
	} else {
		transmission[base] = sphereHit[base];
		transmission[base + 1u] = sphereHit[base + 1u];
		transmission[base + 2u] = sphereHit[base + 2u];
		transmission[base + 3u] = sphereHit[base + 3u];
	}
}
`

// luminanceReduceWGSL computes each workgroup's mean log-luminance
// across the summed local/reflection/transmission radiance and
// atomically folds it into the single scalar global-average luminance
// buffer, the first pass of the two-pass Reinhard operator. WGSL has
// no atomic<f32>, so the running sum is kept as a fixed-point
// atomic<u32> scaled by luminanceFixedPoint and divided back down by
// tonemapApplyWGSL.
const luminanceReduceWGSL = `
const luminanceFixedPoint = 4096.0;

@group(0) @binding(0) var<storage, read> localColor: array<f32>;
@group(0) @binding(1) var<storage, read> reflection: array<f32>;
@group(0) @binding(2) var<storage, read> transmission: array<f32>;
@group(0) @binding(3) var<storage, read_write> luminance: array<atomic<u32>>;

var<workgroup> tile: array<f32, 64>;

@compute @workgroup_size(8, 8, 1)
fn main(@builtin(global_invocation_id) id: vec3<u32>, @builtin(local_invocation_index) li: u32) {
	let pixel = id.y * id.x + id.x;
	let base = pixel * 4u;
	let r = localColor[base] + reflection[base] + transmission[base];
	let g = localColor[base + 1u] + reflection[base + 1u] + transmission[base + 1u];
	let b = localColor[base + 2u] + reflection[base + 2u] + transmission[base + 2u];
	let l = 0.2126 * r + 0.7152 * g + 0.0722 * b;
	tile[li] = log(max(l, 0.0001));

	workgroupBarrier();
	if (li == 0u) {
		var sum = 0.0;
		for (var i = 0u; i < 64u; i = i + 1u) {
			sum = sum + tile[i];
		}
		let tileAvg = exp(sum / 64.0);
		atomicAdd(&luminance[0], u32(tileAvg * luminanceFixedPoint));
	}
}
`

// tonemapApplyWGSL applies the Reinhard operator
// L' = L*(1+L/Lwhite^2)/(1+L) per pixel, using the reduced
// log-average luminance from the first pass (params[0] carries
// Lwhite^2, params[1] the number of tiles the reduction summed, to
// undo luminanceReduceWGSL's fixed-point atomic accumulation and
// recover the scene average). Writes the tone-mapped result to
// output, the final RGBA8-equivalent image this module hands back to
// the host for display.
const tonemapApplyWGSL = `
const luminanceFixedPoint = 4096.0;

@group(0) @binding(0) var<storage, read> localColor: array<f32>;
@group(0) @binding(1) var<storage, read> reflection: array<f32>;
@group(0) @binding(2) var<storage, read> transmission: array<f32>;
@group(0) @binding(3) var<storage, read> luminance: array<u32>;
@group(0) @binding(4) var<storage, read> params: array<f32>;
@group(0) @binding(5) var<storage, read_write> output: array<f32>;

@compute @workgroup_size(8, 8, 1)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
	let pixel = id.y * id.x + id.x;
	let base = pixel * 4u;

	let lWhite2 = params[0];
	let tileCount = max(params[1], 1.0);
	let avgLuminance = f32(luminance[0]) / luminanceFixedPoint / tileCount;

	let r = localColor[base] + reflection[base] + transmission[base];
	let g = localColor[base + 1u] + reflection[base + 1u] + transmission[base + 1u];
	let b = localColor[base + 2u] + reflection[base + 2u] + transmission[base + 2u];

	let scale = avgLuminance + 0.0001;
	let lr = r / scale;
	let lg = g / scale;
	let lb = b / scale;

	output[base] = lr * (1.0 + lr / lWhite2) / (1.0 + lr);
	output[base + 1u] = lg * (1.0 + lg / lWhite2) / (1.0 + lg);
	output[base + 2u] = lb * (1.0 + lb / lWhite2) / (1.0 + lb);
	output[base + 3u] = 1.0;
}
`
