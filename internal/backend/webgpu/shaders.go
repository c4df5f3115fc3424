package webgpu

// workgroupSize is the number of invocations per workgroup in every shader.
// Shaders iterate with a grid stride so large blocks fit the dispatch limit.
const workgroupSize = 256

// spmmRealShader computes C = alpha*H*B + beta*C for CSR H and row-major
// n×s blocks B, C. beta == 0 overwrites C without reading it.
const spmmRealShader = `
struct Params {
    n: u32,
    s: u32,
    alpha: f32,
    beta: f32,
}
@group(0) @binding(0) var<storage, read> row_ptr: array<u32>;
@group(0) @binding(1) var<storage, read> col_idx: array<u32>;
@group(0) @binding(2) var<storage, read> val: array<f32>;
@group(0) @binding(3) var<storage, read> b: array<f32>;
@group(0) @binding(4) var<storage, read_write> c: array<f32>;
@group(0) @binding(5) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>, @builtin(num_workgroups) nwg: vec3<u32>) {
    let total = params.n * params.s;
    let stride = nwg.x * 256u;
    for (var idx = gid.x; idx < total; idx = idx + stride) {
        let i = idx / params.s;
        let col = idx % params.s;
        var acc = 0.0;
        for (var k = row_ptr[i]; k < row_ptr[i + 1u]; k = k + 1u) {
            acc = acc + val[k] * b[col_idx[k] * params.s + col];
        }
        if (params.beta == 0.0) {
            c[idx] = params.alpha * acc;
        } else {
            c[idx] = params.alpha * acc + params.beta * c[idx];
        }
    }
}
`

// spmmComplexShader is spmmRealShader over interleaved complex values.
// alpha and beta are real.
const spmmComplexShader = `
struct Params {
    n: u32,
    s: u32,
    alpha: f32,
    beta: f32,
}
@group(0) @binding(0) var<storage, read> row_ptr: array<u32>;
@group(0) @binding(1) var<storage, read> col_idx: array<u32>;
@group(0) @binding(2) var<storage, read> val: array<vec2<f32>>;
@group(0) @binding(3) var<storage, read> b: array<vec2<f32>>;
@group(0) @binding(4) var<storage, read_write> c: array<vec2<f32>>;
@group(0) @binding(5) var<uniform> params: Params;

fn cmul(x: vec2<f32>, y: vec2<f32>) -> vec2<f32> {
    return vec2<f32>(x.x * y.x - x.y * y.y, x.x * y.y + x.y * y.x);
}

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>, @builtin(num_workgroups) nwg: vec3<u32>) {
    let total = params.n * params.s;
    let stride = nwg.x * 256u;
    for (var idx = gid.x; idx < total; idx = idx + stride) {
        let i = idx / params.s;
        let col = idx % params.s;
        var acc = vec2<f32>(0.0, 0.0);
        for (var k = row_ptr[i]; k < row_ptr[i + 1u]; k = k + 1u) {
            acc = acc + cmul(val[k], b[col_idx[k] * params.s + col]);
        }
        if (params.beta == 0.0) {
            c[idx] = params.alpha * acc;
        } else {
            c[idx] = params.alpha * acc + params.beta * c[idx];
        }
    }
}
`

// axpbyShader computes y = alpha*x + beta*y over raw float components.
// beta == 0 overwrites y without reading it.
const axpbyShader = `
struct Params {
    size: u32,
    _pad: u32,
    alpha: f32,
    beta: f32,
}
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> y: array<f32>;
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>, @builtin(num_workgroups) nwg: vec3<u32>) {
    let stride = nwg.x * 256u;
    for (var idx = gid.x; idx < params.size; idx = idx + stride) {
        if (params.beta == 0.0) {
            y[idx] = params.alpha * x[idx];
        } else {
            y[idx] = params.alpha * x[idx] + params.beta * y[idx];
        }
    }
}
`

// dotShader writes one partial sum of x·y per workgroup to
// partial[offset + workgroup_id]. Over interleaved complex data this is
// Re Σ conj(x)·y.
const dotShader = `
struct Params {
    size: u32,
    offset: u32,
    _pad0: u32,
    _pad1: u32,
}
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read> y: array<f32>;
@group(0) @binding(2) var<storage, read_write> partial: array<f32>;
@group(0) @binding(3) var<uniform> params: Params;

var<workgroup> scratch: array<f32, 256>;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>,
        @builtin(local_invocation_id) lid: vec3<u32>,
        @builtin(workgroup_id) wid: vec3<u32>,
        @builtin(num_workgroups) nwg: vec3<u32>) {
    let stride = nwg.x * 256u;
    var acc = 0.0;
    for (var idx = gid.x; idx < params.size; idx = idx + stride) {
        acc = acc + x[idx] * y[idx];
    }
    scratch[lid.x] = acc;
    workgroupBarrier();

    for (var off = 128u; off > 0u; off = off >> 1u) {
        if (lid.x < off) {
            scratch[lid.x] = scratch[lid.x] + scratch[lid.x + off];
        }
        workgroupBarrier();
    }
    if (lid.x == 0u) {
        partial[params.offset + wid.x] = scratch[0];
    }
}
`
