package webgpu

import (
	"encoding/binary"
	"math"
)

// Every uniform block is 16 bytes of 4-byte scalars, laid out in the field
// order of the shader's Params struct.
const uniformSize = 16

// spmmParams packs Params{n, s, alpha, beta} of the spmm shaders.
func spmmParams(n, s uint32, alpha, beta float32) []byte {
	buf := make([]byte, uniformSize)
	binary.LittleEndian.PutUint32(buf[0:], n)
	binary.LittleEndian.PutUint32(buf[4:], s)
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(alpha))
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(beta))
	return buf
}

// axpbyParams packs Params{size, _pad, alpha, beta} of axpbyShader.
func axpbyParams(size uint32, alpha, beta float32) []byte {
	buf := make([]byte, uniformSize)
	binary.LittleEndian.PutUint32(buf[0:], size)
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(alpha))
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(beta))
	return buf
}

// dotParams packs Params{size, offset, _pad0, _pad1} of dotShader.
func dotParams(size, offset uint32) []byte {
	buf := make([]byte, uniformSize)
	binary.LittleEndian.PutUint32(buf[0:], size)
	binary.LittleEndian.PutUint32(buf[4:], offset)
	return buf
}
