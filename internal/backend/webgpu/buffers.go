//go:build windows

package webgpu

import (
	"github.com/go-webgpu/webgpu/wgpu"
)

const storageUsage = wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst

// deviceBuffer is a grow-only device allocation. capacity is what was
// allocated, size is the part in use by the current engine state.
type deviceBuffer struct {
	buf      *wgpu.Buffer
	capacity uint64
	size     uint64
}

// binding returns a bind group entry covering the in-use part of b.
func (b *deviceBuffer) binding(slot uint32) wgpu.BindGroupEntry {
	return wgpu.BufferBindingEntry(slot, b.buf, 0, b.size)
}

// ensure sets the in-use size of b, reallocating only when size exceeds the
// current capacity. Contents are not preserved across a reallocation.
func (d *Device) ensure(b *deviceBuffer, size uint64) bool {
	// Bindings and copies must be non-empty and 4-byte aligned.
	size = max((size+3)&^3, 4)
	b.size = size
	if size <= b.capacity {
		return false
	}

	if b.buf != nil {
		b.buf.Release()
		d.stats.AllocatedSize -= b.capacity
	}
	b.buf = d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: storageUsage,
		Size:  size,
	})
	b.capacity = size
	d.stats.Allocations++
	d.stats.AllocatedSize += size
	return true
}

// upload resizes b to len(data) and copies data into it through a mapped
// staging buffer.
func (d *Device) upload(b *deviceBuffer, data []byte) {
	d.ensure(b, uint64(len(data)))
	staging := d.createBuffer(padBytes(data, int(b.size)), wgpu.BufferUsageCopySrc) //nolint:gosec // G115: size derived from len
	defer staging.Release()

	encoder := d.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(staging, 0, b.buf, 0, b.size)
	cmdBuffer := encoder.Finish(nil)
	d.queue.Submit(cmdBuffer)
	d.stats.Uploads++
}

// free releases b. Safe to call on a never-allocated buffer.
func (d *Device) free(b *deviceBuffer) {
	if b.buf != nil {
		b.buf.Release()
		d.stats.AllocatedSize -= b.capacity
	}
	*b = deviceBuffer{}
}

// padBytes zero-extends data to n bytes.
func padBytes(data []byte, n int) []byte {
	if len(data) >= n {
		return data[:n]
	}
	return append(data, make([]byte, n-len(data))...)
}
