//go:build windows

package webgpu

import (
	"github.com/go-webgpu/webgpu/wgpu"
)

// CommandBatch records copies and compute passes into a single encoder and
// submits them together. Temporary uniform buffers and bind groups live
// until Submit.
type CommandBatch struct {
	dev     *Device
	encoder *wgpu.CommandEncoder
	ops     int

	uniforms []*wgpu.Buffer
	groups   []*wgpu.BindGroup
}

// NewBatch creates a new command batch.
func (d *Device) NewBatch() *CommandBatch {
	return &CommandBatch{
		dev:     d,
		encoder: d.device.CreateCommandEncoder(nil),
	}
}

// Copy records dst[:src.size] = src[:src.size].
func (batch *CommandBatch) Copy(dst, src *deviceBuffer) {
	batch.encoder.CopyBufferToBuffer(src.buf, 0, dst.buf, 0, src.size)
	batch.ops++
}

// Dispatch records one compute pass of the named shader over n invocations.
// params is bound as a uniform after the storage entries.
func (batch *CommandBatch) Dispatch(name, code string, n int, params []byte, entries ...wgpu.BindGroupEntry) uint32 {
	pipeline := batch.dev.pipeline(name, code)

	uniform := batch.dev.createUniformBuffer(params)
	batch.uniforms = append(batch.uniforms, uniform)
	//nolint:gosec // G115: binding slots are small
	entries = append(entries, wgpu.BufferBindingEntry(uint32(len(entries)), uniform, 0, uniformSize))

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := batch.dev.device.CreateBindGroupSimple(bindGroupLayout, entries)
	batch.groups = append(batch.groups, bindGroup)

	wg := workgroups(n)
	computePass := batch.encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	computePass.DispatchWorkgroups(wg, 1, 1)
	computePass.End()

	batch.ops++
	return wg
}

// Submit executes all recorded operations in a single queue submission.
// The batch is consumed.
func (batch *CommandBatch) Submit() {
	cmdBuffer := batch.encoder.Finish(nil)
	batch.dev.queue.Submit(cmdBuffer)

	for _, g := range batch.groups {
		g.Release()
	}
	for _, u := range batch.uniforms {
		u.Release()
	}
	batch.groups = nil
	batch.uniforms = nil
}

// Count returns the number of recorded operations.
func (batch *CommandBatch) Count() int {
	return batch.ops
}
