package vm

import "github.com/hexaflex/gob8/arch"

// FrameBuffers holds the two display buffers. One of them is the work
// buffer, written by draw and clear. The other is the front buffer,
// which is presented to the user. Swap exchanges their roles.
type FrameBuffers struct {
	buffers [2][arch.DisplaySize]byte
	work    int
}

// Work returns the buffer currently being drawn into.
func (fb *FrameBuffers) Work() []byte {
	return fb.buffers[fb.work][:]
}

// Front returns the buffer currently eligible for presentation.
// The slice remains valid until the next swap.
func (fb *FrameBuffers) Front() []byte {
	return fb.buffers[1-fb.work][:]
}

// Swap exchanges the roles of the work and front buffers.
func (fb *FrameBuffers) Swap() {
	fb.work = 1 - fb.work
}

// Clear zeroes the work buffer.
func (fb *FrameBuffers) Clear() {
	fb.buffers[fb.work] = [arch.DisplaySize]byte{}
}

// reset zeroes both buffers and restores the initial roles.
func (fb *FrameBuffers) reset() {
	*fb = FrameBuffers{}
}
