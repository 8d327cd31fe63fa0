// ABOUTME: Byte FIFO that converts float frames and emits fixed-size chunks
// ABOUTME: Grow-only buffering, synchronous drain, remainder carried across calls
package chunker

import (
	"github.com/spacemit-robotics/audio/pkg/audio"
)

// MinFramesPerBuffer is the smallest frame block worth requesting from a
// hardware device; smaller blocks degenerate into per-sample callbacks.
const MinFramesPerBuffer = 64

// ChunkFunc receives one complete chunk. The slice is owned by the
// Accumulator and only valid for the duration of the call; it must not be
// retained, and the callback must not call back into the Accumulator.
type ChunkFunc func(chunk []byte)

// Accumulator buffers converted PCM16 bytes and emits them as fixed-size
// chunks. It is driven synchronously by a single stream and is not safe
// for concurrent use.
type Accumulator struct {
	chunkSize int
	fn        ChunkFunc
	buf       []byte // FIFO; below chunkSize after every drain
}

// New creates an accumulator emitting chunks of chunkSize bytes to fn.
// A non-positive chunkSize falls back to the process-wide default.
func New(chunkSize int, fn ChunkFunc) *Accumulator {
	if chunkSize <= 0 {
		chunkSize = audio.GetDefaults().ChunkSize
	}
	return &Accumulator{
		chunkSize: chunkSize,
		fn:        fn,
	}
}

// ChunkSize returns the configured chunk size in bytes.
func (a *Accumulator) ChunkSize() int {
	return a.chunkSize
}

// OnFrames converts interleaved float frames to PCM16 and appends them to
// the buffer, then emits every complete chunk in FIFO order. The remainder
// stays buffered for the next call. Without a callback the delivery is
// dropped rather than buffered without bound.
func (a *Accumulator) OnFrames(frames []float32) {
	if a.fn == nil {
		return
	}
	a.buf = audio.AppendPCM16(a.buf, frames)
	a.drain()
}

// WritePCM16 appends already-converted PCM16 bytes and drains complete
// chunks, for sources that bypass the float stage.
func (a *Accumulator) WritePCM16(data []byte) {
	if a.fn == nil {
		return
	}
	a.buf = append(a.buf, data...)
	a.drain()
}

func (a *Accumulator) drain() {
	off := 0
	for len(a.buf)-off >= a.chunkSize {
		a.fn(a.buf[off : off+a.chunkSize])
		off += a.chunkSize
	}
	if off > 0 {
		n := copy(a.buf, a.buf[off:])
		a.buf = a.buf[:n]
	}
}

// Buffered returns the number of bytes currently carried in the FIFO.
func (a *Accumulator) Buffered() int {
	return len(a.buf)
}

// Reset discards any buffered remainder. Partial chunks never survive a
// stream stop/start boundary.
func (a *Accumulator) Reset() {
	a.buf = a.buf[:0]
}

// RecommendedFramesPerBuffer returns the hardware frame block size that
// lines up with chunkSize for PCM16 at the given channel count, clamped to
// MinFramesPerBuffer.
func RecommendedFramesPerBuffer(chunkSize, channels int) int {
	frames := chunkSize / (channels * audio.BytesPerSample)
	if frames < MinFramesPerBuffer {
		frames = MinFramesPerBuffer
	}
	return frames
}
