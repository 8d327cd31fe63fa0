// ABOUTME: Audio type definitions
// ABOUTME: Defines the Format stream descriptor and frame/byte size helpers
package audio

// BytesPerSample is the size of one PCM16 sample on the wire.
const BytesPerSample = 2

// Format describes a PCM audio stream. Channel count and sample rate are
// fixed for the lifetime of a stream; only the delivery block size varies.
type Format struct {
	SampleRate int
	Channels   int
}

// BytesPerFrame returns the PCM16 byte size of one frame (one sample per channel).
func (f Format) BytesPerFrame() int {
	return f.Channels * BytesPerSample
}

// FrameCount returns the number of complete frames in an interleaved sample slice.
func (f Format) FrameCount(samples []float32) int {
	if f.Channels <= 0 {
		return 0
	}
	return len(samples) / f.Channels
}

// Device identifies one capture or playback device by its position in the
// enumeration order.
type Device struct {
	Index int
	Name  string
}
