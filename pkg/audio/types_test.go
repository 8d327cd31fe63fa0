// ABOUTME: Tests for shared format types
// ABOUTME: Verifies frame size and count arithmetic
package audio

import "testing"

func TestFormatBytesPerFrame(t *testing.T) {
	f := Format{SampleRate: 16000, Channels: 2}
	if got := f.BytesPerFrame(); got != 4 {
		t.Errorf("BytesPerFrame() = %d, want 4", got)
	}
}

func TestFormatFrameCount(t *testing.T) {
	samples := make([]float32, 3200)

	f := Format{SampleRate: 16000, Channels: 1}
	if got := f.FrameCount(samples); got != 3200 {
		t.Errorf("FrameCount() = %d, want 3200", got)
	}

	stereo := Format{SampleRate: 16000, Channels: 2}
	if got := stereo.FrameCount(samples); got != 1600 {
		t.Errorf("stereo FrameCount() = %d, want 1600", got)
	}

	if got := (Format{}).FrameCount(samples); got != 0 {
		t.Errorf("zero-channel FrameCount() = %d, want 0", got)
	}
}
