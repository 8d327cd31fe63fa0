// ABOUTME: Tests for the capture frame pipeline
// ABOUTME: Exercises float decoding, resampling, and chunk delivery without hardware
package capture

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/spacemit-robotics/audio/pkg/audio"
)

// deviceBytes packs float samples the way malgo delivers FormatF32 data.
func deviceBytes(samples []float32) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(s))
	}
	return out
}

// newPipeline builds a Capture with only the frame pipeline wired up, the
// way Start leaves it, without opening a device.
func newPipeline(t *testing.T, cfg Config, fn ChunkFunc) *Capture {
	t.Helper()

	c := &Capture{fn: fn, id: "test"}
	if _, err := c.initPipeline(cfg); err != nil {
		t.Fatalf("failed to build pipeline: %v", err)
	}
	return c
}

func TestHandleFramesEmitsChunks(t *testing.T) {
	var chunks [][]byte
	cfg := Config{SampleRate: 16000, DeviceRate: 16000, Channels: 1, ChunkSize: 320}
	c := newPipeline(t, cfg, func(chunk []byte) {
		chunks = append(chunks, append([]byte(nil), chunk...))
	})

	// 320 frames of PCM16 is 640 bytes: two complete chunks.
	samples := make([]float32, 320)
	for i := range samples {
		samples[i] = 0.25
	}
	c.handleFrames(deviceBytes(samples), len(samples))

	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	for _, chunk := range chunks {
		if len(chunk) != 320 {
			t.Fatalf("chunk has %d bytes, want 320", len(chunk))
		}
		for i := 0; i < len(chunk); i += 2 {
			s := audio.Int16ToFloat(int16(binary.LittleEndian.Uint16(chunk[i:])))
			if math.Abs(float64(s)-0.25) > 1.0/32767.0 {
				t.Fatalf("chunk sample %d = %v, want 0.25", i/2, s)
			}
		}
	}
}

func TestHandleFramesCarriesRemainder(t *testing.T) {
	emitted := 0
	cfg := Config{SampleRate: 16000, DeviceRate: 16000, Channels: 1, ChunkSize: 320}
	c := newPipeline(t, cfg, func([]byte) { emitted++ })

	// 100 frames is 200 bytes, below one chunk.
	c.handleFrames(deviceBytes(make([]float32, 100)), 100)
	if emitted != 0 {
		t.Fatalf("emitted %d chunks early, want 0", emitted)
	}

	// 60 more frames complete the first chunk exactly.
	c.handleFrames(deviceBytes(make([]float32, 60)), 60)
	if emitted != 1 {
		t.Errorf("emitted %d chunks, want 1", emitted)
	}
}

func TestHandleFramesResamples(t *testing.T) {
	var bytes int
	cfg := Config{SampleRate: 16000, DeviceRate: 48000, Channels: 1, ChunkSize: 320}
	c := newPipeline(t, cfg, func(chunk []byte) { bytes += len(chunk) })

	// One second of device audio must land close to one second at the
	// pipeline rate: 48000 frames in, about 32000 PCM16 bytes out.
	block := make([]float32, 480)
	for i := 0; i < 100; i++ {
		c.handleFrames(deviceBytes(block), len(block))
	}

	total := bytes + c.acc.Buffered()
	if total < 31000 || total > 33000 {
		t.Errorf("resampled second produced %d bytes, want about 32000", total)
	}
}

func TestSetCallbackTakesEffectAtNextStart(t *testing.T) {
	var gotFirst, gotSecond int
	cfg := Config{SampleRate: 16000, DeviceRate: 16000, Channels: 1, ChunkSize: 320}
	c := newPipeline(t, cfg, func([]byte) { gotFirst++ })

	// Swapping the callback while the pipeline runs must not touch the
	// chunk path the device thread is using.
	c.SetCallback(func([]byte) { gotSecond++ })

	c.handleFrames(deviceBytes(make([]float32, 160)), 160)
	if gotFirst != 1 {
		t.Errorf("running callback received %d chunks, want 1", gotFirst)
	}
	if gotSecond != 0 {
		t.Errorf("replacement callback received %d chunks before restart", gotSecond)
	}

	if _, err := c.initPipeline(cfg); err != nil {
		t.Fatalf("failed to rebuild pipeline: %v", err)
	}
	c.handleFrames(deviceBytes(make([]float32, 160)), 160)
	if gotFirst != 1 {
		t.Errorf("old callback received chunks after restart")
	}
	if gotSecond != 1 {
		t.Errorf("replacement callback received %d chunks after restart, want 1", gotSecond)
	}
}

func TestHandleFramesIgnoresShortInput(t *testing.T) {
	emitted := 0
	cfg := Config{SampleRate: 16000, DeviceRate: 16000, Channels: 1, ChunkSize: 320}
	c := newPipeline(t, cfg, func([]byte) { emitted++ })

	// Truncated device buffer: claimed frame count exceeds the bytes.
	c.handleFrames(make([]byte, 10), 100)
	c.handleFrames(nil, 0)
	if emitted != 0 || c.acc.Buffered() != 0 {
		t.Error("short device input was not dropped")
	}
}
