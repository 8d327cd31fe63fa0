// ABOUTME: Tests for the fixed-size chunk accumulator
// ABOUTME: Covers chunk boundaries, remainder carry, FIFO order, and reset
package chunker

import (
	"testing"

	"github.com/spacemit-robotics/audio/pkg/audio"
)

func TestOnFramesEmitsCompleteChunks(t *testing.T) {
	var chunks [][]byte
	a := New(3200, func(chunk []byte) {
		chunks = append(chunks, append([]byte(nil), chunk...))
	})

	// 2400 frames of PCM16 is 4800 bytes: one complete chunk plus 1600
	// bytes of remainder.
	a.OnFrames(make([]float32, 2400))
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if a.Buffered() != 1600 {
		t.Errorf("Buffered() = %d, want 1600", a.Buffered())
	}

	// Another 800 frames completes the second chunk exactly.
	a.OnFrames(make([]float32, 800))
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if a.Buffered() != 0 {
		t.Errorf("Buffered() = %d, want 0", a.Buffered())
	}

	for i, c := range chunks {
		if len(c) != 3200 {
			t.Errorf("chunk %d has %d bytes, want 3200", i, len(c))
		}
	}
}

func TestSmallWritesStayBuffered(t *testing.T) {
	emitted := 0
	a := New(3200, func([]byte) { emitted++ })

	a.WritePCM16(make([]byte, 100))
	if emitted != 0 {
		t.Errorf("emitted %d chunks from 100 bytes, want 0", emitted)
	}
	if a.Buffered() != 100 {
		t.Errorf("Buffered() = %d, want 100", a.Buffered())
	}
}

func TestChunksPreserveFIFOOrder(t *testing.T) {
	var got []byte
	a := New(4, func(chunk []byte) {
		got = append(got, chunk...)
	})

	// Samples with distinct values; each int16 is 2 bytes, so 2 samples
	// per chunk.
	samples := make([]float32, 10)
	for i := range samples {
		samples[i] = audio.Int16ToFloat(int16(i + 1))
	}
	a.OnFrames(samples)

	want := audio.AppendPCM16(nil, samples)
	if len(got) != 20 {
		t.Fatalf("emitted %d bytes, want 20", len(got))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("byte %d = %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestMultipleChunksPerCall(t *testing.T) {
	emitted := 0
	a := New(100, func(chunk []byte) {
		if len(chunk) != 100 {
			t.Errorf("chunk has %d bytes, want 100", len(chunk))
		}
		emitted++
	})

	a.WritePCM16(make([]byte, 350))
	if emitted != 3 {
		t.Errorf("emitted %d chunks, want 3", emitted)
	}
	if a.Buffered() != 50 {
		t.Errorf("Buffered() = %d, want 50", a.Buffered())
	}
}

func TestResetDiscardsRemainder(t *testing.T) {
	emitted := 0
	a := New(3200, func([]byte) { emitted++ })

	a.WritePCM16(make([]byte, 3000))
	a.Reset()
	if a.Buffered() != 0 {
		t.Errorf("Buffered() = %d after Reset, want 0", a.Buffered())
	}

	// Old remainder must not leak into the next stream.
	a.WritePCM16(make([]byte, 3000))
	if emitted != 0 {
		t.Errorf("emitted %d chunks, want 0", emitted)
	}
}

func TestNilCallbackDropsData(t *testing.T) {
	a := New(3200, nil)
	a.OnFrames(make([]float32, 10000))
	a.WritePCM16(make([]byte, 10000))
	if a.Buffered() != 0 {
		t.Errorf("Buffered() = %d with nil callback, want 0", a.Buffered())
	}
}

func TestNewFallsBackToDefaultChunkSize(t *testing.T) {
	a := New(0, nil)
	if a.ChunkSize() != audio.DefaultChunkSize {
		t.Errorf("ChunkSize() = %d, want %d", a.ChunkSize(), audio.DefaultChunkSize)
	}
}

func TestRecommendedFramesPerBuffer(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		channels  int
		want      int
	}{
		{"16k mono 100ms", 3200, 1, 1600},
		{"stereo", 3200, 2, 800},
		{"small chunk clamps", 100, 1, MinFramesPerBuffer},
		{"exact minimum", 128, 1, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecommendedFramesPerBuffer(tt.chunkSize, tt.channels)
			if got != tt.want {
				t.Errorf("RecommendedFramesPerBuffer(%d, %d) = %d, want %d",
					tt.chunkSize, tt.channels, got, tt.want)
			}
		})
	}
}
