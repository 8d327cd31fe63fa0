// ABOUTME: Tests for the streaming WAV decoder
// ABOUTME: Small-buffer reads and end-of-file behavior
package decode

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/spacemit-robotics/audio/pkg/audio"
	"github.com/spacemit-robotics/audio/pkg/audio/encode"
)

func writeTestWAV(t *testing.T, samples []float32, format audio.Format) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.wav")
	w, err := encode.NewWAVWriter(path, format)
	if err != nil {
		t.Fatalf("NewWAVWriter failed: %v", err)
	}
	if err := w.WriteFloats(samples); err != nil {
		t.Fatalf("WriteFloats failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return path
}

func TestWAVSmallBufferReads(t *testing.T) {
	samples := make([]float32, 100)
	for i := range samples {
		samples[i] = audio.Int16ToFloat(int16(i))
	}
	path := writeTestWAV(t, samples, audio.Format{SampleRate: 16000, Channels: 1})

	dec, err := OpenWAV(path)
	if err != nil {
		t.Fatalf("OpenWAV failed: %v", err)
	}
	defer dec.Close()

	// A 3-byte read buffer forces the decoder to carry partial samples
	// between calls.
	var back []byte
	buf := make([]byte, 3)
	for {
		n, err := dec.Read(buf)
		back = append(back, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
	}

	if len(back) != len(samples)*audio.BytesPerSample {
		t.Fatalf("read %d bytes, want %d", len(back), len(samples)*audio.BytesPerSample)
	}
	floats := make([]float32, len(samples))
	audio.PCM16ToFloats(floats, back)
	for i := range samples {
		if floats[i] != samples[i] {
			t.Fatalf("sample %d = %v, want %v", i, floats[i], samples[i])
		}
	}
}

func TestWAVReadAfterEOF(t *testing.T) {
	path := writeTestWAV(t, make([]float32, 10), audio.Format{SampleRate: 16000, Channels: 1})

	dec, err := OpenWAV(path)
	if err != nil {
		t.Fatalf("OpenWAV failed: %v", err)
	}
	defer dec.Close()

	if _, err := io.ReadAll(dec); err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if _, err := dec.Read(make([]byte, 16)); err != io.EOF {
		t.Errorf("Read after EOF returned %v, want io.EOF", err)
	}
}
