// ABOUTME: WAV file writer built on go-audio/wav
// ABOUTME: Writes little-endian PCM16 bytes as 16-bit PCM WAV files

package encode

import (
	"encoding/binary"
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/spacemit-robotics/audio/pkg/audio"
)

const (
	wavBitDepth    = 16
	wavAudioFormat = 1 // PCM
)

// WAVWriter writes PCM16 audio to a 16-bit WAV file.
type WAVWriter struct {
	file    *os.File
	encoder *wav.Encoder
	format  audio.Format
	ints    []int
}

// NewWAVWriter creates path and prepares a 16-bit PCM WAV encoder for the
// given format. Non-positive format fields are filled from the
// process-wide defaults.
func NewWAVWriter(path string, format audio.Format) (*WAVWriter, error) {
	def := audio.GetDefaults()
	if format.SampleRate <= 0 {
		format.SampleRate = def.SampleRate
	}
	if format.Channels <= 0 {
		format.Channels = def.Channels
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create WAV file: %w", err)
	}

	encoder := wav.NewEncoder(file, format.SampleRate, wavBitDepth, format.Channels, wavAudioFormat)
	return &WAVWriter{
		file:    file,
		encoder: encoder,
		format:  format,
	}, nil
}

// Format returns the writer's sample rate and channel count.
func (w *WAVWriter) Format() audio.Format {
	return w.format
}

// WritePCM16 appends little-endian PCM16 bytes to the file. A trailing odd
// byte is ignored.
func (w *WAVWriter) WritePCM16(pcm []byte) error {
	samples := len(pcm) / audio.BytesPerSample
	if samples == 0 {
		return nil
	}

	if cap(w.ints) < samples {
		w.ints = make([]int, samples)
	}
	ints := w.ints[:samples]
	for i := range ints {
		ints[i] = int(int16(binary.LittleEndian.Uint16(pcm[i*2:])))
	}

	buf := &goaudio.IntBuffer{
		Data:   ints,
		Format: &goaudio.Format{SampleRate: w.format.SampleRate, NumChannels: w.format.Channels},
	}
	if err := w.encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	return nil
}

// WriteFloats converts float samples to PCM16 and appends them to the file.
func (w *WAVWriter) WriteFloats(samples []float32) error {
	if len(samples) == 0 {
		return nil
	}

	if cap(w.ints) < len(samples) {
		w.ints = make([]int, len(samples))
	}
	ints := w.ints[:len(samples)]
	for i, s := range samples {
		ints[i] = int(audio.FloatToInt16(s))
	}

	buf := &goaudio.IntBuffer{
		Data:   ints,
		Format: &goaudio.Format{SampleRate: w.format.SampleRate, NumChannels: w.format.Channels},
	}
	if err := w.encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	return nil
}

// Close finalizes the WAV header and closes the file.
func (w *WAVWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return w.file.Close()
}
