// ABOUTME: Headerless PCM16 file decoder
// ABOUTME: Reads raw .pcm/.raw files at the process-wide default format

package decode

import (
	"fmt"
	"os"

	"github.com/spacemit-robotics/audio/pkg/audio"
)

// PCMDecoder reads a headerless little-endian PCM16 file. Raw files carry
// no format metadata, so the process-wide default format is assumed.
type PCMDecoder struct {
	file   *os.File
	format audio.Format
}

// OpenPCM opens a raw PCM16 file for reading.
func OpenPCM(path string) (*PCMDecoder, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PCM file: %w", err)
	}

	def := audio.GetDefaults()
	return &PCMDecoder{
		file:   file,
		format: audio.Format{SampleRate: def.SampleRate, Channels: def.Channels},
	}, nil
}

// Format returns the assumed sample rate and channel count.
func (d *PCMDecoder) Format() audio.Format {
	return d.format
}

// Read fills p with PCM16 bytes from the file.
func (d *PCMDecoder) Read(p []byte) (int, error) {
	return d.file.Read(p)
}

// Close closes the underlying file.
func (d *PCMDecoder) Close() error {
	return d.file.Close()
}
