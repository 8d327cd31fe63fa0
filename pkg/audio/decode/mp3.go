// ABOUTME: MP3 file decoder built on go-mp3
// ABOUTME: Streams decoded MP3 audio as little-endian PCM16 bytes

package decode

import (
	"fmt"
	"os"

	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/spacemit-robotics/audio/pkg/audio"
)

// mp3Channels is the channel count go-mp3 always decodes to.
const mp3Channels = 2

// MP3Decoder streams an MP3 file as PCM16. The go-mp3 decoder always
// produces stereo output at the file's sample rate.
type MP3Decoder struct {
	file    *os.File
	decoder *mp3.Decoder
	format  audio.Format
}

// OpenMP3 opens an MP3 file for decoding.
func OpenMP3(path string) (*MP3Decoder, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open MP3 file: %w", err)
	}

	decoder, err := mp3.NewDecoder(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	return &MP3Decoder{
		file:    file,
		decoder: decoder,
		format: audio.Format{
			SampleRate: decoder.SampleRate(),
			Channels:   mp3Channels,
		},
	}, nil
}

// Format returns the decoded sample rate and channel count.
func (d *MP3Decoder) Format() audio.Format {
	return d.format
}

// Read fills p with decoded PCM16 bytes, returning io.EOF at end of file.
func (d *MP3Decoder) Read(p []byte) (int, error) {
	return d.decoder.Read(p)
}

// Close closes the underlying file.
func (d *MP3Decoder) Close() error {
	return d.file.Close()
}
