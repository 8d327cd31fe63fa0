// ABOUTME: Decoder interface and extension-based decoder selection
// ABOUTME: Common PCM16 read interface for all file decoders

package decode

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spacemit-robotics/audio/pkg/audio"
)

// ErrUnsupportedFormat is returned by Open for unrecognized file extensions.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Decoder reads an audio file as little-endian PCM16 bytes.
type Decoder interface {
	// Format returns the sample rate and channel count of the decoded audio.
	Format() audio.Format

	// Read fills p with decoded PCM16 bytes, returning io.EOF at the end
	// of the file.
	Read(p []byte) (int, error)

	// Close releases decoder resources.
	Close() error
}

// Open opens path with a decoder chosen by file extension. Supported
// extensions are .wav, .mp3, .pcm, and .raw.
func Open(path string) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return OpenWAV(path)
	case ".mp3":
		return OpenMP3(path)
	case ".pcm", ".raw":
		return OpenPCM(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
