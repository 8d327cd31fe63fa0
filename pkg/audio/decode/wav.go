// ABOUTME: WAV file decoder built on go-audio/wav
// ABOUTME: Streams 16-bit PCM WAV data as little-endian PCM16 bytes

package decode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/spacemit-robotics/audio/pkg/audio"
)

// wavReadFrames is how many samples each PCMBuffer call requests.
const wavReadFrames = 4096

// WAVDecoder streams a 16-bit PCM WAV file.
type WAVDecoder struct {
	file    *os.File
	decoder *wav.Decoder
	format  audio.Format
	buf     *goaudio.IntBuffer
	pending []byte
	eof     bool
}

// OpenWAV opens a WAV file for decoding. Only 16-bit PCM content is
// supported.
func OpenWAV(path string) (*WAVDecoder, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAV file: %w", err)
	}

	decoder := wav.NewDecoder(file)
	decoder.ReadInfo()
	if !decoder.IsValidFile() {
		file.Close()
		return nil, errors.New("invalid WAV file format")
	}
	if decoder.BitDepth != 16 {
		file.Close()
		return nil, fmt.Errorf("unsupported bit depth: %d (only 16-bit PCM)", decoder.BitDepth)
	}

	format := audio.Format{
		SampleRate: int(decoder.SampleRate),
		Channels:   int(decoder.NumChans),
	}
	return &WAVDecoder{
		file:    file,
		decoder: decoder,
		format:  format,
		buf: &goaudio.IntBuffer{
			Data:   make([]int, wavReadFrames),
			Format: &goaudio.Format{SampleRate: format.SampleRate, NumChannels: format.Channels},
		},
	}, nil
}

// Format returns the file's sample rate and channel count.
func (d *WAVDecoder) Format() audio.Format {
	return d.format
}

// Read fills p with decoded PCM16 bytes.
func (d *WAVDecoder) Read(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		if len(d.pending) > 0 {
			n := copy(p[total:], d.pending)
			d.pending = d.pending[n:]
			total += n
			continue
		}
		if d.eof {
			break
		}

		n, err := d.decoder.PCMBuffer(d.buf)
		if err != nil {
			return total, fmt.Errorf("failed to read WAV data: %w", err)
		}
		if n == 0 {
			d.eof = true
			break
		}
		d.pending = d.appendSamples(nil, d.buf.Data[:n])
	}

	if total == 0 && d.eof {
		return 0, io.EOF
	}
	return total, nil
}

func (d *WAVDecoder) appendSamples(dst []byte, samples []int) []byte {
	for _, s := range samples {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(int16(s)))
	}
	return dst
}

// Close closes the underlying file.
func (d *WAVDecoder) Close() error {
	return d.file.Close()
}
