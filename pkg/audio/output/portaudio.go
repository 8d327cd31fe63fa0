//go:build portaudio

// ABOUTME: PortAudio output implementation
// ABOUTME: Cross-platform audio output using the blocking PortAudio stream API
package output

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

const portaudioBlockFrames = 256

// PortAudio output implementation using the blocking write API.
type PortAudio struct {
	stream   *portaudio.Stream
	buf      []float32 // fixed stream block, portaudioBlockFrames frames
	pending  []float32 // partial block carried between Write calls
	channels int
	open     bool
}

// NewPortAudio creates a new PortAudio output.
func NewPortAudio() *PortAudio {
	return &PortAudio{}
}

// Open initializes PortAudio and opens the default output stream.
func (p *PortAudio) Open(sampleRate, channels int) error {
	if p.open {
		return ErrAlreadyOpen
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	p.buf = make([]float32, portaudioBlockFrames*channels)
	stream, err := portaudio.OpenDefaultStream(0, channels, float64(sampleRate), portaudioBlockFrames, &p.buf)
	if err != nil {
		_ = portaudio.Terminate()
		return fmt.Errorf("failed to open stream: %w", err)
	}

	p.stream = stream
	p.channels = channels
	p.pending = p.pending[:0]
	p.open = true
	return nil
}

// Start begins playback.
func (p *PortAudio) Start() error {
	if !p.open {
		return ErrNotOpen
	}
	return p.stream.Start()
}

// Stop halts playback.
func (p *PortAudio) Stop() error {
	if !p.open {
		return ErrNotOpen
	}
	return p.stream.Stop()
}

// Write outputs samples through the blocking stream API, carrying any
// partial block to the next call.
func (p *PortAudio) Write(samples []float32) error {
	if !p.open {
		return ErrNotOpen
	}

	p.pending = append(p.pending, samples...)
	block := portaudioBlockFrames * p.channels

	for len(p.pending) >= block {
		copy(p.buf, p.pending[:block])
		if err := p.stream.Write(); err != nil {
			return fmt.Errorf("portaudio write: %w", err)
		}
		n := copy(p.pending, p.pending[block:])
		p.pending = p.pending[:n]
	}
	return nil
}

// Close releases the stream and terminates PortAudio.
func (p *PortAudio) Close() error {
	if !p.open {
		return nil
	}
	if p.stream != nil {
		if err := p.stream.Stop(); err != nil {
			return err
		}
		if err := p.stream.Close(); err != nil {
			return err
		}
		p.stream = nil
	}
	p.open = false
	return portaudio.Terminate()
}
