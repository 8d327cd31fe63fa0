// ABOUTME: PCM16 playback over an output backend
// ABOUTME: Converts PCM16 bytes to float samples and streams them to the device

package player

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/spacemit-robotics/audio/pkg/audio"
	"github.com/spacemit-robotics/audio/pkg/audio/decode"
	"github.com/spacemit-robotics/audio/pkg/audio/output"
)

// ErrNotStarted is returned by Write before Start has opened the output.
var ErrNotStarted = errors.New("player not started")

// playFileBufSize is the PCM16 read size used by PlayFile, in bytes.
const playFileBufSize = 8192

// Player plays little-endian PCM16 audio through an output backend.
type Player struct {
	mu      sync.Mutex
	out     output.Output
	floats  []float32
	running bool
}

// New creates a player over the given output backend. Pass nil to use the
// default malgo backend, configured with the process-wide default player
// device.
func New(out output.Output) (*Player, error) {
	if out == nil {
		m := output.NewMalgo()
		if idx := audio.GetDefaults().PlayerDevice; idx >= 0 {
			m.SelectDevice(idx)
		}
		out = m
	}
	return &Player{out: out}, nil
}

// Start opens the output at the given format. Non-positive values are
// filled from the process-wide defaults.
func (p *Player) Start(sampleRate, channels int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil
	}

	def := audio.GetDefaults()
	if sampleRate <= 0 {
		sampleRate = def.SampleRate
	}
	if channels <= 0 {
		channels = def.Channels
	}

	if err := p.out.Open(sampleRate, channels); err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	if err := p.out.Start(); err != nil {
		return fmt.Errorf("failed to start output: %w", err)
	}
	p.running = true
	return nil
}

// Write queues little-endian PCM16 bytes for playback. It blocks while the
// output paces the caller. A trailing odd byte is ignored.
func (p *Player) Write(pcm []byte) error {
	p.mu.Lock()

	if !p.running {
		p.mu.Unlock()
		return ErrNotStarted
	}

	samples := len(pcm) / audio.BytesPerSample
	if samples == 0 {
		p.mu.Unlock()
		return nil
	}
	if cap(p.floats) < samples {
		p.floats = make([]float32, samples)
	}
	n := audio.PCM16ToFloats(p.floats[:samples], pcm)

	// The output write blocks for pacing. Release the lock so Stop and
	// Close are not held up behind it.
	out := p.out
	buf := p.floats[:n]
	p.mu.Unlock()

	return out.Write(buf)
}

// PlayFile decodes an audio file and plays it to completion. The output is
// opened at the file's own format.
func (p *Player) PlayFile(path string) error {
	dec, err := decode.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer dec.Close()

	format := dec.Format()
	if err := p.Start(format.SampleRate, format.Channels); err != nil {
		return err
	}
	log.Printf("player: playing %s at %d Hz, %d channels", path, format.SampleRate, format.Channels)

	buf := make([]byte, playFileBufSize)
	for {
		n, err := dec.Read(buf)
		if n > 0 {
			if werr := p.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
}

// Stop stops playback. The output stays open so Start can resume it.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return nil
	}
	p.running = false
	return p.out.Stop()
}

// Close stops playback and releases the output backend.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.running = false
	return p.out.Close()
}

// IsRunning reports whether the player has been started.
func (p *Player) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}
