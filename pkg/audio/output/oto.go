// ABOUTME: Oto-based audio output implementation
// ABOUTME: Streams PCM16 through an io.Pipe into an oto player
package output

import (
	"fmt"
	"io"
	"log"

	"github.com/ebitengine/oto/v3"

	"github.com/spacemit-robotics/audio/pkg/audio"
)

// Oto output implementation using the oto library. Write converts float
// samples to 16-bit PCM and feeds them through a pipe, which blocks the
// caller at the device rate. oto allows only one context per process, so
// Close suspends rather than destroys it.
type Oto struct {
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	sampleRate int
	channels   int
	writeBuf   []byte // grow-only float32 -> PCM16 scratch
	open       bool
}

// NewOto creates a new oto output.
func NewOto() *Oto {
	return &Oto{}
}

// Open initializes the oto context for the given format.
func (o *Oto) Open(sampleRate, channels int) error {
	if o.open {
		return ErrAlreadyOpen
	}

	// Reuse the existing context when the format matches; oto does not
	// support reinitialization within a process.
	if o.otoCtx != nil {
		if o.sampleRate != sampleRate || o.channels != channels {
			log.Printf("Warning: format change (%dHz %dch -> %dHz %dch) but oto cannot reinitialize; keeping existing context",
				o.sampleRate, o.channels, sampleRate, channels)
		}
	} else {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
		}
		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			return fmt.Errorf("failed to create oto context: %w", err)
		}
		<-readyChan
		o.otoCtx = ctx
		o.sampleRate = sampleRate
		o.channels = channels
	}

	o.pipeReader, o.pipeWriter = io.Pipe()
	o.player = o.otoCtx.NewPlayer(o.pipeReader)
	o.open = true

	log.Printf("Audio output opened: %dHz, %d channels (oto)", sampleRate, channels)
	return nil
}

// Start begins playback.
func (o *Oto) Start() error {
	if !o.open {
		return ErrNotOpen
	}
	o.player.Play()
	return nil
}

// Stop pauses playback.
func (o *Oto) Stop() error {
	if !o.open {
		return ErrNotOpen
	}
	o.player.Pause()
	return nil
}

// Write converts float samples to PCM16 and queues them for playback,
// blocking at the device rate.
func (o *Oto) Write(samples []float32) error {
	if !o.open {
		return ErrNotOpen
	}

	o.writeBuf = audio.AppendPCM16(o.writeBuf[:0], samples)
	if _, err := o.pipeWriter.Write(o.writeBuf); err != nil {
		return fmt.Errorf("oto pipe write: %w", err)
	}
	return nil
}

// Close tears down the player and suspends the context.
func (o *Oto) Close() error {
	if !o.open {
		return nil
	}

	if o.pipeWriter != nil {
		_ = o.pipeWriter.Close()
	}
	if o.player != nil {
		if err := o.player.Close(); err != nil {
			log.Printf("Warning: oto player close error: %v", err)
		}
		o.player = nil
	}
	if o.otoCtx != nil {
		_ = o.otoCtx.Suspend()
	}
	o.open = false
	return nil
}
