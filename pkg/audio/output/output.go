// ABOUTME: Audio output interface definition
// ABOUTME: Common interface and source callback contract for playback backends
package output

import (
	"errors"
	"strings"
)

var (
	// ErrNotOpen is returned when writing to or starting an unopened output.
	ErrNotOpen = errors.New("output: not open")

	// ErrAlreadyOpen is returned when opening an output twice.
	ErrAlreadyOpen = errors.New("output: already open")

	// ErrCallbackMode is returned when Write is called on an output that a
	// SourceFunc is driving.
	ErrCallbackMode = errors.New("output: stream is in callback mode")
)

// Output represents an audio playback device consuming interleaved float32
// frames.
type Output interface {
	// Open initializes the device for the given format.
	Open(sampleRate, channels int) error

	// Start begins playback.
	Start() error

	// Stop halts playback; buffered audio is discarded, not flushed.
	Stop() error

	// Write queues interleaved float32 samples for playback, pacing the
	// caller against the device clock.
	Write(samples []float32) error

	// Close releases device resources. After Close returns no further
	// source callback runs.
	Close() error
}

// SourceFunc supplies frames for callback-mode playback. It fills out with
// up to len(out) interleaved samples and returns the number of frames
// produced. A short return leaves the remainder as silence; returning 0
// frames signals the definitive end of the stream.
type SourceFunc func(out []float32, channels int) int

// containsFold reports whether s contains substr ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
