// ABOUTME: Process-wide default stream configuration
// ABOUTME: Mutex-guarded store with copy-on-read, never touched on the hot path
package audio

import "sync"

// Fallback values used when a field has never been configured.
const (
	DefaultSampleRate = 16000
	DefaultChannels   = 1
	DefaultChunkSize  = 3200 // bytes of PCM16, 100ms of 16kHz mono
)

// Defaults holds process-wide default stream parameters. Streams read it
// once at construction time; it is never consulted on the real-time path.
type Defaults struct {
	SampleRate    int
	Channels      int
	ChunkSize     int
	CaptureDevice int // index into enumerated capture devices, -1 for system default
	PlayerDevice  int // index into enumerated playback devices, -1 for system default
}

var (
	defaultsMu sync.Mutex
	defaults   = Defaults{
		SampleRate:    DefaultSampleRate,
		Channels:      DefaultChannels,
		ChunkSize:     DefaultChunkSize,
		CaptureDevice: -1,
		PlayerDevice:  -1,
	}
)

// SetDefaults updates the process-wide defaults. Non-positive rate, channel
// and chunk fields are ignored; device indices below -1 are ignored.
func SetDefaults(d Defaults) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()

	if d.SampleRate > 0 {
		defaults.SampleRate = d.SampleRate
	}
	if d.Channels > 0 {
		defaults.Channels = d.Channels
	}
	if d.ChunkSize > 0 {
		defaults.ChunkSize = d.ChunkSize
	}
	if d.CaptureDevice >= -1 {
		defaults.CaptureDevice = d.CaptureDevice
	}
	if d.PlayerDevice >= -1 {
		defaults.PlayerDevice = d.PlayerDevice
	}
}

// GetDefaults returns a copy of the process-wide defaults.
func GetDefaults() Defaults {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	return defaults
}
