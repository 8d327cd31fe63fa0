//go:build !nosinc

// ABOUTME: High-quality sinc resampling backend
// ABOUTME: Wraps tphakala/go-audio-resampler polyphase engines, one per channel
package resample

import (
	"fmt"

	resampler "github.com/tphakala/go-audio-resampler"
)

func init() {
	registerHighQuality(newSincBackend)
}

// sincEngine is the slice of the upstream float32 engine API the backend uses.
type sincEngine interface {
	Process(input []float32) ([]float32, error)
	Flush() ([]float32, error)
}

// sincBackend runs one polyphase engine per channel so that interleaved
// multi-channel input keeps per-channel filter state intact.
type sincBackend struct {
	cfg     Config
	engines []sincEngine

	// grow-only scratch
	planar [][]float32
	result [][]float32
	out    []float32
}

func newSincEngine(cfg Config) (sincEngine, error) {
	in := float64(cfg.InputRate)
	out := float64(cfg.OutputRate)

	switch cfg.Method {
	case MethodSincFastest:
		return resampler.NewEngineFloat32(in, out, resampler.QualityQuick)
	case MethodSincMedium:
		return resampler.NewEngineFloat32(in, out, resampler.QualityMedium)
	default:
		return resampler.NewEngineFloat32(in, out, resampler.QualityHigh)
	}
}

func newSincBackend(cfg Config) (highQualityBackend, error) {
	b := &sincBackend{
		cfg:    cfg,
		planar: make([][]float32, cfg.Channels),
		result: make([][]float32, cfg.Channels),
	}
	if err := b.rebuild(); err != nil {
		return nil, err
	}
	return b, nil
}

// rebuild replaces all engines with freshly constructed ones. The upstream
// engine holds filter history internally, so a rebuild is a full state reset.
func (b *sincBackend) rebuild() error {
	engines := make([]sincEngine, b.cfg.Channels)
	for i := range engines {
		e, err := newSincEngine(b.cfg)
		if err != nil {
			return fmt.Errorf("sinc engine: %w", err)
		}
		engines[i] = e
	}
	b.engines = engines
	return nil
}

func (b *sincBackend) process(input []float32, endOfInput bool) ([]float32, error) {
	channels := b.cfg.Channels

	if channels == 1 {
		out, err := b.engines[0].Process(input)
		if err != nil {
			return nil, fmt.Errorf("sinc process: %w", err)
		}
		if endOfInput {
			tail, err := b.engines[0].Flush()
			if err != nil {
				return nil, fmt.Errorf("sinc flush: %w", err)
			}
			out = append(out, tail...)
		}
		return out, nil
	}

	frames := len(input) / channels
	b.deinterleave(input, frames)

	minFrames := -1
	for ch := range b.engines {
		out, err := b.engines[ch].Process(b.planar[ch][:frames])
		if err != nil {
			return nil, fmt.Errorf("sinc process: %w", err)
		}
		if endOfInput {
			tail, err := b.engines[ch].Flush()
			if err != nil {
				return nil, fmt.Errorf("sinc flush: %w", err)
			}
			out = append(out, tail...)
		}
		b.result[ch] = out
		if minFrames < 0 || len(out) < minFrames {
			minFrames = len(out)
		}
	}

	return b.interleave(minFrames), nil
}

func (b *sincBackend) reset() error {
	return b.rebuild()
}

func (b *sincBackend) deinterleave(input []float32, frames int) {
	channels := b.cfg.Channels
	for ch := 0; ch < channels; ch++ {
		if cap(b.planar[ch]) < frames {
			b.planar[ch] = make([]float32, frames)
		}
		b.planar[ch] = b.planar[ch][:frames]
		for i := 0; i < frames; i++ {
			b.planar[ch][i] = input[i*channels+ch]
		}
	}
}

func (b *sincBackend) interleave(frames int) []float32 {
	channels := b.cfg.Channels
	n := frames * channels
	if cap(b.out) < n {
		b.out = make([]float32, n)
	}
	b.out = b.out[:n]
	for ch := 0; ch < channels; ch++ {
		src := b.result[ch]
		for i := 0; i < frames; i++ {
			b.out[i*channels+ch] = src[i]
		}
	}
	return b.out
}
