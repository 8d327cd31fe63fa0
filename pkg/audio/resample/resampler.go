// ABOUTME: Streaming sample rate converter with selectable backends
// ABOUTME: Dispatches between linear interpolation and the registered sinc backend
package resample

import (
	"errors"
	"fmt"
	"math"

	"github.com/spacemit-robotics/audio/pkg/audio"
)

// ErrBufferTooSmall is returned by ProcessInto when the caller-provided
// output buffer cannot hold the full conversion result. Nothing is written
// in that case. Size output buffers with EstimateOutputSize.
var ErrBufferTooSmall = errors.New("resample: output buffer too small")

// Config describes a sample rate conversion. Zero fields are filled from
// the process-wide defaults (audio.GetDefaults) at construction time.
type Config struct {
	InputRate  int
	OutputRate int
	Channels   int
	Method     Method
}

// highQualityBackend is the continuation-state contract implemented by the
// sinc backend. endOfInput flushes any retained trailing samples.
type highQualityBackend interface {
	process(input []float32, endOfInput bool) ([]float32, error)
	reset() error
}

// The sinc backend registers its factory at init time. A nil factory means
// the backend is not present in this build and sinc methods downgrade to
// the linear method matching the conversion direction.
type highQualityFactory func(cfg Config) (highQualityBackend, error)

var newHighQualityBackend highQualityFactory

func registerHighQuality(f highQualityFactory) {
	newHighQualityBackend = f
}

// Resampler converts interleaved float32 audio between two fixed sample
// rates. A Resampler must be driven by a single stream at a time; it is not
// safe for concurrent use.
type Resampler struct {
	cfg    Config
	ratio  float64
	method Method
	hq     highQualityBackend
	out    []float32 // grow-only scratch, returned as views from Process
}

// New creates a resampler for the given configuration. It returns an error
// when any of the rates or the channel count is negative or remains
// non-positive after defaults are applied. A sinc method with no registered
// backend downgrades silently; query the outcome with Method().
func New(cfg Config) (*Resampler, error) {
	d := audio.GetDefaults()
	if cfg.InputRate == 0 {
		cfg.InputRate = d.SampleRate
	}
	if cfg.OutputRate == 0 {
		cfg.OutputRate = d.SampleRate
	}
	if cfg.Channels == 0 {
		cfg.Channels = d.Channels
	}

	if cfg.InputRate <= 0 || cfg.OutputRate <= 0 {
		return nil, fmt.Errorf("resample: invalid sample rates %d -> %d", cfg.InputRate, cfg.OutputRate)
	}
	if cfg.Channels <= 0 {
		return nil, fmt.Errorf("resample: invalid channel count %d", cfg.Channels)
	}

	r := &Resampler{
		cfg:    cfg,
		ratio:  float64(cfg.OutputRate) / float64(cfg.InputRate),
		method: cfg.Method,
	}

	if r.method == MethodLinear || cfg.InputRate == cfg.OutputRate {
		r.method = linearMethodFor(r.ratio)
		return r, nil
	}

	if r.method.requiresHighQuality() {
		if newHighQualityBackend == nil {
			r.method = linearMethodFor(r.ratio)
			return r, nil
		}
		hq, err := newHighQualityBackend(cfg)
		if err != nil {
			return nil, fmt.Errorf("resample: high-quality backend: %w", err)
		}
		r.hq = hq
	}

	return r, nil
}

// Method returns the effective method, reflecting any silent downgrade.
func (r *Resampler) Method() Method {
	return r.method
}

// Ratio returns outputRate / inputRate.
func (r *Resampler) Ratio() float64 {
	return r.ratio
}

// Channels returns the configured channel count.
func (r *Resampler) Channels() int {
	return r.cfg.Channels
}

// Process performs a single-shot conversion of interleaved samples. Equal
// input and output rates produce an exact copy. The returned slice is a
// view of an internal buffer and is only valid until the next call.
func (r *Resampler) Process(input []float32) ([]float32, error) {
	if len(input) == 0 {
		return nil, nil
	}

	if r.cfg.InputRate == r.cfg.OutputRate {
		out := r.grow(len(input))
		copy(out, input)
		return out, nil
	}

	switch r.method {
	case MethodLinearUpsample:
		return r.linearUpsample(input), nil
	case MethodLinearDownsample:
		return r.linearDownsample(input), nil
	default:
		// Single-shot on the stateful backend: flush the tail and leave
		// the backend clean for the next independent call.
		out, err := r.hq.process(input, true)
		if err != nil {
			return nil, err
		}
		if err := r.hq.reset(); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// ProcessInto converts input into the caller-provided output buffer and
// returns the number of samples produced. When output is too small it
// returns ErrBufferTooSmall and writes nothing.
func (r *Resampler) ProcessInto(input, output []float32) (int, error) {
	result, err := r.Process(input)
	if err != nil {
		return 0, err
	}
	if len(result) > len(output) {
		return 0, ErrBufferTooSmall
	}
	copy(output, result)
	return len(result), nil
}

// ProcessStreaming converts one segment of a continuous signal. For linear
// methods this is identical to Process; the sinc backend carries its
// interpolation position across calls until Reset. Set endOfInput on the
// final segment to flush retained trailing samples.
func (r *Resampler) ProcessStreaming(input []float32, endOfInput bool) ([]float32, error) {
	if len(input) == 0 && !endOfInput {
		return nil, nil
	}

	if r.hq == nil {
		return r.Process(input)
	}
	return r.hq.process(input, endOfInput)
}

// Reset clears backend continuation state without touching the
// configuration. Use it when a stream restarts.
func (r *Resampler) Reset() error {
	if r.hq != nil {
		return r.hq.reset()
	}
	return nil
}

// grow returns the scratch buffer resized to n samples, reallocating only
// when capacity is insufficient. Buffers never shrink during streaming.
func (r *Resampler) grow(n int) []float32 {
	if cap(r.out) < n {
		r.out = make([]float32, n)
	}
	r.out = r.out[:n]
	return r.out
}

// EstimateOutputSize returns an upper bound on the number of samples any
// backend produces for inputSamples at the given rates. Callers size
// destination buffers from this value.
func EstimateOutputSize(inputSamples, inputRate, outputRate int) int {
	ratio := float64(outputRate) / float64(inputRate)
	return int(math.Ceil(float64(inputSamples)*ratio)) + 256
}

// Resample is a one-shot convenience that converts input between the given
// rates using linear interpolation.
func Resample(input []float32, inputRate, outputRate, channels int) ([]float32, error) {
	r, err := New(Config{InputRate: inputRate, OutputRate: outputRate, Channels: channels})
	if err != nil {
		return nil, err
	}
	return r.Process(input)
}
