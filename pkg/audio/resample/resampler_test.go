// ABOUTME: Tests for the sample rate converter core
// ABOUTME: Covers construction, passthrough, sizing, and buffer contracts
package resample

import (
	"errors"
	"testing"
)

// ramp returns n mono samples 0, 1, 2, ...
func ramp(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i)
	}
	return out
}

func TestNewInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative input rate", Config{InputRate: -8000, OutputRate: 16000, Channels: 1}},
		{"negative output rate", Config{InputRate: 8000, OutputRate: -16000, Channels: 1}},
		{"negative channels", Config{InputRate: 8000, OutputRate: 16000, Channels: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestNewFillsZeroFieldsFromDefaults(t *testing.T) {
	// Zero rates and channels resolve to the process defaults (16 kHz
	// mono), which makes this a passthrough converter.
	r, err := New(Config{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if r.Ratio() != 1.0 {
		t.Errorf("Ratio() = %v, want 1", r.Ratio())
	}
	if r.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", r.Channels())
	}
}

func TestProcessEmptyInput(t *testing.T) {
	r, err := New(Config{InputRate: 8000, OutputRate: 16000, Channels: 1})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	out, err := r.Process(nil)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected no output, got %d samples", len(out))
	}
}

func TestProcessPassthrough(t *testing.T) {
	r, err := New(Config{InputRate: 16000, OutputRate: 16000, Channels: 1})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	input := ramp(100)
	out, err := r.Process(input)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(out) != len(input) {
		t.Fatalf("passthrough produced %d samples, want %d", len(out), len(input))
	}
	for i := range input {
		if out[i] != input[i] {
			t.Fatalf("sample %d: got %v, want %v", i, out[i], input[i])
		}
	}
}

func TestPassthroughForcedForSincMethods(t *testing.T) {
	// Equal rates always use the copy path, whatever method was asked for.
	r, err := New(Config{InputRate: 16000, OutputRate: 16000, Channels: 1, Method: MethodSincBest})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if r.Method().requiresHighQuality() {
		t.Errorf("equal rates kept method %s", r.Method())
	}
}

func TestEstimateOutputSizeBounds(t *testing.T) {
	tests := []struct {
		name               string
		inRate, outRate, n int
	}{
		{"upsample 2x", 8000, 16000, 1600},
		{"downsample 2x", 16000, 8000, 1600},
		{"44.1k to 16k", 44100, 16000, 4410},
		{"16k to 44.1k", 16000, 44100, 160},
		{"equal rates", 16000, 16000, 320},
		{"single sample", 8000, 48000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(Config{InputRate: tt.inRate, OutputRate: tt.outRate, Channels: 1})
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			out, err := r.Process(ramp(tt.n))
			if err != nil {
				t.Fatalf("Process failed: %v", err)
			}
			bound := EstimateOutputSize(tt.n, tt.inRate, tt.outRate)
			if len(out) > bound {
				t.Errorf("produced %d samples, estimate bound is %d", len(out), bound)
			}
		})
	}
}

func TestProcessIntoBufferTooSmall(t *testing.T) {
	r, err := New(Config{InputRate: 8000, OutputRate: 16000, Channels: 1})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	input := ramp(100)
	small := make([]float32, 10)
	n, err := r.ProcessInto(input, small)
	if !errors.Is(err, ErrBufferTooSmall) {
		t.Fatalf("expected ErrBufferTooSmall, got %v", err)
	}
	if n != 0 {
		t.Errorf("short write reported %d samples", n)
	}

	// A buffer sized from the estimate always fits.
	output := make([]float32, EstimateOutputSize(len(input), 8000, 16000))
	n, err = r.ProcessInto(input, output)
	if err != nil {
		t.Fatalf("ProcessInto failed: %v", err)
	}
	if n != 200 {
		t.Errorf("ProcessInto produced %d samples, want 200", n)
	}
}

func TestProcessReusesScratchBuffer(t *testing.T) {
	r, err := New(Config{InputRate: 8000, OutputRate: 16000, Channels: 1})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	first, err := r.Process(ramp(100))
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	second, err := r.Process(ramp(50))
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(second) != 100 {
		t.Fatalf("second call produced %d samples, want 100", len(second))
	}
	// A smaller follow-up call reuses the same backing array.
	if &first[0] != &second[0] {
		t.Error("scratch buffer was reallocated for a smaller input")
	}
}

func TestLinearDowngradeWithoutBackend(t *testing.T) {
	saved := newHighQualityBackend
	newHighQualityBackend = nil
	defer func() { newHighQualityBackend = saved }()

	r, err := New(Config{InputRate: 8000, OutputRate: 16000, Channels: 1, Method: MethodSincMedium})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if r.Method() != MethodLinearUpsample {
		t.Errorf("Method() = %s, want %s", r.Method(), MethodLinearUpsample)
	}

	r, err = New(Config{InputRate: 16000, OutputRate: 8000, Channels: 1, Method: MethodSincBest})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if r.Method() != MethodLinearDownsample {
		t.Errorf("Method() = %s, want %s", r.Method(), MethodLinearDownsample)
	}
}

func TestResampleConvenience(t *testing.T) {
	out, err := Resample(ramp(100), 8000, 16000, 1)
	if err != nil {
		t.Fatalf("Resample failed: %v", err)
	}
	if len(out) != 200 {
		t.Errorf("Resample produced %d samples, want 200", len(out))
	}
}

func TestMethodString(t *testing.T) {
	tests := []struct {
		method Method
		want   string
	}{
		{MethodLinear, "linear"},
		{MethodLinearUpsample, "linear-upsample"},
		{MethodLinearDownsample, "linear-downsample"},
		{MethodSincFastest, "sinc-fastest"},
		{MethodSincMedium, "sinc-medium"},
		{MethodSincBest, "sinc-best"},
		{Method(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.method.String(); got != tt.want {
			t.Errorf("Method(%d).String() = %q, want %q", tt.method, got, tt.want)
		}
	}
}
