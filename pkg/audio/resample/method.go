// ABOUTME: Resampling method enumeration
// ABOUTME: Linear baseline methods and high-quality sinc method selectors
package resample

// Method selects the resampling algorithm.
type Method int

const (
	// MethodLinear picks linear upsample or downsample from the rate ratio.
	MethodLinear Method = iota

	// MethodLinearUpsample forces linear interpolation for ratio > 1.
	MethodLinearUpsample

	// MethodLinearDownsample forces linear interpolation for ratio <= 1.
	MethodLinearDownsample

	// MethodSincFastest selects the lowest-latency sinc preset.
	MethodSincFastest

	// MethodSincMedium selects the general-purpose sinc preset.
	MethodSincMedium

	// MethodSincBest selects the highest-quality sinc preset.
	MethodSincBest
)

// String returns a human-readable method name.
func (m Method) String() string {
	switch m {
	case MethodLinear:
		return "linear"
	case MethodLinearUpsample:
		return "linear-upsample"
	case MethodLinearDownsample:
		return "linear-downsample"
	case MethodSincFastest:
		return "sinc-fastest"
	case MethodSincMedium:
		return "sinc-medium"
	case MethodSincBest:
		return "sinc-best"
	default:
		return "unknown"
	}
}

// requiresHighQuality reports whether m needs the sinc backend.
func (m Method) requiresHighQuality() bool {
	switch m {
	case MethodSincFastest, MethodSincMedium, MethodSincBest:
		return true
	default:
		return false
	}
}

// linearMethodFor returns the linear method matching the conversion direction.
func linearMethodFor(ratio float64) Method {
	if ratio > 1.0 {
		return MethodLinearUpsample
	}
	return MethodLinearDownsample
}
