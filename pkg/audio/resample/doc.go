// ABOUTME: Audio sample rate conversion package
// ABOUTME: Linear interpolation baseline plus an optional high-quality sinc backend
// Package resample provides audio sample rate conversion.
//
// The always-available baseline is linear interpolation, selected
// automatically for the conversion direction. Higher-quality polyphase sinc
// methods are backed by github.com/tphakala/go-audio-resampler; when that
// backend is excluded from the build (-tags nosinc) a requested sinc method
// silently downgrades to the matching linear method, which Method() reports.
//
// Both single-shot and streaming conversion are supported. Streaming mode
// treats the concatenation of all inputs as one continuous signal; linear
// methods carry no state between calls, sinc methods do.
//
// Example:
//
//	r, err := resample.New(resample.Config{
//	    InputRate:  8000,
//	    OutputRate: 16000,
//	    Channels:   1,
//	})
//	output, err := r.Process(input)
package resample
