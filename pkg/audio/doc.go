// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, sample conversion functions and process-wide defaults
// Package audio provides fundamental audio types and utilities for real-time
// audio processing.
//
// This package defines the core types used throughout the library:
//   - Format: Describes a PCM stream (sample rate, channels)
//   - Defaults: Process-wide default stream configuration
//
// It also provides the sample format conversions used on every sample in
// both the capture and playback directions:
//   - float32 ↔ int16 scalar conversions with clamping
//   - interleaved float32 ↔ PCM16 little-endian byte conversions
//
// Example:
//
//	format := audio.Format{
//	    SampleRate: 16000,
//	    Channels:   1,
//	}
//
//	// Convert a float sample to 16-bit PCM
//	s := audio.FloatToInt16(0.5)
package audio
