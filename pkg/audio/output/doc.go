// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides Output interface with malgo, oto and PortAudio implementations
// Package output provides audio playback backends.
//
// All backends consume interleaved float32 frames through the Output
// interface. The malgo backend is the default and additionally supports
// callback-mode playback driven by a SourceFunc. PortAudio support is
// optional (build with -tags portaudio).
//
// Example:
//
//	out := output.NewMalgo()
//	err := out.Open(48000, 2)
//	err = out.Start()
//	err = out.Write(samples)
package output
