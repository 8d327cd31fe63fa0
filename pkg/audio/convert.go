// ABOUTME: Sample format conversion between float32 and 16-bit PCM
// ABOUTME: Scalar and slice conversions with clamping, used on every sample
package audio

import (
	"encoding/binary"
	"math"
)

// FloatToInt16 converts a float sample in [-1, 1] to a signed 16-bit sample.
// Values outside the range are clamped first.
func FloatToInt16(x float32) int16 {
	if x > 1.0 {
		x = 1.0
	} else if x < -1.0 {
		x = -1.0
	}
	return int16(math.Round(float64(x) * 32767))
}

// Int16ToFloat converts a signed 16-bit sample to a float sample in [-1, 1).
func Int16ToFloat(s int16) float32 {
	return float32(s) / 32768.0
}

// AppendPCM16 converts interleaved float samples to 16-bit little-endian PCM
// bytes and appends them to dst, returning the extended slice. Give dst
// sufficient capacity to keep this allocation-free on the hot path.
func AppendPCM16(dst []byte, src []float32) []byte {
	for _, x := range src {
		v := uint16(FloatToInt16(x))
		dst = append(dst, byte(v), byte(v>>8))
	}
	return dst
}

// PCM16ToFloats converts 16-bit little-endian PCM bytes to float samples,
// writing into dst. It returns the number of samples converted, limited by
// both the input length and the capacity of dst.
func PCM16ToFloats(dst []float32, src []byte) int {
	n := len(src) / BytesPerSample
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		s := int16(binary.LittleEndian.Uint16(src[i*2:]))
		dst[i] = Int16ToFloat(s)
	}
	return n
}

// FloatsToInt16s converts float samples to int16 samples, writing into dst.
// Returns the number of samples converted.
func FloatsToInt16s(dst []int16, src []float32) int {
	n := len(src)
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = FloatToInt16(src[i])
	}
	return n
}

// Int16sToFloats converts int16 samples to float samples, writing into dst.
// Returns the number of samples converted.
func Int16sToFloats(dst []float32, src []int16) int {
	n := len(src)
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = Int16ToFloat(src[i])
	}
	return n
}
