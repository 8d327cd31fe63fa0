// ABOUTME: Linear interpolation resampling, the always-available baseline
// ABOUTME: Per-channel interpolation with direction-specific boundary handling
package resample

import "math"

// linearUpsample interpolates each output frame between its two neighbouring
// input frames. Past the final input frame the index clamps to the last
// frame pair with frac forced to 1.0, so trailing output equals the last
// input sample through the blend.
func (r *Resampler) linearUpsample(input []float32) []float32 {
	channels := r.cfg.Channels
	numFrames := len(input) / channels
	outFrames := int(math.Ceil(float64(numFrames) * r.ratio))
	out := r.grow(outFrames * channels)

	if numFrames == 1 {
		for i := 0; i < outFrames; i++ {
			copy(out[i*channels:(i+1)*channels], input[:channels])
		}
		return out
	}

	for ch := 0; ch < channels; ch++ {
		for i := 0; i < outFrames; i++ {
			pos := float64(i) / r.ratio
			idx := int(pos)
			frac := pos - float64(idx)

			if idx >= numFrames-1 {
				idx = numFrames - 2
				frac = 1.0
			}

			s0 := float64(input[idx*channels+ch])
			s1 := float64(input[(idx+1)*channels+ch])
			out[i*channels+ch] = float32(s0*(1.0-frac) + s1*frac)
		}
	}

	return out
}

// linearDownsample mirrors linearUpsample except at the boundary: output
// frames past the final input pair take the last input sample directly,
// with no blending.
func (r *Resampler) linearDownsample(input []float32) []float32 {
	channels := r.cfg.Channels
	numFrames := len(input) / channels
	outFrames := int(math.Ceil(float64(numFrames) * r.ratio))
	out := r.grow(outFrames * channels)

	if numFrames == 1 {
		for i := 0; i < outFrames; i++ {
			copy(out[i*channels:(i+1)*channels], input[:channels])
		}
		return out
	}

	for ch := 0; ch < channels; ch++ {
		for i := 0; i < outFrames; i++ {
			pos := float64(i) / r.ratio
			idx := int(pos)
			frac := pos - float64(idx)

			if idx >= numFrames-1 {
				out[i*channels+ch] = input[(numFrames-1)*channels+ch]
				continue
			}

			s0 := float64(input[idx*channels+ch])
			s1 := float64(input[(idx+1)*channels+ch])
			out[i*channels+ch] = float32(s0*(1.0-frac) + s1*frac)
		}
	}

	return out
}
