// ABOUTME: Fixed-size chunk accumulation for irregular audio deliveries
// ABOUTME: Turns variable-length frame blocks into a steady sequence of byte chunks
// Package chunker regularizes irregular audio deliveries into fixed-size
// PCM16 byte chunks.
//
// Hardware callbacks deliver frame blocks of driver-chosen size; downstream
// consumers such as speech pipelines expect chunks of exactly one size. The
// Accumulator converts incoming float frames to PCM16, buffers them, and
// hands every complete chunk to the registered callback in FIFO order,
// carrying any remainder to the next delivery.
//
// Example:
//
//	acc := chunker.New(3200, func(chunk []byte) {
//	    pipeline.Feed(chunk)
//	})
//	acc.OnFrames(frames) // from the capture callback
package chunker
