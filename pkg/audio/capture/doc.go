// ABOUTME: Package documentation for the microphone capture package
// ABOUTME: Describes the capture device, resampling, and chunk delivery flow

/*
Package capture records audio from a microphone and delivers it to the
application as fixed-size PCM16 chunks.

A Capture owns a malgo capture device. The device runs in float32 format at
the device rate; captured frames are resampled to the requested pipeline
rate when the two differ, converted to 16-bit PCM, and accumulated into
chunks of a fixed byte size before the callback fires:

	cap, err := capture.New(-1)
	if err != nil {
		log.Fatal(err)
	}
	defer cap.Close()

	cap.SetCallback(func(chunk []byte) {
		// chunk is exactly cfg.ChunkSize bytes of little-endian PCM16.
	})
	if err := cap.Start(capture.Config{SampleRate: 16000, Channels: 1}); err != nil {
		log.Fatal(err)
	}

Chunk slices passed to the callback are only valid for the duration of the
call; copy them if they must outlive it.
*/
package capture
