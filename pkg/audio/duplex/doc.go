// ABOUTME: Package documentation for the full-duplex audio package
// ABOUTME: Describes the synchronized capture and playback callback

/*
Package duplex runs microphone capture and speaker playback through one
synchronized callback.

Full-duplex operation matters for acoustic echo cancellation, where the
samples being played are the reference signal for removing their echo from
the microphone input. A Duplex owns one malgo duplex device; every device
period the callback receives the captured input frames and a zeroed output
buffer to fill:

	d, err := duplex.New(-1, -1)
	if err != nil {
		log.Fatal(err)
	}
	defer d.Close()

	d.SetCallback(func(input, output []float32, channels int) {
		copy(output, input) // loopback
	})
	if err := d.Start(duplex.Config{SampleRate: 48000, Channels: 1}); err != nil {
		log.Fatal(err)
	}

The callback runs on the device thread and must not block. Output left
unfilled plays as silence, as does every period while no callback is set.
Input and output slices are only valid for the duration of the call.

Device enumeration is shared with the capture and output packages:
capture.ListDevices lists input devices, output.ListDevices lists
playback devices.
*/
package duplex
