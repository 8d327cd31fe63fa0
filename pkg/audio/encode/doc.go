// ABOUTME: Package documentation for the audio file encoding package
// ABOUTME: Describes the WAV writer used for recordings

/*
Package encode writes audio data to files.

WAVWriter wraps a go-audio/wav encoder behind a byte-oriented PCM16
interface, so capture chunks can be written to disk directly:

	w, err := encode.NewWAVWriter("take.wav", audio.Format{SampleRate: 16000, Channels: 1})
	if err != nil {
		log.Fatal(err)
	}
	w.WritePCM16(chunk)
	w.Close() // finalizes the WAV header

Close must be called for the file to be valid.
*/
package encode
