// ABOUTME: Package documentation for the audio file decoding package
// ABOUTME: Describes decoder selection and the PCM16 read interface

/*
Package decode reads audio files as streams of little-endian PCM16 bytes.

Open selects a decoder by file extension:

	dec, err := decode.Open("speech.wav")
	if err != nil {
		log.Fatal(err)
	}
	defer dec.Close()

	format := dec.Format()
	buf := make([]byte, 8192)
	for {
		n, err := dec.Read(buf)
		// buf[:n] is little-endian PCM16 at format's rate and channels.
		if err == io.EOF {
			break
		}
	}

WAV files must carry 16-bit PCM. MP3 decoding always yields 44.1 kHz
stereo, as produced by the underlying go-mp3 decoder. Files with a .pcm or
.raw extension are read as headerless PCM16 at the process-wide default
format.
*/
package decode
