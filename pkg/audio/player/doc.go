// ABOUTME: Package documentation for the playback package
// ABOUTME: Describes streaming PCM16 playback and file playback

/*
Package player plays PCM16 audio through an output backend.

A Player accepts little-endian PCM16 bytes and converts them to the float
samples the output backend expects. It is the write-side counterpart of the
capture package: chunks recorded by capture can be fed straight back into
Write.

	p, err := player.New(nil)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	if err := p.Start(16000, 1); err != nil {
		log.Fatal(err)
	}
	p.Write(chunk)

PlayFile decodes a WAV or MP3 file and plays it to completion.
*/
package player
