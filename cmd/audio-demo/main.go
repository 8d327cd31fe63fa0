// ABOUTME: Entry point for the audio-demo command
// ABOUTME: Parses CLI flags for device listing, recording, and playback

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spacemit-robotics/audio/internal/version"
	"github.com/spacemit-robotics/audio/pkg/audio"
	"github.com/spacemit-robotics/audio/pkg/audio/capture"
	"github.com/spacemit-robotics/audio/pkg/audio/decode"
	"github.com/spacemit-robotics/audio/pkg/audio/encode"
	"github.com/spacemit-robotics/audio/pkg/audio/output"
	"github.com/spacemit-robotics/audio/pkg/audio/player"
	"github.com/spacemit-robotics/audio/pkg/audio/resample"
)

var (
	listDevices = flag.Bool("list", false, "List capture and playback devices")
	recordFile  = flag.String("record", "", "Record microphone audio to the given WAV file")
	seconds     = flag.Int("seconds", 5, "Recording duration in seconds")
	playFile    = flag.String("play", "", "Play the given audio file (wav, mp3, pcm)")
	resampleIn  = flag.String("resample", "", "Resample the given WAV file to -rate, writing -out")
	outFile     = flag.String("out", "", "Output file for -resample")
	sampleRate  = flag.Int("rate", 0, "Sample rate in Hz (default 16000)")
	channels    = flag.Int("channels", 0, "Channel count (default 1)")
	chunkSize   = flag.Int("chunk", 0, "Capture chunk size in bytes (default 3200)")
	deviceRate  = flag.Int("device-rate", 0, "Capture hardware rate when it differs from -rate")
	device      = flag.Int("device", -1, "Device index (-1 for system default)")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s (%s)\n", version.Product, version.Version, version.Manufacturer)
		return
	}

	audio.SetDefaults(audio.Defaults{
		SampleRate:    *sampleRate,
		Channels:      *channels,
		ChunkSize:     *chunkSize,
		CaptureDevice: *device,
		PlayerDevice:  *device,
	})

	switch {
	case *listDevices:
		if err := runList(); err != nil {
			log.Fatalf("list failed: %v", err)
		}
	case *recordFile != "":
		if err := runRecord(*recordFile, *seconds); err != nil {
			log.Fatalf("record failed: %v", err)
		}
	case *playFile != "":
		if err := runPlay(*playFile); err != nil {
			log.Fatalf("play failed: %v", err)
		}
	case *resampleIn != "":
		if err := runResample(*resampleIn, *outFile); err != nil {
			log.Fatalf("resample failed: %v", err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func runList() error {
	captureDevices, err := capture.ListDevices()
	if err != nil {
		return err
	}
	fmt.Println("Capture devices:")
	for _, d := range captureDevices {
		fmt.Printf("  %d: %s\n", d.Index, d.Name)
	}

	playbackDevices, err := output.ListDevices()
	if err != nil {
		return err
	}
	fmt.Println("Playback devices:")
	for _, d := range playbackDevices {
		fmt.Printf("  %d: %s\n", d.Index, d.Name)
	}
	return nil
}

func runRecord(path string, duration int) error {
	def := audio.GetDefaults()

	writer, err := encode.NewWAVWriter(path, audio.Format{
		SampleRate: def.SampleRate,
		Channels:   def.Channels,
	})
	if err != nil {
		return err
	}

	rec, err := capture.New(*device)
	if err != nil {
		writer.Close()
		return err
	}
	defer rec.Close()

	writeErr := make(chan error, 1)
	rec.SetCallback(func(chunk []byte) {
		if err := writer.WritePCM16(chunk); err != nil {
			select {
			case writeErr <- err:
			default:
			}
		}
	})

	if err := rec.Start(capture.Config{DeviceRate: *deviceRate}); err != nil {
		writer.Close()
		return err
	}

	fmt.Printf("Recording %ds to %s (Ctrl-C to stop early)...\n", duration, path)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case <-time.After(time.Duration(duration) * time.Second):
	case <-sig:
		fmt.Println("Interrupted")
	case err := <-writeErr:
		rec.Stop()
		writer.Close()
		return err
	}

	if err := rec.Stop(); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}

func runResample(inPath, outPath string) error {
	if outPath == "" {
		return fmt.Errorf("-resample requires -out")
	}

	dec, err := decode.Open(inPath)
	if err != nil {
		return err
	}
	defer dec.Close()

	inFormat := dec.Format()
	targetRate := audio.GetDefaults().SampleRate
	conv, err := resample.New(resample.Config{
		InputRate:  inFormat.SampleRate,
		OutputRate: targetRate,
		Channels:   inFormat.Channels,
	})
	if err != nil {
		return err
	}

	writer, err := encode.NewWAVWriter(outPath, audio.Format{
		SampleRate: targetRate,
		Channels:   inFormat.Channels,
	})
	if err != nil {
		return err
	}

	pcm := make([]byte, 8192)
	floats := make([]float32, len(pcm)/audio.BytesPerSample)
	for {
		n, readErr := dec.Read(pcm)
		if n > 0 || readErr == io.EOF {
			samples := audio.PCM16ToFloats(floats, pcm[:n])
			out, err := conv.ProcessStreaming(floats[:samples], readErr == io.EOF)
			if err != nil {
				writer.Close()
				return err
			}
			if err := writer.WriteFloats(out); err != nil {
				writer.Close()
				return err
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			writer.Close()
			return readErr
		}
	}

	if err := writer.Close(); err != nil {
		return err
	}
	fmt.Printf("Resampled %s (%d Hz) to %s (%d Hz)\n", inPath, inFormat.SampleRate, outPath, targetRate)
	return nil
}

func runPlay(path string) error {
	var out output.Output
	if *device >= 0 {
		m := output.NewMalgo()
		m.SelectDevice(*device)
		out = m
	}

	p, err := player.New(out)
	if err != nil {
		return err
	}
	defer p.Close()

	return p.PlayFile(path)
}
