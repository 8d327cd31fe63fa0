// ABOUTME: Full-duplex audio over a single malgo duplex device
// ABOUTME: Delivers synchronized input and output frames to one callback

package duplex

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/google/uuid"

	"github.com/spacemit-robotics/audio/pkg/audio"
	"github.com/spacemit-robotics/audio/pkg/audio/chunker"
)

var (
	// ErrAlreadyRunning is returned by Start when the device is running.
	ErrAlreadyRunning = errors.New("duplex already running")
	// ErrClosed is returned when the duplex context has been released.
	ErrClosed = errors.New("duplex closed")
)

// Callback processes one period of synchronized audio. input holds the
// captured frames, output is zeroed and must be filled with the frames to
// play; both carry the same number of interleaved samples. It runs on the
// device thread, must not block, and the slices are only valid for the
// duration of the call.
type Callback func(input, output []float32, channels int)

// Config holds the duplex stream parameters. Zero fields are filled from
// the process-wide defaults when Start is called.
type Config struct {
	SampleRate int
	Channels   int
	// FramesPerBuffer is the callback period in frames. Zero selects a
	// 10ms period at SampleRate.
	FramesPerBuffer int
}

// Duplex runs capture and playback through one device callback.
type Duplex struct {
	mu sync.Mutex

	ctx         *malgo.AllocatedContext
	device      *malgo.Device
	inputIndex  int
	outputIndex int
	id          string

	cfg     Config
	fn      Callback
	run     Callback // snapshot of fn taken at Start, immutable while running
	inBuf   []float32
	outBuf  []float32
	running bool
	closed  bool
}

// New creates a duplex bound to the given capture and playback device
// indices. Pass -1 for either to use the process-wide default device.
func New(inputDevice, outputDevice int) (*Duplex, error) {
	def := audio.GetDefaults()
	if inputDevice < 0 {
		inputDevice = def.CaptureDevice
	}
	if outputDevice < 0 {
		outputDevice = def.PlayerDevice
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio context: %w", err)
	}

	return &Duplex{
		ctx:         ctx,
		inputIndex:  inputDevice,
		outputIndex: outputDevice,
		id:          uuid.NewString()[:8],
	}, nil
}

// SetCallback sets the function that processes each period. It must be
// called before Start; changes while running take effect at the next Start.
// Without a callback the output plays silence.
func (d *Duplex) SetCallback(fn Callback) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fn = fn
}

// Start opens the duplex device and begins processing. Zero config fields
// are filled from the process-wide defaults.
func (d *Duplex) Start(cfg Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	if d.running {
		return ErrAlreadyRunning
	}

	cfg = d.initPipeline(cfg)

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Duplex)
	deviceConfig.Capture.Format = malgo.FormatF32
	deviceConfig.Capture.Channels = uint32(cfg.Channels)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = uint32(cfg.Channels)
	deviceConfig.SampleRate = uint32(cfg.SampleRate)
	deviceConfig.PeriodSizeInFrames = uint32(cfg.FramesPerBuffer)
	deviceConfig.Alsa.NoMMap = 1

	if d.inputIndex >= 0 {
		infos, err := d.ctx.Devices(malgo.Capture)
		if err != nil {
			return fmt.Errorf("failed to enumerate capture devices: %w", err)
		}
		if d.inputIndex >= len(infos) {
			return fmt.Errorf("input device index %d out of range (%d devices)", d.inputIndex, len(infos))
		}
		info := infos[d.inputIndex]
		deviceConfig.Capture.DeviceID = info.ID.Pointer()
		log.Printf("duplex %s: using input device %d: %s", d.id, d.inputIndex, info.Name())
	}
	if d.outputIndex >= 0 {
		infos, err := d.ctx.Devices(malgo.Playback)
		if err != nil {
			return fmt.Errorf("failed to enumerate playback devices: %w", err)
		}
		if d.outputIndex >= len(infos) {
			return fmt.Errorf("output device index %d out of range (%d devices)", d.outputIndex, len(infos))
		}
		info := infos[d.outputIndex]
		deviceConfig.Playback.DeviceID = info.ID.Pointer()
		log.Printf("duplex %s: using output device %d: %s", d.id, d.outputIndex, info.Name())
	}

	callbacks := malgo.DeviceCallbacks{
		Data: func(pOutput, pInput []byte, frameCount uint32) {
			d.handleFrames(pOutput, pInput, int(frameCount))
		},
	}

	device, err := malgo.InitDevice(d.ctx.Context, deviceConfig, callbacks)
	if err != nil {
		return fmt.Errorf("failed to initialize duplex device: %w", err)
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		return fmt.Errorf("failed to start duplex device: %w", err)
	}

	d.device = device
	d.running = true
	log.Printf("duplex %s: started at %d Hz, %d channels, %d frames/period",
		d.id, cfg.SampleRate, cfg.Channels, cfg.FramesPerBuffer)
	return nil
}

// initPipeline resolves the configuration and stores it along with the
// callback snapshot the device thread will use.
func (d *Duplex) initPipeline(cfg Config) Config {
	def := audio.GetDefaults()
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = def.SampleRate
	}
	if cfg.Channels <= 0 {
		cfg.Channels = def.Channels
	}
	if cfg.FramesPerBuffer <= 0 {
		cfg.FramesPerBuffer = cfg.SampleRate / 100
	}
	if cfg.FramesPerBuffer < chunker.MinFramesPerBuffer {
		cfg.FramesPerBuffer = chunker.MinFramesPerBuffer
	}
	d.cfg = cfg
	d.run = d.fn
	return cfg
}

// handleFrames runs on the device thread. It decodes the captured bytes,
// hands the callback a zeroed output buffer, and encodes whatever it
// filled; unset callbacks play silence.
func (d *Duplex) handleFrames(pOutput, pInput []byte, frameCount int) {
	samples := frameCount * d.cfg.Channels
	if samples == 0 || len(pOutput) < samples*4 {
		return
	}

	if d.run == nil || len(pInput) < samples*4 {
		for i := range pOutput {
			pOutput[i] = 0
		}
		return
	}

	if cap(d.inBuf) < samples {
		d.inBuf = make([]float32, samples)
		d.outBuf = make([]float32, samples)
	}
	in := d.inBuf[:samples]
	out := d.outBuf[:samples]
	for i := range in {
		in[i] = math.Float32frombits(binary.LittleEndian.Uint32(pInput[i*4:]))
		out[i] = 0
	}

	d.run(in, out, d.cfg.Channels)

	for i, s := range out {
		binary.LittleEndian.PutUint32(pOutput[i*4:], math.Float32bits(s))
	}
}

// Stop stops the duplex device.
func (d *Duplex) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return nil
	}

	if err := d.device.Stop(); err != nil {
		log.Printf("duplex %s: error stopping device: %v", d.id, err)
	}
	d.device.Uninit()
	d.device = nil
	d.running = false

	log.Printf("duplex %s: stopped", d.id)
	return nil
}

// Close stops the duplex if running and releases the audio context. The
// Duplex cannot be restarted after Close.
func (d *Duplex) Close() error {
	if err := d.Stop(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	if err := d.ctx.Uninit(); err != nil {
		return fmt.Errorf("failed to release audio context: %w", err)
	}
	d.ctx.Free()
	return nil
}

// IsRunning reports whether the duplex device is currently processing.
func (d *Duplex) IsRunning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// SampleRate returns the configured sample rate of the last Start.
func (d *Duplex) SampleRate() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.SampleRate
}

// Channels returns the configured channel count of the last Start.
func (d *Duplex) Channels() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.Channels
}

// InputDevice returns the capture device index, -1 for the system default.
func (d *Duplex) InputDevice() int {
	return d.inputIndex
}

// OutputDevice returns the playback device index, -1 for the system default.
func (d *Duplex) OutputDevice() int {
	return d.outputIndex
}
