// ABOUTME: Microphone capture via malgo with resampling and chunk accumulation
// ABOUTME: Delivers fixed-size PCM16 chunks to an application callback

package capture

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
	"github.com/spacemit-robotics/audio/pkg/audio/resample"
)

var (
	// ErrAlreadyRunning is returned by Start when the device is running.
	ErrAlreadyRunning = errors.New("capture already running")
	// ErrClosed is returned when the capture context has been released.
	ErrClosed = errors.New("capture closed")
)

// Config holds the capture pipeline parameters. Zero fields are filled from
// the process-wide defaults when Start is called.
type Config struct {
	// SampleRate is the rate of the audio delivered to the callback.
	SampleRate int
	// DeviceRate is the rate the hardware device runs at. When it differs
	// from SampleRate the captured audio is resampled. Zero means the
	// device runs at SampleRate directly.
	DeviceRate int
	Channels   int
	// ChunkSize is the callback chunk size in bytes of PCM16 data.
	ChunkSize int
}

// ChunkFunc receives each completed capture chunk. The slice is only valid
// for the duration of the call.
type ChunkFunc func(chunk []byte)

// Capture records from a microphone and emits fixed-size PCM16 chunks.
type Capture struct {
	mu sync.Mutex

	ctx         *malgo.AllocatedContext
	device      *malgo.Device
	deviceIndex int
	id          string

	cfg     Config
	conv    *resample.Resampler
	acc     *chunker.Accumulator
	fn      ChunkFunc
	floats  []float32
	running bool
	closed  bool
}

// New creates a capture bound to the given device index. Pass -1 to use the
// process-wide default capture device, which itself defaults to the system
// default microphone.
func New(deviceIndex int) (*Capture, error) {
	if deviceIndex < 0 {
		deviceIndex = audio.GetDefaults().CaptureDevice
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio context: %w", err)
	}

	return &Capture{
		ctx:         ctx,
		deviceIndex: deviceIndex,
		id:          uuid.NewString()[:8],
	}, nil
}

// SetCallback sets the function that receives completed chunks. It must be
// called before Start; changes while running take effect at the next Start.
// Chunks produced while no callback is set are dropped.
func (c *Capture) SetCallback(fn ChunkFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fn = fn
}

// Start opens the capture device and begins recording. Zero config fields
// are filled from the process-wide defaults.
func (c *Capture) Start(cfg Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.running {
		return ErrAlreadyRunning
	}

	cfg, err := c.initPipeline(cfg)
	if err != nil {
		return err
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatF32
	deviceConfig.Capture.Channels = uint32(cfg.Channels)
	deviceConfig.SampleRate = uint32(cfg.DeviceRate)
	deviceConfig.PeriodSizeInFrames = uint32(chunker.RecommendedFramesPerBuffer(cfg.ChunkSize, cfg.Channels))
	deviceConfig.Alsa.NoMMap = 1

	if c.deviceIndex >= 0 {
		infos, err := c.ctx.Devices(malgo.Capture)
		if err != nil {
			return fmt.Errorf("failed to enumerate capture devices: %w", err)
		}
		if c.deviceIndex >= len(infos) {
			return fmt.Errorf("capture device index %d out of range (%d devices)", c.deviceIndex, len(infos))
		}
		info := infos[c.deviceIndex]
		deviceConfig.Capture.DeviceID = info.ID.Pointer()
		log.Printf("capture %s: using device %d: %s", c.id, c.deviceIndex, info.Name())
	}

	callbacks := malgo.DeviceCallbacks{
		Data: func(pOutput, pInput []byte, frameCount uint32) {
			c.handleFrames(pInput, int(frameCount))
		},
	}

	device, err := malgo.InitDevice(c.ctx.Context, deviceConfig, callbacks)
	if err != nil {
		return fmt.Errorf("failed to initialize capture device: %w", err)
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		return fmt.Errorf("failed to start capture device: %w", err)
	}

	c.device = device
	c.running = true
	log.Printf("capture %s: started at %d Hz (device %d Hz), %d channels, %d-byte chunks",
		c.id, cfg.SampleRate, cfg.DeviceRate, cfg.Channels, cfg.ChunkSize)
	return nil
}

// initPipeline resolves the configuration and builds the resampler and
// chunk accumulator. The accumulator captures a snapshot of the callback,
// so the device thread never reads the mutable field.
func (c *Capture) initPipeline(cfg Config) (Config, error) {
	def := audio.GetDefaults()
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = def.SampleRate
	}
	if cfg.Channels <= 0 {
		cfg.Channels = def.Channels
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = def.ChunkSize
	}
	if cfg.DeviceRate <= 0 {
		cfg.DeviceRate = cfg.SampleRate
	}
	c.cfg = cfg

	c.conv = nil
	if cfg.DeviceRate != cfg.SampleRate {
		conv, err := resample.New(resample.Config{
			InputRate:  cfg.DeviceRate,
			OutputRate: cfg.SampleRate,
			Channels:   cfg.Channels,
		})
		if err != nil {
			return cfg, fmt.Errorf("failed to create resampler: %w", err)
		}
		c.conv = conv
	}

	fn := c.fn
	c.acc = chunker.New(cfg.ChunkSize, func(chunk []byte) {
		if fn != nil {
			fn(chunk)
		}
	})
	return cfg, nil
}

// handleFrames runs on the device thread. It converts the raw float32 bytes
// to samples, resamples when the device rate differs from the pipeline
// rate, and feeds the result to the chunk accumulator.
func (c *Capture) handleFrames(pInput []byte, frameCount int) {
	samples := frameCount * c.cfg.Channels
	if samples == 0 || len(pInput) < samples*4 {
		return
	}

	if cap(c.floats) < samples {
		c.floats = make([]float32, samples)
	}
	floats := c.floats[:samples]
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(pInput[i*4:]))
	}

	if c.conv != nil {
		out, err := c.conv.ProcessStreaming(floats, false)
		if err != nil {
			log.Printf("capture %s: resample error: %v", c.id, err)
			return
		}
		floats = out
	}

	c.acc.OnFrames(floats)
}

// Stop stops the capture device. Buffered partial-chunk data and resampler
// state are discarded so a later Start begins clean.
func (c *Capture) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil
	}

	if err := c.device.Stop(); err != nil {
		log.Printf("capture %s: error stopping device: %v", c.id, err)
	}
	c.device.Uninit()
	c.device = nil
	c.running = false

	c.acc.Reset()
	if c.conv != nil {
		if err := c.conv.Reset(); err != nil {
			log.Printf("capture %s: error resetting resampler: %v", c.id, err)
		}
	}

	log.Printf("capture %s: stopped", c.id)
	return nil
}

// Close stops the capture if running and releases the audio context. The
// Capture cannot be restarted after Close.
func (c *Capture) Close() error {
	if err := c.Stop(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if err := c.ctx.Uninit(); err != nil {
		return fmt.Errorf("failed to release audio context: %w", err)
	}
	c.ctx.Free()
	return nil
}

// IsRunning reports whether the capture device is currently recording.
func (c *Capture) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// ListDevices enumerates the available capture devices.
func ListDevices() ([]audio.Device, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio context: %w", err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	infos, err := ctx.Devices(malgo.Capture)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate capture devices: %w", err)
	}

	devices := make([]audio.Device, 0, len(infos))
	for i, info := range infos {
		devices = append(devices, audio.Device{Index: i, Name: info.Name()})
	}
	return devices, nil
}
