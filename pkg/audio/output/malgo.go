// ABOUTME: Malgo-based audio output implementation
// ABOUTME: Uses miniaudio via malgo with a byte ring buffer between Write and the device
package output

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
	"github.com/smallnest/ringbuffer"

	"github.com/spacemit-robotics/audio/pkg/audio"
)

// ringBufferMs is how much queued audio the write path holds before Write
// starts pacing the caller.
const ringBufferMs = 500

// writeRetryDelay is the pause between attempts to queue into a full ring.
const writeRetryDelay = 5 * time.Millisecond

// Malgo output implementation using the malgo/miniaudio library. Supports
// write mode (Write paces the caller through a ring buffer) and callback
// mode (a SourceFunc pulls frames on the device thread).
type Malgo struct {
	mu          sync.Mutex
	malgoCtx    *malgo.AllocatedContext
	device      *malgo.Device
	sampleRate  int
	channels    int
	deviceIndex int
	source      SourceFunc

	ring     *ringbuffer.RingBuffer
	writeBuf []byte    // grow-only float32 -> byte scratch for Write
	frameBuf []float32 // grow-only scratch for the source callback

	open    bool
	running bool

	done     chan struct{}
	doneOnce sync.Once
}

// NewMalgo creates a new malgo output for the system default device.
func NewMalgo() *Malgo {
	return &Malgo{
		deviceIndex: -1,
		done:        make(chan struct{}),
	}
}

// SetSource switches the output to callback mode. Must be called before
// Open. The source runs on the device thread and must not block.
func (m *Malgo) SetSource(fn SourceFunc) {
	m.source = fn
}

// SelectDevice selects a playback device by enumeration index; -1 selects
// the system default. Must be called before Open.
func (m *Malgo) SelectDevice(index int) {
	m.deviceIndex = index
}

// Done is closed when a callback-mode source signals end of stream by
// returning 0 frames.
func (m *Malgo) Done() <-chan struct{} {
	return m.done
}

// Open initializes the playback device for the given format.
func (m *Malgo) Open(sampleRate, channels int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.open {
		return ErrAlreadyOpen
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize malgo context: %w", err)
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = uint32(channels)
	deviceConfig.SampleRate = uint32(sampleRate)
	deviceConfig.Alsa.NoMMap = 1

	if m.deviceIndex >= 0 {
		infos, err := ctx.Devices(malgo.Playback)
		if err != nil {
			_ = ctx.Uninit()
			ctx.Free()
			return fmt.Errorf("failed to enumerate playback devices: %w", err)
		}
		if m.deviceIndex >= len(infos) {
			_ = ctx.Uninit()
			ctx.Free()
			return fmt.Errorf("playback device index %d out of range (%d devices)", m.deviceIndex, len(infos))
		}
		deviceConfig.Playback.DeviceID = infos[m.deviceIndex].ID.Pointer()
	}

	if m.source == nil {
		// Ring holds raw float32 little-endian bytes.
		capacity := sampleRate * channels * 4 * ringBufferMs / 1000
		m.ring = ringbuffer.New(capacity)
	}

	deviceCallbacks := malgo.DeviceCallbacks{
		Data: m.dataCallback,
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, deviceCallbacks)
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	m.malgoCtx = ctx
	m.device = device
	m.sampleRate = sampleRate
	m.channels = channels
	m.open = true

	log.Printf("Audio output opened: %dHz, %d channels (malgo)", sampleRate, channels)
	return nil
}

// Start begins playback.
func (m *Malgo) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return ErrNotOpen
	}
	if m.running {
		return nil
	}
	if err := m.device.Start(); err != nil {
		return fmt.Errorf("failed to start playback device: %w", err)
	}
	m.running = true
	return nil
}

// Stop halts playback and discards queued audio.
func (m *Malgo) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return nil
	}
	if err := m.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop playback device: %w", err)
	}
	if m.ring != nil {
		m.ring.Reset()
	}
	m.running = false
	return nil
}

// Write queues interleaved float32 samples, pacing the caller against the
// device clock when the ring is full.
func (m *Malgo) Write(samples []float32) error {
	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return ErrNotOpen
	}
	if m.source != nil {
		m.mu.Unlock()
		return ErrCallbackMode
	}
	if !m.running {
		// Auto-start on first write.
		if err := m.device.Start(); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("failed to start playback device: %w", err)
		}
		m.running = true
	}
	ring := m.ring
	m.mu.Unlock()

	need := len(samples) * 4
	if cap(m.writeBuf) < need {
		m.writeBuf = make([]byte, need)
	}
	m.writeBuf = m.writeBuf[:need]
	for i, s := range samples {
		binary.LittleEndian.PutUint32(m.writeBuf[i*4:], math.Float32bits(s))
	}

	data := m.writeBuf
	for len(data) > 0 {
		free := ring.Free()
		if free == 0 {
			time.Sleep(writeRetryDelay)
			continue
		}
		n := free
		if n > len(data) {
			n = len(data)
		}
		written, err := ring.Write(data[:n])
		data = data[written:]
		if err != nil && !errors.Is(err, ringbuffer.ErrIsFull) {
			return fmt.Errorf("ring buffer write: %w", err)
		}
	}
	return nil
}

// dataCallback runs on the device thread and fills the output buffer either
// from the SourceFunc or from the ring buffer.
func (m *Malgo) dataCallback(pOutput, pInput []byte, frameCount uint32) {
	if m.source != nil {
		m.sourceFill(pOutput, int(frameCount))
		return
	}

	n, _ := m.ring.Read(pOutput)
	for i := n; i < len(pOutput); i++ {
		pOutput[i] = 0
	}
}

// sourceFill pulls frames from the source, zero-fills any shortfall and
// signals Done when the source reports end of stream.
func (m *Malgo) sourceFill(pOutput []byte, frames int) {
	total := frames * m.channels
	if cap(m.frameBuf) < total {
		m.frameBuf = make([]float32, total)
	}
	buf := m.frameBuf[:total]

	produced := m.source(buf, m.channels)
	if produced > frames {
		produced = frames
	}

	for i := 0; i < produced*m.channels; i++ {
		binary.LittleEndian.PutUint32(pOutput[i*4:], math.Float32bits(buf[i]))
	}
	for i := produced * m.channels * 4; i < len(pOutput); i++ {
		pOutput[i] = 0
	}

	if produced == 0 {
		m.doneOnce.Do(func() { close(m.done) })
	}
}

// Close stops the device and releases all resources. No callback runs
// after Close returns.
func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device != nil {
		if m.running {
			if err := m.device.Stop(); err != nil {
				log.Printf("Warning: playback device stop error: %v", err)
			}
			m.running = false
		}
		m.device.Uninit()
		m.device = nil
	}

	if m.malgoCtx != nil {
		if err := m.malgoCtx.Uninit(); err != nil {
			log.Printf("Warning: malgo context uninit error: %v", err)
		}
		m.malgoCtx.Free()
		m.malgoCtx = nil
	}

	m.open = false
	return nil
}

// ListDevices enumerates the available playback devices.
func ListDevices() ([]audio.Device, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize malgo context: %w", err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	infos, err := ctx.Devices(malgo.Playback)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate playback devices: %w", err)
	}

	devices := make([]audio.Device, 0, len(infos))
	for i, info := range infos {
		devices = append(devices, audio.Device{Index: i, Name: info.Name()})
	}
	return devices, nil
}

// FindDevice returns the index of the first playback device whose name
// contains hint, or -1 when none matches.
func FindDevice(hint string) (int, error) {
	if hint == "" {
		return -1, nil
	}
	devices, err := ListDevices()
	if err != nil {
		return -1, err
	}
	for _, d := range devices {
		if containsFold(d.Name, hint) {
			return d.Index, nil
		}
	}
	return -1, nil
}
