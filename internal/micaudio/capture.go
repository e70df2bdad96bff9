// Package micaudio owns the audio driver callback (the capture thread)
// and the bounded ring buffer the decode thread drains from.
package micaudio

import (
	"fmt"
	"math"

	"github.com/gen2brain/malgo"
)

// SampleRate is the fixed capture rate spec.md §4.5 specifies.
const SampleRate = 16000

// FrameDuration is the fixed capture block duration spec.md §4.5
// specifies; at 16 kHz that is a 1600-sample block.
const FrameDuration = 0.1

// FrameSize is the number of samples per captured block.
const FrameSize = int(SampleRate * FrameDuration)

// Capture owns the malgo audio device and its ring buffer. The device
// callback is the ring buffer's only writer and never blocks.
type Capture struct {
	ctx    *malgo.AllocatedContext
	device *malgo.Device
	buffer *RingBuffer
}

// Start opens the default capture device at 16 kHz mono float32 and
// begins pushing frames into a capacity-5 ring buffer.
func Start() (*Capture, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(string) {})
	if err != nil {
		return nil, fmt.Errorf("micaudio: init context: %w", err)
	}

	buffer := NewRingBuffer(5)

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatF32
	deviceConfig.Capture.Channels = 1
	deviceConfig.SampleRate = SampleRate
	deviceConfig.PeriodSizeInFrames = uint32(FrameSize)
	deviceConfig.Alsa.NoMMap = 1

	onRecvFrames := func(_, inputSamples []byte, frameCount uint32) {
		samples := make([]float32, frameCount)
		for i := range samples {
			offset := i * 4
			bits := uint32(inputSamples[offset]) |
				uint32(inputSamples[offset+1])<<8 |
				uint32(inputSamples[offset+2])<<16 |
				uint32(inputSamples[offset+3])<<24
			samples[i] = math.Float32frombits(bits)
		}
		buffer.Push(samples)
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onRecvFrames,
	})
	if err != nil {
		_ = ctx.Free()
		return nil, fmt.Errorf("micaudio: init device: %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		_ = ctx.Free()
		return nil, fmt.Errorf("micaudio: start device: %w", err)
	}

	return &Capture{ctx: ctx, device: device, buffer: buffer}, nil
}

// Pop drains the oldest captured frame from the ring buffer, FIFO order.
func (c *Capture) Pop() ([]float32, bool) {
	return c.buffer.Pop()
}

// Stop tears down the audio device and context. The device is released
// last, per spec.md §4.5 ("the audio driver context is torn down last").
func (c *Capture) Stop() {
	if c.device != nil {
		c.device.Uninit()
	}
	if c.ctx != nil {
		_ = c.ctx.Free()
	}
}
