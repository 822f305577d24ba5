package audio

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/oto"
)

const (
	channelCount   = 2
	bytesPerSample = 2
	frameBytes     = channelCount * bytesPerSample
	outputBuffer   = 8192
)

// Output is a sink for 16-bit little-endian stereo PCM.
type Output interface {
	Write(p []byte) (int, error)
	Close() error
}

// OutputFactory opens an output for one playback session.
type OutputFactory func(sampleRate int) (Output, error)

// otoDevice owns the process-wide oto context. oto allows one context per
// process, so its sample rate is fixed by the first track played.
type otoDevice struct {
	once       sync.Once
	ctx        *oto.Context
	sampleRate int
	err        error
}

var device otoDevice

// OtoOutput opens a player on the shared sound card context.
func OtoOutput(sampleRate int) (Output, error) {
	device.once.Do(func() {
		device.sampleRate = sampleRate
		device.ctx, device.err = oto.NewContext(sampleRate, channelCount, bytesPerSample, outputBuffer)
	})
	if device.err != nil {
		return nil, fmt.Errorf("failed to create audio context: %w", device.err)
	}
	if sampleRate != device.sampleRate {
		return nil, fmt.Errorf("sample rate %d Hz does not match output %d Hz", sampleRate, device.sampleRate)
	}
	return device.ctx.NewPlayer(), nil
}
