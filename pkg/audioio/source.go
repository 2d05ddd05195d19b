package audioio

import (
	"context"
	"io"
)

// AudioChunk is one buffer of captured PCM16 audio.
type AudioChunk struct {
	// Samples contains interleaved PCM16 samples.
	Samples []int16

	// SampleRate is the sample rate of this chunk.
	SampleRate int

	// Channels is the number of channels in this chunk.
	Channels int
}

// Bytes returns the samples as little-endian PCM16 bytes, the layout the
// speech recognizers expect.
func (c *AudioChunk) Bytes() []byte {
	buf := make([]byte, len(c.Samples)*2)
	for i, s := range c.Samples {
		buf[i*2] = byte(s)
		buf[i*2+1] = byte(s >> 8)
	}
	return buf
}

// FromBytes populates the chunk from raw little-endian PCM16 bytes.
func (c *AudioChunk) FromBytes(data []byte, sampleRate, channels int) {
	c.SampleRate = sampleRate
	c.Channels = channels
	c.Samples = make([]int16, len(data)/2)
	for i := range c.Samples {
		c.Samples[i] = int16(data[i*2]) | int16(data[i*2+1])<<8
	}
}

// Duration returns the duration of this audio chunk in seconds.
func (c *AudioChunk) Duration() float64 {
	if c.SampleRate == 0 || c.Channels == 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate*c.Channels)
}

// Source captures audio from a microphone or other input device.
// The recognizers pull one chunk at a time and assemble bounded utterances
// from them, so Source exposes a blocking Read rather than a channel.
type Source interface {
	// Start begins audio capture.
	Start(ctx context.Context) error

	// Stop halts audio capture.
	// It is safe to call Stop multiple times.
	Stop() error

	// Read returns the next audio chunk, blocking until one is captured.
	// Returns io.EOF when the source is stopped.
	Read(ctx context.Context) (AudioChunk, error)

	// Config returns the capture configuration.
	Config() Config

	// Close releases all resources.
	// After Close, the source cannot be restarted.
	io.Closer
}

// SourceStats is a snapshot of capture counters.
type SourceStats struct {
	// ChunksRead is the total number of chunks delivered to readers.
	ChunksRead int64

	// SamplesRead is the total number of samples delivered.
	SamplesRead int64

	// Overruns counts chunks dropped because no reader kept up.
	Overruns int64

	// Running reports whether the source is currently capturing.
	Running bool

	// Backend identifies the capture implementation.
	Backend string
}

// SourceWithStats is implemented by sources that track capture counters.
// The app logs them at shutdown so dropped audio shows up somewhere.
type SourceWithStats interface {
	Source
	Stats() SourceStats
}
