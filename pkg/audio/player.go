// Package audio plays synthesized speech through the default output
// device.
//
// Player decodes the MP3 or WAV payloads a speech engine hands it and
// blocks until the device drains them, so callers can sequence spoken
// prompts and microphone captures without the two overlapping. The
// underlying speaker is initialized once, on the first payload; later
// payloads at other sample rates are resampled instead of reopening
// the device.
package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// Encodings the player can decode.
const (
	EncodingMP3 = "mp3"
	EncodingWAV = "wav"
)

// speakerBuffer is the device buffer length. A tenth of a second keeps
// Stop responsive without audible underruns.
const speakerBuffer = time.Second / 10

// Player plays audio payloads through the default output device.
type Player struct {
	logger *slog.Logger
	volume float64

	mu      sync.Mutex
	rate    beep.SampleRate // 0 until the speaker is initialized
	stop    chan struct{}   // armed while a payload is playing
	playing bool
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithVolume scales playback gain. 1.0 is unity; 0 mutes.
func WithVolume(v float64) PlayerOption {
	return func(p *Player) {
		p.volume = v
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) PlayerOption {
	return func(p *Player) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPlayer creates a player for the default output device.
func NewPlayer(opts ...PlayerOption) *Player {
	p := &Player{
		logger: slog.Default().With("component", "audio"),
		volume: 1.0,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Play decodes the payload and blocks until the device finishes it.
// Cancelling ctx or calling Stop clears the device queue; Stop is not
// an error, cancellation returns ctx.Err().
func (p *Player) Play(ctx context.Context, data []byte, encoding string) error {
	if len(data) == 0 {
		return nil
	}

	streamer, format, err := decode(data, encoding)
	if err != nil {
		return err
	}
	defer streamer.Close()

	stream, err := p.prepare(streamer, format)
	if err != nil {
		return err
	}

	stopped := p.arm()
	defer p.disarm()

	done := make(chan struct{})
	speaker.Play(beep.Seq(stream, beep.Callback(func() { close(done) })))

	select {
	case <-done:
		return nil
	case <-stopped:
		// Stop already cleared the device queue.
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}

// Stop interrupts the current payload and empties the device queue.
// Safe to call when nothing is playing.
func (p *Player) Stop() {
	p.mu.Lock()
	stopped := p.stop
	p.stop = nil
	initialized := p.rate != 0
	p.mu.Unlock()

	if initialized {
		speaker.Clear()
	}
	if stopped != nil {
		close(stopped)
	}
}

// IsPlaying reports whether a payload is currently being played.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func decode(data []byte, encoding string) (beep.StreamSeekCloser, beep.Format, error) {
	switch encoding {
	case EncodingMP3:
		return mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	case EncodingWAV:
		return wav.Decode(bytes.NewReader(data))
	default:
		return nil, beep.Format{}, fmt.Errorf("audio: unsupported encoding %q", encoding)
	}
}

// prepare initializes the speaker on first use and adapts later streams
// to the device rate and configured volume.
func (p *Player) prepare(s beep.Streamer, format beep.Format) (beep.Streamer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rate == 0 {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(speakerBuffer)); err != nil {
			return nil, fmt.Errorf("audio: init speaker: %w", err)
		}
		p.rate = format.SampleRate
		p.logger.Debug("speaker initialized", "sample_rate", int(p.rate))
	} else if format.SampleRate != p.rate {
		s = beep.Resample(4, format.SampleRate, p.rate, s)
	}

	if p.volume != 1.0 {
		s = &effects.Volume{
			Streamer: s,
			Base:     2,
			Volume:   math.Log2(math.Max(p.volume, 1e-4)),
			Silent:   p.volume <= 0,
		}
	}
	return s, nil
}

func (p *Player) arm() chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stop = make(chan struct{})
	p.playing = true
	return p.stop
}

func (p *Player) disarm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stop = nil
	p.playing = false
}
