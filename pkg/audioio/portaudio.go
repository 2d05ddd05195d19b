package audioio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"
)

// PortAudioSource captures audio from the default input device via PortAudio.
type PortAudioSource struct {
	cfg    Config
	logger *slog.Logger

	mu       sync.Mutex
	stream   *portaudio.Stream
	buffer   []int16
	running  bool
	closed   bool
	streamCh chan AudioChunk
	stopCh   chan struct{}
	loopDone chan struct{}

	// Stats
	chunksRead  atomic.Int64
	samplesRead atomic.Int64
	overruns    atomic.Int64
}

// NewPortAudioSource initializes PortAudio and prepares a capture source for
// the default input device. Call Close to release the PortAudio runtime.
func NewPortAudioSource(cfg Config, logger *slog.Logger) (*PortAudioSource, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio init: %w", err)
	}

	return &PortAudioSource{
		cfg:    cfg,
		logger: logger,
		buffer: make([]int16, cfg.BufferSize()*cfg.Channels),
	}, nil
}

// Start opens the input stream and begins capturing.
func (p *PortAudioSource) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return io.ErrClosedPipe
	}
	if p.running {
		return nil
	}

	stream, err := portaudio.OpenDefaultStream(
		p.cfg.Channels,        // input channels
		0,                     // output channels
		float64(p.cfg.SampleRate),
		len(p.buffer),
		p.buffer,
	)
	if err != nil {
		return fmt.Errorf("portaudio open: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("portaudio start: %w", err)
	}

	p.stream = stream
	p.running = true
	p.streamCh = make(chan AudioChunk, 10)
	p.stopCh = make(chan struct{})
	p.loopDone = make(chan struct{})

	go p.captureLoop()

	p.logger.Debug("portaudio source started",
		"sample_rate", p.cfg.SampleRate,
		"frames_per_buffer", len(p.buffer),
	)
	return nil
}

func (p *PortAudioSource) captureLoop() {
	defer close(p.loopDone)

	for {
		select {
		case <-p.stopCh:
			return
		default:
		}

		p.mu.Lock()
		stream := p.stream
		p.mu.Unlock()
		if stream == nil {
			return
		}

		if err := stream.Read(); err != nil {
			// Overflow means the device outpaced us; keep going.
			if err == portaudio.InputOverflowed {
				p.overruns.Add(1)
				continue
			}
			select {
			case <-p.stopCh:
			default:
				p.logger.Warn("portaudio read failed", "error", err)
			}
			return
		}

		samples := make([]int16, len(p.buffer))
		copy(samples, p.buffer)
		chunk := AudioChunk{
			Samples:    samples,
			SampleRate: p.cfg.SampleRate,
			Channels:   p.cfg.Channels,
		}

		select {
		case p.streamCh <- chunk:
			p.chunksRead.Add(1)
			p.samplesRead.Add(int64(len(samples)))
		case <-p.stopCh:
			return
		default:
			p.overruns.Add(1)
		}
	}
}

// Stop halts capture and closes the input stream.
func (p *PortAudioSource) Stop() error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = false
	stream := p.stream
	p.stream = nil
	close(p.stopCh)
	loopDone := p.loopDone
	p.mu.Unlock()

	if loopDone != nil {
		<-loopDone
	}
	if stream != nil {
		stream.Stop()
		stream.Close()
	}

	p.mu.Lock()
	close(p.streamCh)
	p.mu.Unlock()

	p.logger.Debug("portaudio source stopped")
	return nil
}

// Read reads the next audio chunk.
func (p *PortAudioSource) Read(ctx context.Context) (AudioChunk, error) {
	p.mu.Lock()
	ch := p.streamCh
	p.mu.Unlock()
	if ch == nil {
		return AudioChunk{}, io.EOF
	}

	select {
	case <-ctx.Done():
		return AudioChunk{}, ctx.Err()
	case chunk, ok := <-ch:
		if !ok {
			return AudioChunk{}, io.EOF
		}
		return chunk, nil
	}
}

// Config returns the capture configuration.
func (p *PortAudioSource) Config() Config {
	return p.cfg
}

// Close stops capture and tears down the PortAudio runtime.
func (p *PortAudioSource) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	p.Stop()
	return portaudio.Terminate()
}

// Stats returns source statistics.
func (p *PortAudioSource) Stats() SourceStats {
	p.mu.Lock()
	running := p.running
	p.mu.Unlock()

	return SourceStats{
		ChunksRead:  p.chunksRead.Load(),
		SamplesRead: p.samplesRead.Load(),
		Overruns:    p.overruns.Load(),
		Running:     running,
		Backend:     "portaudio",
	}
}

// Ensure PortAudioSource implements SourceWithStats.
var _ SourceWithStats = (*PortAudioSource)(nil)
