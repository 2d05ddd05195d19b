package audioio

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// MockSource is a synthetic audio source for testing.
// It generates silence, a continuous sine wave, or a scripted sequence of
// segments, which makes endpointing and recognition paths testable without
// a microphone.
type MockSource struct {
	cfg    Config
	logger *slog.Logger

	mu       sync.Mutex
	running  bool
	closed   bool
	streamCh chan AudioChunk
	stopCh   chan struct{}

	// Stats
	chunksRead  atomic.Int64
	samplesRead atomic.Int64

	// Synthetic audio generation
	phase     float64
	frequency float64 // Hz, 0 = silence
	amplitude float64 // 0.0 to 1.0
	script    []MockSegment
	generated int // samples produced so far, drives script position
	tick      time.Duration
}

// MockSegment is one stretch of scripted audio.
type MockSegment struct {
	// Duration is the audio-time length of the segment.
	Duration time.Duration

	// Frequency of the generated tone in Hz. 0 means silence.
	Frequency float64

	// Amplitude of the tone, 0.0 to 1.0.
	Amplitude float64
}

// MockSourceOption configures a MockSource.
type MockSourceOption func(*MockSource)

// WithSineWave configures the mock to generate a continuous sine wave.
func WithSineWave(frequency, amplitude float64) MockSourceOption {
	return func(m *MockSource) {
		m.frequency = frequency
		m.amplitude = amplitude
	}
}

// WithScript configures the mock to play the given segments in order.
// After the script is exhausted the source produces silence.
func WithScript(segments ...MockSegment) MockSourceOption {
	return func(m *MockSource) {
		m.script = segments
	}
}

// WithTick sets how often the mock emits a chunk of wall-clock time.
// Chunks still carry cfg.BufferDuration of audio, so a small tick plays
// scripted audio faster than real time. Useful to keep tests quick.
func WithTick(d time.Duration) MockSourceOption {
	return func(m *MockSource) {
		m.tick = d
	}
}

// NewMockSource creates a new mock audio source.
func NewMockSource(cfg Config, logger *slog.Logger, opts ...MockSourceOption) *MockSource {
	if logger == nil {
		logger = slog.Default()
	}

	m := &MockSource{
		cfg:       cfg,
		logger:    logger,
		streamCh:  make(chan AudioChunk, 10),
		stopCh:    make(chan struct{}),
		frequency: 0, // Silence by default
		amplitude: 0.5,
		tick:      cfg.BufferDuration,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Start begins generating audio.
func (m *MockSource) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return io.ErrClosedPipe
	}
	if m.running {
		return nil
	}

	m.running = true
	m.stopCh = make(chan struct{})
	m.streamCh = make(chan AudioChunk, 10)
	// Each capture replays the script from the top.
	m.generated = 0
	m.phase = 0

	go m.generateLoop(ctx)

	m.logger.Debug("mock audio source started",
		"sample_rate", m.cfg.SampleRate,
		"scripted", len(m.script) > 0,
	)

	return nil
}

func (m *MockSource) generateLoop(ctx context.Context) {
	ticker := time.NewTicker(m.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Stop()
			return
		case <-m.stopCh:
			return
		case <-ticker.C:
			chunk := m.generateChunk()
			select {
			case m.streamCh <- chunk:
				m.chunksRead.Add(1)
				m.samplesRead.Add(int64(len(chunk.Samples)))
			default:
				// Buffer full, drop chunk (overrun)
			}
		}
	}
}

func (m *MockSource) generateChunk() AudioChunk {
	bufferSize := m.cfg.BufferSize()
	samples := make([]int16, bufferSize*m.cfg.Channels)

	for i := 0; i < bufferSize; i++ {
		freq, amp := m.toneAt(m.generated + i)
		if freq > 0 {
			sample := amp * math.Sin(2*math.Pi*freq*m.phase/float64(m.cfg.SampleRate))
			sampleInt := int16(sample * 32767)
			for ch := 0; ch < m.cfg.Channels; ch++ {
				samples[i*m.cfg.Channels+ch] = sampleInt
			}
			m.phase++
			if m.phase >= float64(m.cfg.SampleRate) {
				m.phase = 0
			}
		}
	}
	m.generated += bufferSize

	return AudioChunk{
		Samples:    samples,
		SampleRate: m.cfg.SampleRate,
		Channels:   m.cfg.Channels,
	}
}

// toneAt returns the frequency and amplitude for the given sample offset.
func (m *MockSource) toneAt(offset int) (float64, float64) {
	if len(m.script) == 0 {
		return m.frequency, m.amplitude
	}
	pos := offset
	for _, seg := range m.script {
		segSamples := int(float64(m.cfg.SampleRate) * seg.Duration.Seconds())
		if pos < segSamples {
			return seg.Frequency, seg.Amplitude
		}
		pos -= segSamples
	}
	return 0, 0 // Script exhausted: silence.
}

// Stop halts audio generation.
func (m *MockSource) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return nil
	}

	m.running = false
	close(m.stopCh)
	close(m.streamCh)

	m.logger.Debug("mock audio source stopped")

	return nil
}

// Read reads the next audio chunk.
func (m *MockSource) Read(ctx context.Context) (AudioChunk, error) {
	select {
	case <-ctx.Done():
		return AudioChunk{}, ctx.Err()
	case chunk, ok := <-m.streamCh:
		if !ok {
			return AudioChunk{}, io.EOF
		}
		return chunk, nil
	}
}

// Config returns the capture configuration.
func (m *MockSource) Config() Config {
	return m.cfg
}

// Close releases resources.
func (m *MockSource) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	m.Stop()
	return nil
}

// Stats returns source statistics.
func (m *MockSource) Stats() SourceStats {
	m.mu.Lock()
	running := m.running
	m.mu.Unlock()

	return SourceStats{
		ChunksRead:  m.chunksRead.Load(),
		SamplesRead: m.samplesRead.Load(),
		Overruns:    0,
		Running:     running,
		Backend:     "mock",
	}
}

// Ensure MockSource implements SourceWithStats.
var _ SourceWithStats = (*MockSource)(nil)
