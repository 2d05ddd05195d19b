package stt

import (
	"log/slog"
	"time"

	"github.com/talkware/go-parley/pkg/audioio"
)

// Config holds recognizer configuration.
// Use functional options (WithXxx) to set these values.
type Config struct {
	// Source is the microphone or other capture device.
	Source audioio.Source

	// Language is the BCP-47 recognition language.
	Language string

	// SampleRate is the rate recognition backends expect, in Hz. Captured
	// audio at other rates is resampled before recognition.
	SampleRate int

	// APIKey authenticates key-based backends (Deepgram).
	APIKey string

	// CredentialsFile points at a service account JSON file for Google.
	// When empty, application default credentials are used.
	CredentialsFile string

	// CredentialsJSON is service account JSON passed inline, for deploys
	// where mounting a credentials file is awkward. CredentialsFile wins
	// when both are set.
	CredentialsJSON []byte

	// Model selects a backend-specific recognition model.
	Model string

	// Endpointing parameters.
	Endpoint EndpointConfig

	// RequestTimeout bounds a single recognition request.
	RequestTimeout time.Duration

	// Observability
	Logger *slog.Logger
}

// EndpointConfig tunes how utterance boundaries are detected.
type EndpointConfig struct {
	// SilenceRMS is the energy floor below which a frame counts as silence.
	// It is raised automatically when ambient calibration measures a louder
	// noise floor.
	SilenceRMS float64

	// TailSilence is how much trailing silence ends an utterance.
	TailSilence time.Duration

	// MinSpeech is the minimum amount of speech before trailing silence can
	// end the capture, filtering out clicks and coughs.
	MinSpeech time.Duration

	// Calibration is how long to sample ambient noise before listening.
	Calibration time.Duration
}

// Option is a functional option for configuring recognizers.
type Option func(*Config)

// WithSource sets the audio capture source.
func WithSource(src audioio.Source) Option {
	return func(c *Config) {
		c.Source = src
	}
}

// WithLanguage sets the recognition language.
func WithLanguage(lang string) Option {
	return func(c *Config) {
		c.Language = lang
	}
}

// WithSampleRate sets the recognition sample rate in Hz.
func WithSampleRate(rate int) Option {
	return func(c *Config) {
		c.SampleRate = rate
	}
}

// WithAPIKey sets the API key for key-based backends.
func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithCredentialsFile sets the Google service account file.
func WithCredentialsFile(path string) Option {
	return func(c *Config) {
		c.CredentialsFile = path
	}
}

// WithCredentialsJSON sets inline Google service account JSON.
func WithCredentialsJSON(data []byte) Option {
	return func(c *Config) {
		c.CredentialsJSON = data
	}
}

// WithModel selects a backend-specific model.
func WithModel(model string) Option {
	return func(c *Config) {
		c.Model = model
	}
}

// WithEndpointing overrides utterance boundary detection parameters.
func WithEndpointing(ep EndpointConfig) Option {
	return func(c *Config) {
		c.Endpoint = ep
	}
}

// WithRequestTimeout bounds a single recognition request.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.RequestTimeout = d
	}
}

// WithLogger sets the structured logger for the recognizer.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		Language:   "en-US",
		SampleRate: 16000,
		Endpoint: EndpointConfig{
			SilenceRMS:  500,
			TailSilence: 800 * time.Millisecond,
			MinSpeech:   200 * time.Millisecond,
			Calibration: 300 * time.Millisecond,
		},
		RequestTimeout: 30 * time.Second,
		Logger:         slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Source == nil {
		return ErrNoSource
	}
	return nil
}
