package tts

import (
	"log/slog"
	"time"
)

// Config holds synthesis engine configuration.
// Use functional options (WithXxx) to set these values.
type Config struct {
	// Voice configuration
	Language     string
	Voice        string
	SpeakingRate float64 // Network engines, 1.0 = normal speed.
	WordsPerMin  int     // Offline engines.
	Volume       float64 // 0.0 to 1.0.

	// Credentials. Inline JSON is used when no file is set.
	CredentialsFile string
	CredentialsJSON []byte

	// Command overrides the offline engine binary (espeak-ng, say).
	Command string

	// Playback
	Player Player

	// ChunkLimit is the longest fragment sent per synthesis request.
	ChunkLimit int

	// Timeout bounds a single synthesis request.
	Timeout time.Duration

	// Observability
	Logger *slog.Logger
}

// Option is a functional option for configuring synthesis engines.
type Option func(*Config)

// WithLanguage sets the synthesis language code.
func WithLanguage(lang string) Option {
	return func(c *Config) {
		c.Language = lang
	}
}

// WithVoice sets the voice name.
func WithVoice(voice string) Option {
	return func(c *Config) {
		c.Voice = voice
	}
}

// WithSpeakingRate sets the network engine speaking rate.
// 1.0 is normal speed; learners usually prefer slightly slower.
func WithSpeakingRate(rate float64) Option {
	return func(c *Config) {
		c.SpeakingRate = rate
	}
}

// WithWordsPerMinute sets the offline engine speaking rate.
func WithWordsPerMinute(wpm int) Option {
	return func(c *Config) {
		c.WordsPerMin = wpm
	}
}

// WithVolume sets playback volume for engines that support it.
func WithVolume(volume float64) Option {
	return func(c *Config) {
		c.Volume = volume
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

// WithCommand overrides the offline engine binary.
func WithCommand(cmd string) Option {
	return func(c *Config) {
		c.Command = cmd
	}
}

// WithPlayer sets the audio player used for playback.
func WithPlayer(p Player) Option {
	return func(c *Config) {
		c.Player = p
	}
}

// WithChunkLimit overrides the per-request text length limit.
func WithChunkLimit(limit int) Option {
	return func(c *Config) {
		c.ChunkLimit = limit
	}
}

// WithTimeout sets the synthesis request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithLogger sets the structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// DefaultConfig returns sensible default configuration.
// The speaking rate defaults a touch below native speed, which suits
// learners.
func DefaultConfig() *Config {
	return &Config{
		Language:     "en-US",
		SpeakingRate: 0.9,
		WordsPerMin:  160,
		Volume:       0.9,
		ChunkLimit:   DefaultChunkLimit,
		Timeout:      30 * time.Second,
		Logger:       slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}
