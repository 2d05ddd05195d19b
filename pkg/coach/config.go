// Package coach provides the go-parley application: the practice menu and
// the lifecycle of everything behind it - the Ollama-backed tutor, speech
// recognition, speech synthesis, and persisted user settings.
package coach

import (
	"fmt"
	"os"

	"github.com/talkware/go-parley/internal/config"
)

// Default configuration values.
const (
	DefaultModel     = "llama3.2:3b"
	DefaultOllamaURL = "http://localhost:11434/v1"
)

// Recognizer backends.
const (
	RecognizerGoogle   = "google"
	RecognizerDeepgram = "deepgram"
	RecognizerText     = "text"
)

// Config holds all configuration for the practice application.
// Flag parsing is done in cmd/parley/main.go; this struct is data only.
type Config struct {
	// Debug enables verbose debug logging.
	Debug bool

	// DebugAudio enables very verbose audio capture logging and dumps the
	// last utterance to a WAV file in the temp directory.
	DebugAudio bool

	// Model is the Ollama model that powers tutoring and feedback.
	Model string

	// OllamaURL is the OpenAI-compatible base URL of the Ollama server.
	OllamaURL string

	// Recognizer selects the speech backend: "google", "deepgram", or
	// "text" for typed practice without a microphone.
	Recognizer string

	// SettingsPath overrides where user settings are stored.
	// Empty uses ~/.parley/settings.json.
	SettingsPath string

	// API keys and credentials (typically from environment variables).
	// CredentialsJSON carries service account JSON inline for deploys
	// without a mountable credentials file.
	DeepgramKey     string
	CredentialsFile string
	CredentialsJSON string
}

// DefaultConfig returns sensible defaults for the practice application.
func DefaultConfig() Config {
	return Config{
		Model:      DefaultModel,
		OllamaURL:  DefaultOllamaURL,
		Recognizer: RecognizerGoogle,
	}
}

// LoadEnvConfig loads configuration values from environment variables.
// Call this before flag parsing so flags take priority.
func (c *Config) LoadEnvConfig() {
	c.Model = config.Env("PARLEY_MODEL", c.Model)
	c.OllamaURL = config.Env("OLLAMA_URL", c.OllamaURL)
	c.Recognizer = config.Env("PARLEY_RECOGNIZER", c.Recognizer)
	c.DeepgramKey = os.Getenv("DEEPGRAM_API_KEY")
	c.CredentialsFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	c.CredentialsJSON = os.Getenv("GOOGLE_CREDENTIALS_JSON")
	c.Debug = config.EnvBool("PARLEY_DEBUG", c.Debug)
	c.DebugAudio = config.EnvBool("PARLEY_DEBUG_AUDIO", c.DebugAudio)
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Model == "" {
		return &ConfigError{Field: "Model", Message: "model name is required"}
	}
	if c.OllamaURL == "" {
		return &ConfigError{Field: "OllamaURL", Message: "Ollama URL is required"}
	}
	switch c.Recognizer {
	case RecognizerGoogle, RecognizerDeepgram, RecognizerText:
	default:
		return &ConfigError{
			Field:   "Recognizer",
			Message: fmt.Sprintf("unknown recognizer %q (want google, deepgram, or text)", c.Recognizer),
		}
	}
	if c.Recognizer == RecognizerDeepgram && c.DeepgramKey == "" {
		return &ConfigError{
			Field:   "DeepgramKey",
			Message: "DEEPGRAM_API_KEY environment variable is required for the deepgram recognizer",
		}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
