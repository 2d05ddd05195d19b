// Package tts provides a unified interface for text-to-speech engines.
//
// Two backends are included: Google Cloud Text-to-Speech (network, natural
// voices) and a local engine driving espeak-ng or the macOS say command
// (offline, always available). All engines implement the Synthesizer
// interface, enabling seamless switching without changing caller code, and
// a Chain falls back from one engine to the next when synthesis fails.
//
// Example usage:
//
//	synth, _ := tts.NewGoogle(ctx,
//	    tts.WithVoice("en-US-Neural2-F"),
//	    tts.WithPlayer(player),
//	)
//	defer synth.Close()
//
//	_ = synth.Speak(ctx, "Hello! Let's practice English.")
package tts

import (
	"context"
)

// Synthesizer renders text as audible speech.
// Speak blocks until playback completes so callers can sequence speech
// against microphone capture.
type Synthesizer interface {
	// Speak renders text and plays it through the speakers, blocking until
	// playback finishes or ctx is cancelled. Empty text is a no-op.
	Speak(ctx context.Context, text string) error

	// Stop interrupts any in-progress playback.
	// It is safe to call Stop at any time, including when nothing is playing.
	Stop()

	// Health checks engine connectivity and configuration.
	Health(ctx context.Context) error

	// Close releases any resources held by the engine.
	Close() error
}

// Player plays encoded audio through the speakers.
// Implementations block until playback completes.
type Player interface {
	// Play decodes and plays audio. The encoding value matches the
	// Encoding constants in this package.
	Play(ctx context.Context, audio []byte, encoding string) error

	// Stop halts playback immediately.
	Stop()
}

// AudioResult represents a complete audio synthesis result.
type AudioResult struct {
	// Audio contains the raw audio data in the specified encoding.
	Audio []byte

	// Encoding describes the audio codec.
	Encoding Encoding

	// CharCount is the number of characters synthesized.
	CharCount int

	// LatencyMs is the synthesis request latency in milliseconds.
	LatencyMs int64
}

// Encoding represents audio encoding types.
type Encoding string

const (
	// EncodingMP3 is MP3 compressed audio, the network engine's output.
	EncodingMP3 Encoding = "mp3"

	// EncodingWAV is 16-bit PCM in a WAV container.
	EncodingWAV Encoding = "wav"
)

// DefaultChunkLimit is the longest text fragment sent to a network engine
// in one request. Longer text is split at sentence boundaries.
const DefaultChunkLimit = 200

// Voice describes an available synthesis voice.
type Voice struct {
	// Name is the engine-specific voice identifier.
	Name string

	// Gender is the reported voice gender, when known.
	Gender string

	// SampleRate is the voice's natural sample rate in Hz.
	SampleRate int
}
