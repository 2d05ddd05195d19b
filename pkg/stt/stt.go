// Package stt provides a unified interface for speech-to-text recognizers.
//
// A Recognizer captures a single utterance from an audio source and returns
// its transcript. Two network backends are included: Google Cloud Speech
// (batch recognition over a captured utterance) and Deepgram (live streaming
// over a websocket). Both share the same microphone capture and endpointing
// logic, so callers see identical timeout and no-speech behavior regardless
// of backend.
//
// Example usage:
//
//	rec, _ := stt.NewGoogle(ctx,
//	    stt.WithSource(src),
//	    stt.WithLanguage("en-US"),
//	)
//	defer rec.Close()
//
//	res, err := rec.Listen(ctx, stt.ListenOptions{
//	    MaxWait:      60 * time.Second,
//	    MaxUtterance: 120 * time.Second,
//	})
package stt

import (
	"context"
	"time"
)

// Recognizer captures and transcribes a single utterance per call.
type Recognizer interface {
	// Listen waits for speech, captures one utterance, and transcribes it.
	// It returns ErrTimeout when no speech starts within opts.MaxWait and
	// ErrNoSpeech when audio was captured but nothing was recognized.
	Listen(ctx context.Context, opts ListenOptions) (*Result, error)

	// Health checks that the recognizer is configured and reachable.
	Health(ctx context.Context) error

	// Close releases capture and service resources.
	Close() error
}

// ListenOptions bounds a single capture.
type ListenOptions struct {
	// MaxWait is how long to wait for speech to begin before giving up.
	MaxWait time.Duration

	// MaxUtterance caps the length of the captured utterance. Capture ends
	// early when the speaker trails off into silence.
	MaxUtterance time.Duration
}

// withDefaults fills zero fields from package defaults.
func (o ListenOptions) withDefaults() ListenOptions {
	if o.MaxWait <= 0 {
		o.MaxWait = DefaultMaxWait
	}
	if o.MaxUtterance <= 0 {
		o.MaxUtterance = DefaultMaxUtterance
	}
	return o
}

// Default capture bounds.
const (
	DefaultMaxWait      = 60 * time.Second
	DefaultMaxUtterance = 120 * time.Second
)

// Result is one transcribed utterance.
type Result struct {
	// Text is the best transcript, possibly empty.
	Text string

	// Duration is the length of the captured speech audio.
	Duration time.Duration

	// Confidence is the recognizer's confidence in Text, 0 when unknown.
	Confidence float32
}
