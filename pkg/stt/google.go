package stt

import (
	"context"
	"log/slog"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// cloudScope is the OAuth scope for the Speech-to-Text API.
const cloudScope = "https://www.googleapis.com/auth/cloud-platform"

// Google recognizes speech with the Google Cloud Speech-to-Text API.
// It captures a complete utterance locally and submits it as one
// batch recognition request.
type Google struct {
	client *speech.Client
	cfg    *Config
	logger *slog.Logger
	closed bool
}

// NewGoogle creates a Google Cloud recognizer.
// Credentials come from WithCredentialsFile, WithCredentialsJSON, or
// application defaults, in that order.
func NewGoogle(ctx context.Context, opts ...Option) (*Google, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var clientOpts []option.ClientOption
	switch {
	case cfg.CredentialsFile != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
	case len(cfg.CredentialsJSON) > 0:
		creds, err := google.CredentialsFromJSON(ctx, cfg.CredentialsJSON, cloudScope)
		if err != nil {
			return nil, WrapError("google", err)
		}
		clientOpts = append(clientOpts, option.WithCredentials(creds))
	}
	client, err := speech.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, WrapError("google", err)
	}

	return &Google{
		client: client,
		cfg:    cfg,
		logger: cfg.Logger.With("component", "stt.google"),
	}, nil
}

// Listen captures one utterance and transcribes it.
func (g *Google) Listen(ctx context.Context, opts ListenOptions) (*Result, error) {
	if g.closed {
		return nil, ErrClosed
	}

	chunk, err := captureUtterance(ctx, g.cfg, opts, nil)
	if err != nil {
		return nil, err
	}
	captured := time.Duration(chunk.Duration() * float64(time.Second))

	reqCtx, cancel := context.WithTimeout(ctx, g.cfg.RequestTimeout)
	defer cancel()

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:            int32(chunk.SampleRate),
			LanguageCode:               g.cfg.Language,
			EnableAutomaticPunctuation: true,
			Model:                      g.cfg.Model,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: chunk.Bytes()},
		},
	}

	start := time.Now()
	resp, err := g.client.Recognize(reqCtx, req)
	if err != nil {
		return nil, WrapError("google", err)
	}
	g.logger.Debug("recognize complete",
		"captured", captured,
		"latency_ms", time.Since(start).Milliseconds(),
		"results", len(resp.Results))

	var (
		parts      []string
		confidence float32
	)
	for _, res := range resp.Results {
		if len(res.Alternatives) == 0 {
			continue
		}
		alt := res.Alternatives[0]
		if alt.Transcript == "" {
			continue
		}
		parts = append(parts, alt.Transcript)
		if confidence == 0 {
			confidence = alt.Confidence
		}
	}
	text := strings.TrimSpace(strings.Join(parts, " "))
	if text == "" {
		return nil, ErrNoSpeech
	}

	return &Result{Text: text, Duration: captured, Confidence: confidence}, nil
}

// Health reports whether the recognizer is usable. Credentials are verified
// at construction, so after Close this is the only failure mode.
func (g *Google) Health(ctx context.Context) error {
	if g.closed || g.client == nil {
		return ErrClosed
	}
	return nil
}

// Close releases the API client.
func (g *Google) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	return g.client.Close()
}

// Verify Google implements Recognizer at compile time.
var _ Recognizer = (*Google)(nil)
