package tts

import (
	"context"
	"log/slog"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// cloudScope is the OAuth scope for the Text-to-Speech API.
const cloudScope = "https://www.googleapis.com/auth/cloud-platform"

// Google synthesizes speech with the Google Cloud Text-to-Speech API.
// Long text is split at sentence boundaries and synthesized per fragment,
// which keeps requests small and lets Stop take effect between fragments.
type Google struct {
	client *texttospeech.Client
	cfg    *Config
	logger *slog.Logger
	closed bool
}

// NewGoogle creates a Google Cloud synthesis engine.
// Credentials come from WithCredentialsFile, WithCredentialsJSON, or
// application defaults, in that order.
// A Player is required for Speak; Synthesize works without one.
func NewGoogle(ctx context.Context, opts ...Option) (*Google, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

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
	client, err := texttospeech.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, WrapError("google", err)
	}

	return &Google{
		client: client,
		cfg:    cfg,
		logger: cfg.Logger.With("component", "tts.google"),
	}, nil
}

// Speak synthesizes text fragment by fragment and plays each one.
func (g *Google) Speak(ctx context.Context, text string) error {
	if g.closed {
		return ErrClosed
	}
	if g.cfg.Player == nil {
		return ErrNoPlayer
	}

	for _, chunk := range SplitText(text, g.cfg.ChunkLimit) {
		if err := ctx.Err(); err != nil {
			return err
		}
		result, err := g.Synthesize(ctx, chunk)
		if err != nil {
			return err
		}
		if err := g.cfg.Player.Play(ctx, result.Audio, string(result.Encoding)); err != nil {
			return WrapError("google", err)
		}
	}
	return nil
}

// Synthesize converts one text fragment to MP3 audio.
func (g *Google) Synthesize(ctx context.Context, text string) (*AudioResult, error) {
	if g.closed {
		return nil, ErrClosed
	}

	reqCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: g.cfg.Language,
			Name:         g.cfg.Voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  g.cfg.SpeakingRate,
		},
	}

	start := time.Now()
	resp, err := g.client.SynthesizeSpeech(reqCtx, req)
	if err != nil {
		return nil, WrapError("google", err)
	}
	latency := time.Since(start).Milliseconds()

	g.logger.Debug("synthesized fragment",
		"chars", len(text),
		"bytes", len(resp.AudioContent),
		"latency_ms", latency,
	)

	return &AudioResult{
		Audio:     resp.AudioContent,
		Encoding:  EncodingMP3,
		CharCount: len(text),
		LatencyMs: latency,
	}, nil
}

// Stop interrupts playback of the current fragment.
func (g *Google) Stop() {
	if g.cfg.Player != nil {
		g.cfg.Player.Stop()
	}
}

// Voices lists the voices available for the configured language.
func (g *Google) Voices(ctx context.Context) ([]Voice, error) {
	if g.closed {
		return nil, ErrClosed
	}

	resp, err := g.client.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{
		LanguageCode: g.cfg.Language,
	})
	if err != nil {
		return nil, WrapError("google", err)
	}

	voices := make([]Voice, 0, len(resp.Voices))
	for _, v := range resp.Voices {
		voices = append(voices, Voice{
			Name:       v.Name,
			Gender:     v.SsmlGender.String(),
			SampleRate: int(v.NaturalSampleRateHertz),
		})
	}
	return voices, nil
}

// Health verifies connectivity by listing voices.
func (g *Google) Health(ctx context.Context) error {
	if g.closed {
		return ErrClosed
	}
	_, err := g.Voices(ctx)
	return err
}

// Close releases the API client.
func (g *Google) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	return g.client.Close()
}

// Verify Google implements Synthesizer at compile time.
var _ Synthesizer = (*Google)(nil)
