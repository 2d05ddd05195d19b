//go:build integration

package tts_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/talkware/go-parley/pkg/tts"
)

// TestGoogleIntegration tests the real Google Cloud Text-to-Speech API.
// Run with: go test -tags=integration -v ./pkg/tts/...
func TestGoogleIntegration(t *testing.T) {
	creds := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if creds == "" {
		t.Skip("GOOGLE_APPLICATION_CREDENTIALS not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	engine, err := tts.NewGoogle(ctx,
		tts.WithCredentialsFile(creds),
		tts.WithLanguage("en-US"),
	)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	defer engine.Close()

	t.Run("Health", func(t *testing.T) {
		if err := engine.Health(ctx); err != nil {
			t.Fatalf("health check failed: %v", err)
		}
		t.Log("✅ Health check passed")
	})

	t.Run("Voices", func(t *testing.T) {
		voices, err := engine.Voices(ctx)
		if err != nil {
			t.Fatalf("voices failed: %v", err)
		}
		if len(voices) == 0 {
			t.Fatal("expected at least one en-US voice")
		}
		t.Logf("✅ Listed %d voices, first: %s", len(voices), voices[0].Name)
	})

	t.Run("Synthesize", func(t *testing.T) {
		result, err := engine.Synthesize(ctx, "Hello, let's practice English together.")
		if err != nil {
			t.Fatalf("synthesize failed: %v", err)
		}

		t.Logf("✅ Synthesized: %d bytes, latency: %dms", len(result.Audio), result.LatencyMs)

		if len(result.Audio) < 1000 {
			t.Error("audio too short, expected at least 1KB")
		}
		if result.Encoding != tts.EncodingMP3 {
			t.Errorf("expected MP3 encoding, got %s", result.Encoding)
		}
	})
}

// TestLocalIntegration speaks through the local engine when one is installed.
// Run with: go test -tags=integration -v ./pkg/tts/...
func TestLocalIntegration(t *testing.T) {
	engine, err := tts.NewLocal(tts.WithWordsPerMinute(200))
	if err != nil {
		t.Skipf("no local speech engine available: %v", err)
	}
	defer engine.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	t.Run("Health", func(t *testing.T) {
		if err := engine.Health(ctx); err != nil {
			t.Fatalf("health check failed: %v", err)
		}
		t.Log("✅ Health check passed")
	})

	t.Run("Speak", func(t *testing.T) {
		if err := engine.Speak(ctx, "Testing the offline voice."); err != nil {
			t.Fatalf("speak failed: %v", err)
		}
		t.Log("✅ Spoke through local engine")
	})
}
