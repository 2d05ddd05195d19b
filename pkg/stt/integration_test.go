//go:build integration

package stt_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/talkware/go-parley/pkg/audioio"
	"github.com/talkware/go-parley/pkg/stt"
)

// TestDeepgramIntegration tests the real Deepgram API with a live microphone.
// Run with: go test -tags=integration -v ./pkg/stt/...
func TestDeepgramIntegration(t *testing.T) {
	apiKey := os.Getenv("DEEPGRAM_API_KEY")
	if apiKey == "" {
		t.Skip("DEEPGRAM_API_KEY not set")
	}

	src, err := audioio.NewSource(audioio.DefaultConfig(), nil)
	if err != nil {
		t.Skipf("no audio device: %v", err)
	}
	defer src.Close()

	rec, err := stt.NewDeepgram(
		stt.WithAPIKey(apiKey),
		stt.WithSource(src),
	)
	if err != nil {
		t.Fatalf("failed to create recognizer: %v", err)
	}
	defer rec.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	t.Run("Health", func(t *testing.T) {
		if err := rec.Health(ctx); err != nil {
			t.Fatalf("health check failed: %v", err)
		}
	})

	t.Run("Listen", func(t *testing.T) {
		fmt.Println("🎤 Say something within 10 seconds...")
		res, err := rec.Listen(ctx, stt.ListenOptions{
			MaxWait:      10 * time.Second,
			MaxUtterance: 15 * time.Second,
		})
		if err != nil {
			t.Fatalf("listen failed: %v", err)
		}
		t.Logf("heard: %q (%.1fs, confidence %.2f)", res.Text, res.Duration.Seconds(), res.Confidence)
	})
}

// TestGoogleIntegration tests the real Google Cloud Speech API.
func TestGoogleIntegration(t *testing.T) {
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		t.Skip("GOOGLE_APPLICATION_CREDENTIALS not set")
	}

	src, err := audioio.NewSource(audioio.DefaultConfig(), nil)
	if err != nil {
		t.Skipf("no audio device: %v", err)
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rec, err := stt.NewGoogle(ctx, stt.WithSource(src))
	if err != nil {
		t.Fatalf("failed to create recognizer: %v", err)
	}
	defer rec.Close()

	fmt.Println("🎤 Say something within 10 seconds...")
	res, err := rec.Listen(ctx, stt.ListenOptions{
		MaxWait:      10 * time.Second,
		MaxUtterance: 15 * time.Second,
	})
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	t.Logf("heard: %q (%.1fs)", res.Text, res.Duration.Seconds())
}
