package tts_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/talkware/go-parley/pkg/tts"
)

func TestMockEngine(t *testing.T) {
	mock := tts.NewMock()
	ctx := context.Background()

	t.Run("Speak succeeds", func(t *testing.T) {
		if err := mock.Speak(ctx, "Hello world"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("Health returns nil", func(t *testing.T) {
		if err := mock.Health(ctx); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("Calls are tracked", func(t *testing.T) {
		if mock.CallCount("Speak") != 1 {
			t.Errorf("expected 1 Speak call, got %d", mock.CallCount("Speak"))
		}
		last := mock.LastCall()
		if last == nil || last.Method != "Health" {
			t.Errorf("expected last call Health, got %+v", last)
		}
		spoken := mock.SpokenText()
		if len(spoken) != 1 || spoken[0] != "Hello world" {
			t.Errorf("unexpected spoken text: %v", spoken)
		}
	})

	t.Run("Reset clears calls", func(t *testing.T) {
		mock.Reset()
		if len(mock.Calls()) != 0 {
			t.Error("expected calls to be cleared")
		}
	})
}

func TestMockWithError(t *testing.T) {
	testErr := errors.New("test error")
	mock := tts.NewMockWithError(testErr)
	ctx := context.Background()

	if err := mock.Speak(ctx, "Hello"); !errors.Is(err, testErr) {
		t.Errorf("expected test error, got %v", err)
	}
	if err := mock.Health(ctx); !errors.Is(err, testErr) {
		t.Errorf("expected test error, got %v", err)
	}
}

func TestFunctionalOptions(t *testing.T) {
	cfg := tts.DefaultConfig()
	cfg.Apply(
		tts.WithVoice("en-US-Neural2-F"),
		tts.WithLanguage("en-GB"),
		tts.WithSpeakingRate(0.7),
		tts.WithWordsPerMinute(140),
		tts.WithTimeout(5*time.Second),
		tts.WithChunkLimit(120),
		tts.WithCredentialsJSON([]byte(`{"type":"service_account"}`)),
	)

	if cfg.Voice != "en-US-Neural2-F" {
		t.Errorf("expected voice en-US-Neural2-F, got %s", cfg.Voice)
	}
	if cfg.Language != "en-GB" {
		t.Errorf("expected language en-GB, got %s", cfg.Language)
	}
	if cfg.SpeakingRate != 0.7 {
		t.Errorf("expected rate 0.7, got %f", cfg.SpeakingRate)
	}
	if cfg.WordsPerMin != 140 {
		t.Errorf("expected 140 wpm, got %d", cfg.WordsPerMin)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", cfg.Timeout)
	}
	if cfg.ChunkLimit != 120 {
		t.Errorf("expected chunk limit 120, got %d", cfg.ChunkLimit)
	}
	if string(cfg.CredentialsJSON) != `{"type":"service_account"}` {
		t.Errorf("unexpected credentials JSON: %s", cfg.CredentialsJSON)
	}
}

func TestAPIError(t *testing.T) {
	t.Run("IsRateLimited", func(t *testing.T) {
		err := &tts.APIError{StatusCode: 429, Message: "rate limited"}
		if !err.IsRateLimited() {
			t.Error("expected IsRateLimited true")
		}
		if err.IsUnauthorized() {
			t.Error("expected IsUnauthorized false")
		}
	})

	t.Run("IsServerError", func(t *testing.T) {
		for _, code := range []int{500, 502, 503, 504} {
			err := &tts.APIError{StatusCode: code}
			if !err.IsServerError() {
				t.Errorf("expected IsServerError true for %d", code)
			}
			if !err.IsRetryable() {
				t.Errorf("expected IsRetryable true for %d", code)
			}
		}
	})

	t.Run("Error message format", func(t *testing.T) {
		err := &tts.APIError{
			StatusCode: 400,
			Message:    "bad request",
			Provider:   "google",
		}
		if msg := err.Error(); msg != "tts [google]: API error 400: bad request" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})
}

func TestProviderError(t *testing.T) {
	inner := errors.New("connection failed")
	err := tts.WrapError("google", inner)

	if err == nil {
		t.Fatal("expected error")
	}

	if err.Error() != "tts [google]: connection failed" {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	var pe *tts.ProviderError
	if !errors.As(err, &pe) {
		t.Error("expected ProviderError")
	}
	if pe.Provider != "google" {
		t.Errorf("expected provider google, got %s", pe.Provider)
	}
	if !errors.Is(err, inner) {
		t.Error("expected wrapped error to match inner")
	}
}
