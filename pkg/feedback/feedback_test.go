package feedback

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/talkware/go-parley/pkg/inference"
	"github.com/talkware/go-parley/pkg/question"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFeedbackPromptIncludesContext(t *testing.T) {
	var captured *inference.ChatRequest

	mock := inference.NewMock()
	mock.ChatFunc = func(ctx context.Context, req *inference.ChatRequest) (*inference.ChatResponse, error) {
		captured = req
		return &inference.ChatResponse{
			Message:      inference.NewAssistantMessage("  Nice answer! Try using the past tense.  "),
			FinishReason: "stop",
		}, nil
	}

	gen := NewGenerator(mock, WithLogger(quietLogger()))
	text := gen.Feedback(context.Background(),
		"What did you do today?",
		"I go to the market",
		question.LevelBeginner,
	)

	if text != "Nice answer! Try using the past tense." {
		t.Errorf("Expected trimmed model output, got %q", text)
	}

	if captured == nil {
		t.Fatal("Expected a chat request")
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("Expected system + user message, got %d messages", len(captured.Messages))
	}

	system := captured.Messages[0]
	if system.Role != inference.RoleSystem {
		t.Errorf("Expected system role, got %s", system.Role)
	}
	for _, want := range []string{
		`answered: "What did you do today?"`,
		`response was: "I go to the market"`,
		"Level: beginner",
		"encouraging English conversation tutor",
		"follow-up question",
	} {
		if !strings.Contains(system.Content, want) {
			t.Errorf("System prompt missing %q", want)
		}
	}

	user := captured.Messages[1]
	if user.Role != inference.RoleUser {
		t.Errorf("Expected user role, got %s", user.Role)
	}
	if user.Content != "My response was: 'I go to the market'" {
		t.Errorf("Unexpected user message: %q", user.Content)
	}
}

func TestFeedbackEmptyCompletion(t *testing.T) {
	mock := inference.NewMock()
	mock.ChatFunc = func(ctx context.Context, req *inference.ChatRequest) (*inference.ChatResponse, error) {
		return &inference.ChatResponse{
			Message:      inference.NewAssistantMessage("   "),
			FinishReason: "stop",
		}, nil
	}

	gen := NewGenerator(mock, WithLogger(quietLogger()))
	text := gen.Feedback(context.Background(), "q", "a", question.LevelIntermediate)

	if text != "Great job speaking English! Keep practicing." {
		t.Errorf("Expected empty-completion fallback, got %q", text)
	}
}

func TestFeedbackProviderError(t *testing.T) {
	mock := inference.WithError(errors.New("connection refused"))

	gen := NewGenerator(mock, WithLogger(quietLogger()))
	text := gen.Feedback(context.Background(), "q", "a", question.LevelAdvanced)

	if !strings.HasPrefix(text, "Good effort! Let's continue practicing. (Error: ") {
		t.Errorf("Expected error fallback, got %q", text)
	}
	if !strings.Contains(text, "connection refused") {
		t.Errorf("Expected error detail in fallback, got %q", text)
	}
}

func TestFeedbackMaxTokens(t *testing.T) {
	var captured *inference.ChatRequest

	mock := inference.NewMock()
	mock.ChatFunc = func(ctx context.Context, req *inference.ChatRequest) (*inference.ChatResponse, error) {
		captured = req
		return &inference.ChatResponse{Message: inference.NewAssistantMessage("ok")}, nil
	}

	gen := NewGenerator(mock, WithLogger(quietLogger()))
	gen.Feedback(context.Background(), "q", "a", question.LevelBeginner)
	if captured.MaxTokens != DefaultMaxTokens {
		t.Errorf("Expected default max tokens %d, got %d", DefaultMaxTokens, captured.MaxTokens)
	}

	gen = NewGenerator(mock, WithMaxTokens(64), WithLogger(quietLogger()))
	gen.Feedback(context.Background(), "q", "a", question.LevelBeginner)
	if captured.MaxTokens != 64 {
		t.Errorf("Expected max tokens 64, got %d", captured.MaxTokens)
	}
}
