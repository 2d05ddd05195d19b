package inference

import (
	"context"
	"errors"
	"testing"
)

func TestMockProvider(t *testing.T) {
	ctx := context.Background()
	mock := NewMock()

	// Test Chat
	resp, err := mock.Chat(ctx, &ChatRequest{
		Messages: []Message{NewUserMessage("Hello")},
	})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if resp.Message.Content == "" {
		t.Error("Expected content in response")
	}
	if resp.FinishReason != "stop" {
		t.Errorf("Expected finish_reason 'stop', got %s", resp.FinishReason)
	}

	// Test Models
	models, err := mock.Models(ctx)
	if err != nil {
		t.Fatalf("Models failed: %v", err)
	}
	if len(models) == 0 {
		t.Error("Expected at least one model")
	}

	// Test call tracking
	if mock.CallCount("Chat") != 1 {
		t.Errorf("Expected 1 Chat call, got %d", mock.CallCount("Chat"))
	}
	if mock.CallCount("Models") != 1 {
		t.Errorf("Expected 1 Models call, got %d", mock.CallCount("Models"))
	}

	// Test all calls
	calls := mock.Calls()
	if len(calls) != 2 {
		t.Errorf("Expected 2 calls, got %d", len(calls))
	}

	// Test reset
	mock.Reset()
	if len(mock.Calls()) != 0 {
		t.Error("Expected 0 calls after reset")
	}
}

func TestMockWithError(t *testing.T) {
	ctx := context.Background()
	testErr := errors.New("test error")
	mock := WithError(testErr)

	_, err := mock.Chat(ctx, &ChatRequest{})
	if !errors.Is(err, testErr) {
		t.Errorf("Expected test error, got: %v", err)
	}

	_, err = mock.Models(ctx)
	if !errors.Is(err, testErr) {
		t.Errorf("Expected test error, got: %v", err)
	}
}

func TestFunctionalOptions(t *testing.T) {
	cfg := DefaultConfig()

	// Apply options
	cfg.Apply(
		WithBaseURL("https://api.openai.com/v1"),
		WithAPIKey("test-key"),
		WithModel("gpt-4o-mini"),
		WithMaxTokens(512),
		WithTemperature(0.5),
	)

	if cfg.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("Expected OpenAI URL, got %s", cfg.BaseURL)
	}
	if cfg.APIKey != "test-key" {
		t.Errorf("Expected test-key, got %s", cfg.APIKey)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("Expected gpt-4o-mini, got %s", cfg.Model)
	}
	if cfg.MaxTokens != 512 {
		t.Errorf("Expected 512, got %d", cfg.MaxTokens)
	}
	if cfg.Temperature != 0.5 {
		t.Errorf("Expected 0.5, got %f", cfg.Temperature)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BaseURL != "http://localhost:11434/v1" {
		t.Errorf("Expected Ollama URL, got %s", cfg.BaseURL)
	}
	if cfg.Model != "llama3.2:3b" {
		t.Errorf("Expected llama3.2:3b, got %s", cfg.Model)
	}
	if cfg.MaxTokens != 1024 {
		t.Errorf("Expected 1024, got %d", cfg.MaxTokens)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("Expected 3 retries, got %d", cfg.MaxRetries)
	}
	if cfg.APIKey != "" {
		t.Errorf("Expected no default API key, got %s", cfg.APIKey)
	}
}

func TestAPIError(t *testing.T) {
	// Test rate limit
	err := &APIError{StatusCode: 429, Message: "rate limited", Provider: "test"}
	if !err.IsRateLimited() {
		t.Error("Expected IsRateLimited() to be true")
	}
	if !err.IsRetryable() {
		t.Error("Expected IsRetryable() to be true for 429")
	}

	// Test unauthorized
	err = &APIError{StatusCode: 401, Message: "unauthorized", Provider: "test"}
	if !err.IsUnauthorized() {
		t.Error("Expected IsUnauthorized() to be true")
	}
	if err.IsRetryable() {
		t.Error("Expected IsRetryable() to be false for 401")
	}

	// Test not found (Ollama returns this for unknown models)
	err = &APIError{StatusCode: 404, Message: "model not found", Provider: "test"}
	if !err.IsNotFound() {
		t.Error("Expected IsNotFound() to be true")
	}
	if err.IsRetryable() {
		t.Error("Expected IsRetryable() to be false for 404")
	}

	// Test server error
	err = &APIError{StatusCode: 500, Message: "server error", Provider: "test"}
	if !err.IsServerError() {
		t.Error("Expected IsServerError() to be true")
	}
	if !err.IsRetryable() {
		t.Error("Expected IsRetryable() to be true for 500")
	}

	// Test error string with code
	err = &APIError{StatusCode: 400, Message: "bad request", Code: "invalid_request", Provider: "test"}
	errStr := err.Error()
	if errStr == "" {
		t.Error("Expected non-empty error string")
	}
}

func TestProviderErrorUnwrap(t *testing.T) {
	wrapped := WrapError("test", ErrModelNotFound)
	if !errors.Is(wrapped, ErrModelNotFound) {
		t.Error("Expected wrapped error to match sentinel")
	}
	if WrapError("test", nil) != nil {
		t.Error("Expected nil for nil error")
	}
}

func TestMessageHelpers(t *testing.T) {
	// Test NewSystemMessage
	sys := NewSystemMessage("You are an encouraging English tutor")
	if sys.Role != RoleSystem || sys.Content != "You are an encouraging English tutor" {
		t.Error("NewSystemMessage failed")
	}

	// Test NewUserMessage
	user := NewUserMessage("Hello")
	if user.Role != RoleUser || user.Content != "Hello" {
		t.Error("NewUserMessage failed")
	}

	// Test NewAssistantMessage
	asst := NewAssistantMessage("Hi there")
	if asst.Role != RoleAssistant || asst.Content != "Hi there" {
		t.Error("NewAssistantMessage failed")
	}
}

func TestMockLastCall(t *testing.T) {
	mock := NewMock()

	// No calls yet
	if mock.LastCall() != nil {
		t.Error("Expected nil LastCall before any calls")
	}

	// Make a call
	ctx := context.Background()
	mock.Chat(ctx, &ChatRequest{})

	last := mock.LastCall()
	if last == nil {
		t.Fatal("Expected non-nil LastCall after call")
	}
	if last.Method != "Chat" {
		t.Errorf("Expected method 'Chat', got %s", last.Method)
	}
}
