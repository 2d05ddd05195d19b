// Package inference provides a unified client for OpenAI-compatible chat
// completion APIs.
//
// The package abstracts chat completions behind a single Provider interface,
// enabling seamless switching between a local Ollama server (the default),
// OpenAI, vLLM, Together, and anything else speaking the OpenAI-compatible
// API. Feedback generation and free conversation both sit on top of this
// interface.
//
// Example usage:
//
//	client, _ := inference.NewClient(
//	    inference.WithBaseURL("http://localhost:11434/v1"),
//	    inference.WithModel("llama3.2:3b"),
//	)
//	defer client.Close()
//
//	resp, _ := client.Chat(ctx, &inference.ChatRequest{
//	    Messages: []inference.Message{
//	        inference.NewSystemMessage("You are an encouraging English tutor."),
//	        inference.NewUserMessage("My response was: 'I am liking pizza.'"),
//	    },
//	})
package inference

import "context"

// Provider is the unified chat inference interface.
// All implementations must satisfy this interface.
// Responses are returned whole: feedback and conversation replies are
// displayed and spoken as complete utterances, so there is no streaming
// surface.
type Provider interface {
	// Chat generates a response from a sequence of messages.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// Models lists the model names available from the provider.
	Models(ctx context.Context) ([]string, error)

	// Health checks provider connectivity and API key validity.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// ChatRequest for chat completions.
type ChatRequest struct {
	// Messages is the conversation history.
	Messages []Message

	// Model overrides the default model.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int

	// Temperature controls randomness (0.0-2.0).
	Temperature float64

	// TopP controls nucleus sampling.
	TopP float64

	// Stop sequences that halt generation.
	Stop []string
}

// ChatResponse from chat completion.
type ChatResponse struct {
	// Message is the assistant's response.
	Message Message

	// FinishReason indicates why generation stopped.
	FinishReason string

	// Usage tracks token consumption.
	Usage Usage

	// Model used for generation.
	Model string

	// LatencyMs is the response time in milliseconds.
	LatencyMs int64
}

// Usage tracks token consumption for billing and limits.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
