// Package feedback turns practice answers into tutor feedback using a
// language model behind inference.Provider.
//
// Feedback generation never fails: if the model is unreachable or returns
// nothing, a generic encouragement is substituted so the practice session
// always keeps moving. Callers get a non-empty string on every path.
//
// Example usage:
//
//	provider, _ := inference.NewClient()
//	gen := feedback.NewGenerator(provider)
//
//	text := gen.Feedback(ctx, "What did you do today?",
//	    "I go to the market and buy vegetables", question.LevelBeginner)
//	fmt.Println(text)
package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/talkware/go-parley/pkg/inference"
	"github.com/talkware/go-parley/pkg/question"
)

// DefaultMaxTokens bounds feedback to a few conversational sentences.
const DefaultMaxTokens = 256

// tutorPrompt is the persona given to the model for each exchange. The
// student's answer appears both here and in the user message; local models
// follow the rubric far more reliably with the duplication.
const tutorPrompt = `You are an encouraging English conversation tutor. The student just answered: "%s"

Their response was: "%s"

Level: %s

Provide feedback that includes:
1. Positive encouragement about what they did well
2. Gentle corrections for any errors (grammar, vocabulary, pronunciation hints)
3. Suggestions to expand their answer or improve fluency
4. A natural follow-up question to continue the conversation

Keep feedback conversational, supportive, and specific. Focus on building confidence while improving their English.`

// Fallbacks keep the session moving when the model is silent or down.
const (
	emptyFallback = "Great job speaking English! Keep practicing."
	errorFallback = "Good effort! Let's continue practicing. (Error: %v)"
)

// Generator produces tutor feedback for practice answers.
type Generator struct {
	provider  inference.Provider
	maxTokens int
	logger    *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithMaxTokens bounds the length of generated feedback.
func WithMaxTokens(n int) Option {
	return func(g *Generator) { g.maxTokens = n }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator creates a feedback generator over the given provider.
func NewGenerator(provider inference.Provider, opts ...Option) *Generator {
	g := &Generator{
		provider:  provider,
		maxTokens: DefaultMaxTokens,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("component", "feedback")
	return g
}

// Feedback generates tutor feedback for one answered question.
// It never fails: model errors and empty completions degrade to generic
// encouragement so the caller can always display and speak something.
func (g *Generator) Feedback(ctx context.Context, questionText, answer string, level question.Level) string {
	system := fmt.Sprintf(tutorPrompt, questionText, answer, level)

	text, err := g.chat(ctx, []inference.Message{
		inference.NewSystemMessage(system),
		inference.NewUserMessage(fmt.Sprintf("My response was: '%s'", answer)),
	})
	if err != nil {
		g.logger.Warn("feedback generation failed", "error", err)
		return fmt.Sprintf(errorFallback, err)
	}
	if text == "" {
		g.logger.Debug("model returned empty feedback")
		return emptyFallback
	}
	return text
}

// chat performs one exchange and trims the completion.
func (g *Generator) chat(ctx context.Context, msgs []inference.Message) (string, error) {
	resp, err := g.provider.Chat(ctx, &inference.ChatRequest{
		Messages:  msgs,
		MaxTokens: g.maxTokens,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Message.Content), nil
}
