package feedback

import (
	"context"
	"fmt"

	"github.com/talkware/go-parley/pkg/inference"
)

// Free-talk exchanges carry recent history so the tutor can refer back to
// earlier turns. Bounded to keep local-model prompts small.
const maxHistoryMessages = 20

// Conversation is a free-talk exchange with the tutor persona. Unlike
// single-question feedback it retains a bounded history across turns.
type Conversation struct {
	gen     *Generator
	history []inference.Message
}

// NewConversation starts a free-talk exchange backed by the generator.
func NewConversation(gen *Generator) *Conversation {
	return &Conversation{gen: gen}
}

// Reply sends the student's utterance and returns the tutor's response.
// Like Feedback it never fails; transport errors degrade to encouragement
// and are kept out of the history.
func (c *Conversation) Reply(ctx context.Context, text string) string {
	system := fmt.Sprintf(tutorPrompt, "free conversation", text, "conversational")

	msgs := make([]inference.Message, 0, len(c.history)+2)
	msgs = append(msgs, inference.NewSystemMessage(system))
	msgs = append(msgs, c.history...)
	msgs = append(msgs, inference.NewUserMessage(fmt.Sprintf("My response was: '%s'", text)))

	reply, err := c.gen.chat(ctx, msgs)
	if err != nil {
		c.gen.logger.Warn("conversation reply failed", "error", err)
		return fmt.Sprintf(errorFallback, err)
	}
	if reply == "" {
		reply = emptyFallback
	}

	c.history = append(c.history,
		inference.NewUserMessage(text),
		inference.NewAssistantMessage(reply),
	)
	if len(c.history) > maxHistoryMessages {
		c.history = c.history[len(c.history)-maxHistoryMessages:]
	}

	return reply
}

// Turns returns the number of completed exchanges.
func (c *Conversation) Turns() int {
	return len(c.history) / 2
}
