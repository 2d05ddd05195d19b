package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/talkware/go-parley/pkg/stt"
)

// Reply is one captured answer, whatever path produced it.
type Reply struct {
	// Text is the answer text, possibly empty.
	Text string

	// Duration is the measured speaking time. Zero for typed replies.
	Duration time.Duration

	// Retries is how many recognition attempts failed first.
	Retries int

	// Typed reports the reply came from the typed fallback.
	Typed bool
}

// Listener captures one answer or command at a time. Spoken input is
// preferred; recognition failures degrade to typed input under the retry
// policy, so a capture never fails for speech reasons. With no recognizer
// configured every capture reads typed input directly.
type Listener struct {
	rec    stt.Recognizer
	input  TextInput
	out    io.Writer
	logger *slog.Logger

	answerWindow  stt.ListenOptions
	commandWindow stt.ListenOptions
	retryBudget   int
	shortWords    int
}

// NewListener builds a Listener from controller options. Options that do
// not concern listening are ignored.
func NewListener(opts ...Option) *Listener {
	cfg := DefaultConfig()
	cfg.Apply(opts...)
	return newListener(cfg)
}

func newListener(cfg Config) *Listener {
	return &Listener{
		rec:           cfg.Recognizer,
		input:         cfg.Input,
		out:           cfg.Out,
		logger:        cfg.Logger.With("component", "session.listener"),
		answerWindow:  cfg.AnswerWindow,
		commandWindow: cfg.CommandWindow,
		retryBudget:   cfg.RetryBudget,
		shortWords:    cfg.ShortAnswerWords,
	}
}

// Voice reports whether spoken input is available.
func (l *Listener) Voice() bool {
	return l.rec != nil
}

// Answer captures one answer using the configured answer window. Very short
// transcripts get a single optional extension capture appended to the same
// reply.
func (l *Listener) Answer(ctx context.Context) (Reply, error) {
	return l.listen(ctx, l.answerWindow, true)
}

// Capture captures one utterance in the given window without the
// short-answer extension. Used where one-word replies are expected, such as
// pronunciation drills.
func (l *Listener) Capture(ctx context.Context, window stt.ListenOptions) (Reply, error) {
	return l.listen(ctx, window, false)
}

func (l *Listener) listen(ctx context.Context, window stt.ListenOptions, extend bool) (Reply, error) {
	if l.rec == nil {
		return l.typed("👤 Your response: ", 0)
	}

	retries := 0
	for {
		if err := ctx.Err(); err != nil {
			return Reply{}, err
		}

		fmt.Fprintln(l.out, "🎤 Listening... (speak clearly and take your time)")
		res, err := l.rec.Listen(ctx, window)
		if err == nil {
			reply := Reply{Text: strings.TrimSpace(res.Text), Duration: res.Duration, Retries: retries}
			if extend && reply.Text != "" && countWords(reply.Text) < l.shortWords {
				l.extendShort(ctx, window, &reply)
			}
			return reply, nil
		}

		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return Reply{}, err

		case errors.Is(err, stt.ErrNoSpeech):
			retries++
			if retries <= l.retryBudget {
				fmt.Fprintf(l.out, "❌ Sorry, I couldn't understand that clearly. Let's try again (%d/%d)\n", retries, l.retryBudget)
				fmt.Fprintln(l.out, "💡 Tip: Speak clearly and make sure you're in a quiet environment")
				continue
			}
			fmt.Fprintln(l.out, "❌ Having trouble with speech recognition. Let's try typing instead.")
			return l.typed("👤 Please type your response: ", retries)

		case errors.Is(err, stt.ErrTimeout):
			retries++
			if retries <= l.retryBudget {
				fmt.Fprintf(l.out, "⏰ No speech detected. Let's try again (%d/%d)\n", retries, l.retryBudget)
				fmt.Fprintln(l.out, "💡 Tip: Make sure to speak after you see 'Listening...'")
				continue
			}
			fmt.Fprintln(l.out, "⏰ Let's try typing instead.")
			return l.typed("👤 Please type your response: ", retries)

		default:
			// Service errors are not transient; go straight to typing.
			l.logger.Warn("speech service error", "error", err)
			fmt.Fprintf(l.out, "❌ Speech service error: %v\n", err)
			return l.typed("👤 Please type your response: ", retries+1)
		}
	}
}

// extendShort offers exactly one follow-up capture for a very short
// transcript. The follow-up is appended to the reply; a declined offer or a
// failed follow-up keeps the original text.
func (l *Listener) extendShort(ctx context.Context, window stt.ListenOptions, reply *Reply) {
	fmt.Fprintf(l.out, "👤 I heard: '%s' - but that seems quite short.\n", reply.Text)
	choice, err := l.input("Would you like to say more or continue? [say more/continue]: ")
	if err != nil || !strings.HasPrefix(strings.ToLower(strings.TrimSpace(choice)), "s") {
		return
	}

	fmt.Fprintln(l.out, "🎤 Please continue speaking...")
	more, err := l.rec.Listen(ctx, window)
	if err != nil || more.Text == "" {
		l.logger.Debug("extension capture failed", "error", err)
		return
	}

	reply.Text = reply.Text + " " + strings.TrimSpace(more.Text)
	reply.Duration += more.Duration
}

// Command solicits one control command. With voice, unclear or absent audio
// classifies as enter so the session never stalls on a command. With typed
// input the line may fail to classify; ok=false lets the caller re-prompt.
func (l *Listener) Command(ctx context.Context, prompt string) (Command, bool, error) {
	if l.rec == nil {
		line, err := l.input(prompt)
		if err != nil {
			return CommandEnter, false, fmt.Errorf("read command: %w", err)
		}
		cmd, ok := ClassifyTyped(line)
		return cmd, ok, nil
	}

	fmt.Fprintf(l.out, "🎤 %s\n", prompt)
	fmt.Fprintln(l.out, "💬 Say: 'next', 'repeat', or 'enter'")

	res, err := l.rec.Listen(ctx, l.commandWindow)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return CommandEnter, false, err
		}
		fmt.Fprintln(l.out, "❌ Didn't catch that. Using 'enter' as default.")
		return CommandEnter, true, nil
	}

	heard := strings.ToLower(strings.TrimSpace(res.Text))
	fmt.Fprintf(l.out, "👤 Command: '%s'\n", heard)

	c := Classify(heard)
	if c == CommandEnter && !containsAny(heard, enterWords) {
		fmt.Fprintf(l.out, "💡 I heard '%s' - treating as 'enter'\n", heard)
	}
	return c, true, nil
}

// typed reads one line as the reply. It only fails when the input source
// itself fails, which ends the session.
func (l *Listener) typed(prompt string, retries int) (Reply, error) {
	line, err := l.input(prompt)
	if err != nil {
		return Reply{}, fmt.Errorf("read input: %w", err)
	}
	return Reply{Text: strings.TrimSpace(line), Retries: retries, Typed: true}, nil
}
