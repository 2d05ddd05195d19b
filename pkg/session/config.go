package session

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/talkware/go-parley/pkg/stt"
)

// Defaults for the interaction policy.
const (
	// DefaultRetryBudget is how many times a failed recognition attempt is
	// retried before falling back to typed input.
	DefaultRetryBudget = 2

	// DefaultShortAnswerWords is the word count below which an answer is
	// considered short enough to offer the one-shot extension capture.
	DefaultShortAnswerWords = 2

	// DefaultMenuRetryCap bounds post-feedback menu re-prompts on input
	// that cannot be classified; past the cap the menu advances.
	DefaultMenuRetryCap = 5
)

// Default listening windows. Answers get generous thinking and speaking
// time; commands are expected promptly and kept short.
var (
	DefaultAnswerWindow = stt.ListenOptions{
		MaxWait:      60 * time.Second,
		MaxUtterance: 120 * time.Second,
	}

	DefaultCommandWindow = stt.ListenOptions{
		MaxWait:      20 * time.Second,
		MaxUtterance: 5 * time.Second,
	}
)

// TextInput reads one line of typed input after presenting prompt.
// It is the fallback when speech recognition is unavailable or gives up.
type TextInput func(prompt string) (string, error)

// Config holds session controller settings.
type Config struct {
	// Recognizer captures spoken input. Nil runs the session in text-only
	// mode where every prompt reads typed input.
	Recognizer stt.Recognizer

	// Synth renders prompts and feedback as speech. Nil disables playback.
	Synth Speaker

	// Tutor generates feedback on answers. Required for practice sessions.
	Tutor Tutor

	// Input reads typed fallback lines. Defaults to standard input.
	Input TextInput

	// Out receives console output. Defaults to os.Stdout.
	Out io.Writer

	// AnswerWindow bounds answer captures, CommandWindow command captures.
	AnswerWindow  stt.ListenOptions
	CommandWindow stt.ListenOptions

	// RetryBudget, ShortAnswerWords, MenuRetryCap tune the interaction
	// policy; see the package defaults.
	RetryBudget      int
	ShortAnswerWords int
	MenuRetryCap     int

	// AutoSpeak controls whether text is also spoken aloud.
	AutoSpeak bool

	// Mode records which synthesis engine the session runs with.
	Mode Mode

	// Logger for diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with the standard interaction policy.
func DefaultConfig() Config {
	return Config{
		Input:            StdinInput(),
		Out:              os.Stdout,
		AnswerWindow:     DefaultAnswerWindow,
		CommandWindow:    DefaultCommandWindow,
		RetryBudget:      DefaultRetryBudget,
		ShortAnswerWords: DefaultShortAnswerWords,
		MenuRetryCap:     DefaultMenuRetryCap,
		AutoSpeak:        true,
		Mode:             ModeOffline,
		Logger:           slog.Default(),
	}
}

// Option adjusts a Config.
type Option func(*Config)

// Apply applies options in order.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Validate checks that the configuration can run a session.
func (c *Config) Validate() error {
	if c.Tutor == nil {
		return fmt.Errorf("session: tutor is required")
	}
	if c.Input == nil {
		return fmt.Errorf("session: text input is required")
	}
	if c.RetryBudget < 0 {
		return fmt.Errorf("session: retry budget must be >= 0, got %d", c.RetryBudget)
	}
	if c.MenuRetryCap < 0 {
		return fmt.Errorf("session: menu retry cap must be >= 0, got %d", c.MenuRetryCap)
	}
	return nil
}

// WithRecognizer sets the speech recognizer. Pass nil for text-only mode.
func WithRecognizer(rec stt.Recognizer) Option {
	return func(c *Config) { c.Recognizer = rec }
}

// WithSynthesizer sets the speech synthesizer.
func WithSynthesizer(s Speaker) Option {
	return func(c *Config) { c.Synth = s }
}

// WithTutor sets the feedback generator.
func WithTutor(t Tutor) Option {
	return func(c *Config) { c.Tutor = t }
}

// WithTextInput sets the typed input reader.
func WithTextInput(in TextInput) Option {
	return func(c *Config) { c.Input = in }
}

// WithOutput sets the console output writer.
func WithOutput(w io.Writer) Option {
	return func(c *Config) { c.Out = w }
}

// WithAnswerWindow sets the listening window for answers.
func WithAnswerWindow(opts stt.ListenOptions) Option {
	return func(c *Config) { c.AnswerWindow = opts }
}

// WithCommandWindow sets the listening window for commands.
func WithCommandWindow(opts stt.ListenOptions) Option {
	return func(c *Config) { c.CommandWindow = opts }
}

// WithRetryBudget sets how many recognition retries precede typed fallback.
func WithRetryBudget(n int) Option {
	return func(c *Config) { c.RetryBudget = n }
}

// WithMenuRetryCap sets the post-feedback menu re-prompt bound.
func WithMenuRetryCap(n int) Option {
	return func(c *Config) { c.MenuRetryCap = n }
}

// WithAutoSpeak enables or disables spoken playback of prompts and feedback.
func WithAutoSpeak(on bool) Option {
	return func(c *Config) { c.AutoSpeak = on }
}

// WithMode records the synthesis mode for the session.
func WithMode(m Mode) Option {
	return func(c *Config) { c.Mode = m }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// StdinInput returns a TextInput reading lines from standard input.
// The prompt is printed without a trailing newline, matching an inline
// console prompt.
func StdinInput() TextInput {
	reader := bufio.NewReader(os.Stdin)
	return func(prompt string) (string, error) {
		fmt.Print(prompt)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
}
