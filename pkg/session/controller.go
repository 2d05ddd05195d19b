package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/talkware/go-parley/pkg/question"
)

// Speaker renders text as audible speech. Satisfied by tts.Synthesizer and
// synthesizer chains.
type Speaker interface {
	// Speak blocks until playback of text completes.
	Speak(ctx context.Context, text string) error

	// Stop interrupts any playback in progress.
	Stop()
}

// Tutor produces feedback on a learner's answer. Implementations never
// fail: degraded output is still usable feedback text.
type Tutor interface {
	Feedback(ctx context.Context, questionText, answer string, level question.Level) string
}

const divider = 50

// Controller runs practice sessions: it presents questions in source order,
// captures answers through a Listener, requests tutor feedback, and drives
// the post-feedback command menu. All session state is owned here; the
// collaborators are stateless from the controller's point of view.
type Controller struct {
	cfg      Config
	listener *Listener
	synth    Speaker
	tutor    Tutor
	out      io.Writer
	logger   *slog.Logger
}

// NewController builds a Controller. A Tutor is required; a nil Recognizer
// selects text-only mode and a nil Speaker disables playback.
func NewController(opts ...Option) (*Controller, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Controller{
		cfg:      cfg,
		listener: newListener(cfg),
		synth:    cfg.Synth,
		tutor:    cfg.Tutor,
		out:      cfg.Out,
		logger:   cfg.Logger.With("component", "session"),
	}, nil
}

// Listener returns the controller's listener so other interaction modes can
// share the same capture policy.
func (c *Controller) Listener() *Listener {
	return c.listener
}

// Run executes one practice session over the question bank for level and
// category. It returns the completed session; the returned error is non-nil
// only for context cancellation or input loss, never for speech or feedback
// trouble. Question order is exactly bank order and nothing is skipped
// implicitly.
func (c *Controller) Run(ctx context.Context, level question.Level, category question.Category) (*Session, error) {
	questions, err := question.ForLevel(level, category)
	if err != nil {
		return nil, err
	}

	sess := NewSession(level, category)
	sess.AutoSpeak = c.cfg.AutoSpeak
	sess.Mode = c.cfg.Mode

	c.logger.Info("practice session started",
		"session_id", sess.ID,
		"level", level,
		"category", category,
		"questions", len(questions))

	c.announce(ctx, level, category, len(questions))

	if _, _, err := c.command(ctx, "Press Enter when you're ready to start the first question..."); err != nil {
		return sess, err
	}

	total := len(questions)
	for i, q := range questions {
	present:
		for {
			c.present(ctx, q, i+1, total)

			reply, err := c.listener.Answer(ctx)
			if err != nil {
				return sess, err
			}
			if reply.Text == "" {
				break present
			}

			if cmd, control := DetectControl(reply.Text); control {
				switch cmd {
				case CommandNext:
					fmt.Fprintln(c.out, "⏭️ Moving to next question...")
					break present
				case CommandFinish:
					fmt.Fprintln(c.out, "🏁 Finishing practice session...")
					c.printStats(sess)
					return sess, nil
				case CommandRepeat:
					fmt.Fprintf(c.out, "🔄 Repeating: %s\n", q.Text)
					continue present
				}
			}

			c.printAnswer("YOU SAID", reply)

			fmt.Fprintln(c.out, "\n🤖 Getting personalized feedback...")
			fb := c.tutor.Feedback(ctx, q.Text, reply.Text, level)
			sess.AddTurn(Turn{
				Question: q,
				Answer:   reply.Text,
				Speaking: reply.Duration,
				Feedback: fb,
				Retries:  reply.Retries,
				Typed:    reply.Typed,
			})

			fmt.Fprintln(c.out, "\n💬 TUTOR FEEDBACK:")
			fmt.Fprintln(c.out, fb)
			fmt.Fprintln(c.out, "\n🔊 Reading feedback aloud...")
			c.say(ctx, fb)

			if i < total-1 {
				finish, err := c.menu(ctx, sess, q, level)
				if err != nil {
					return sess, err
				}
				if finish {
					c.printStats(sess)
					return sess, nil
				}
			}
			break present
		}
	}

	c.printStats(sess)
	return sess, nil
}

// announce prints and speaks the session opening: banner, greeting, and the
// question count setup line.
func (c *Controller) announce(ctx context.Context, level question.Level, category question.Category, count int) {
	if category != question.CategoryNone {
		fmt.Fprintf(c.out, "\n🗣️ Speaking Practice - %s %s\n", title(string(level)), title(string(category)))
	} else {
		fmt.Fprintf(c.out, "\n🗣️ Speaking Practice - %s Level\n", title(string(level)))
	}
	fmt.Fprintln(c.out, strings.Repeat("=", divider))
	fmt.Fprintln(c.out, "🎤 Ready for natural conversation practice!")
	fmt.Fprintln(c.out, "⏰ Speak naturally - I'll listen and give you feedback")
	fmt.Fprintln(c.out, "💡 Say 'next question' or 'finish' to control the session")
	fmt.Fprintln(c.out)

	greeting := "Hi! I'm your English conversation partner. Let's practice speaking naturally. " +
		"I'll ask you questions one by one, listen carefully to your answers, and give you helpful feedback."
	fmt.Fprintf(c.out, "🤖 Tutor: %s\n", greeting)
	c.say(ctx, greeting)

	fmt.Fprintf(c.out, "\n📋 Today we'll practice %d questions about %s level topics.\n", count, level)
	setup := fmt.Sprintf("I'll ask you %d questions. Take your time with each answer - there's no rush!", count)
	fmt.Fprintf(c.out, "🤖 Tutor: %s\n", setup)
	c.say(ctx, setup)
}

// present shows and speaks one question along with the thinking-time hints.
func (c *Controller) present(ctx context.Context, q question.Question, num, total int) {
	fmt.Fprintf(c.out, "\n%s\n", strings.Repeat("=", divider))
	fmt.Fprintf(c.out, "🎯 Question %d/%d\n", num, total)
	fmt.Fprintf(c.out, "🤖 Tutor: %s\n", q.Text)
	fmt.Fprintln(c.out, "🔊 Reading question aloud...")
	c.say(ctx, q.Text)

	fmt.Fprintln(c.out, "\n💭 Take your time to think about your answer...")
	fmt.Fprintln(c.out, "🎤 When you're ready, start speaking. I'll listen for up to 2 minutes.")
	fmt.Fprintln(c.out, "💡 Try to speak for at least 30 seconds to practice fluency")
}

// menu runs the post-feedback command loop for q. Repeat re-presents the
// question and appends the new attempt as its own turn, then the menu is
// offered again. Input that cannot be classified re-prompts up to the
// configured cap and then advances. The returned bool reports that the
// learner finished the session from the menu.
func (c *Controller) menu(ctx context.Context, sess *Session, q question.Question, level question.Level) (bool, error) {
	fmt.Fprintf(c.out, "\n%s\n", strings.Repeat("=", divider))
	fmt.Fprintln(c.out, "✅ Feedback complete!")

	reprompts := 0
	for {
		cmd, ok, err := c.command(ctx, "What would you like to do?")
		if err != nil {
			return false, err
		}
		if !ok {
			reprompts++
			if reprompts > c.cfg.MenuRetryCap {
				fmt.Fprintln(c.out, "➡️ Moving to next question...")
				return false, nil
			}
			fmt.Fprintln(c.out, "💡 Say 'next' to continue or 'repeat' to try the question again")
			continue
		}

		switch cmd {
		case CommandRepeat:
			if err := c.repeatQuestion(ctx, sess, q, level); err != nil {
				return false, err
			}
			reprompts = 0
		case CommandFinish:
			fmt.Fprintln(c.out, "🏁 Finishing practice session...")
			return true, nil
		default:
			fmt.Fprintln(c.out, "➡️ Moving to next question...")
			return false, nil
		}
	}
}

// repeatQuestion re-presents q after feedback, captures a brand-new answer,
// and appends it with fresh feedback as a new turn. Control phrases and
// empty captures leave the history untouched.
func (c *Controller) repeatQuestion(ctx context.Context, sess *Session, q question.Question, level question.Level) error {
	fmt.Fprintln(c.out, "🔄 Let's try this question again!")
	fmt.Fprintf(c.out, "🤖 Tutor: %s\n", q.Text)
	fmt.Fprintln(c.out, "🔊 Reading question again...")
	c.say(ctx, q.Text)

	fmt.Fprintln(c.out, "\n💭 Take your time to think about your answer...")
	fmt.Fprintln(c.out, "🎤 When ready, give it another try!")

	reply, err := c.listener.Answer(ctx)
	if err != nil {
		return err
	}

	if reply.Text != "" {
		if _, control := DetectControl(reply.Text); !control {
			c.printAnswer("YOUR NEW ANSWER", reply)

			fmt.Fprintln(c.out, "\n🤖 Getting feedback on your new answer...")
			fb := c.tutor.Feedback(ctx, q.Text, reply.Text, level)
			sess.AddTurn(Turn{
				Question: q,
				Answer:   reply.Text,
				Speaking: reply.Duration,
				Feedback: fb,
				Retries:  reply.Retries,
				Typed:    reply.Typed,
			})

			fmt.Fprintln(c.out, "\n💬 NEW FEEDBACK:")
			fmt.Fprintln(c.out, fb)
			fmt.Fprintln(c.out, "\n🔊 Reading new feedback...")
			c.say(ctx, fb)
		}
	}

	fmt.Fprintln(c.out, "\n✅ Ready for next question!")
	return nil
}

// command stops any playback in progress and solicits one command
// (stop-then-listen).
func (c *Controller) command(ctx context.Context, prompt string) (Command, bool, error) {
	if c.synth != nil {
		c.synth.Stop()
	}
	return c.listener.Command(ctx, prompt)
}

// say speaks text when auto-speak is enabled. Synthesis trouble is logged
// and playback skipped; the session always continues.
func (c *Controller) say(ctx context.Context, text string) {
	if !c.cfg.AutoSpeak || c.synth == nil {
		return
	}
	if err := c.synth.Speak(ctx, text); err != nil {
		c.logger.Warn("speech synthesis failed", "error", err)
	}
}

func (c *Controller) printAnswer(label string, reply Reply) {
	fmt.Fprintf(c.out, "\n%s\n", strings.Repeat("=", divider))
	fmt.Fprintf(c.out, "👤 %s:\n", label)
	fmt.Fprintf(c.out, "   %q\n", reply.Text)
	fmt.Fprintf(c.out, "⏱️ Speaking time: %.1f seconds\n", reply.Duration.Seconds())
	fmt.Fprintf(c.out, "📝 Word count: %d words\n", countWords(reply.Text))
	fmt.Fprintln(c.out, strings.Repeat("=", divider))
}

func (c *Controller) printStats(sess *Session) {
	st := sess.Stats()

	fmt.Fprintf(c.out, "\n%s\n", strings.Repeat("=", divider))
	fmt.Fprintln(c.out, "📊 Practice Session Complete!")
	fmt.Fprintf(c.out, "⏱️ Total session time: %s\n", formatClock(st.Wall))
	if st.Speaking > 0 {
		fmt.Fprintf(c.out, "🗣️ Your speaking time: %.1f seconds\n", st.Speaking.Seconds())
		fmt.Fprintf(c.out, "📈 Speaking percentage: %.1f%%\n", st.SpeakingPercent)
	}
	fmt.Fprintln(c.out, "💪 Excellent work practicing your English speaking!")
	fmt.Fprintln(c.out, strings.Repeat("=", divider))

	c.logger.Info("practice session complete",
		"session_id", sess.ID,
		"turns", st.Turns,
		"wall", st.Wall,
		"speaking", st.Speaking)
}

// formatClock renders a duration as H:MM:SS.
func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// title uppercases the first letter of an ASCII word.
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
