package coach

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/talkware/go-parley/pkg/drill"
	"github.com/talkware/go-parley/pkg/feedback"
	"github.com/talkware/go-parley/pkg/question"
	"github.com/talkware/go-parley/pkg/session"
	"github.com/talkware/go-parley/pkg/stt"
)

// drillWindow bounds one repeat-after-me capture. Single words come fast,
// so the generous answer windows would only drag the drill out.
var drillWindow = stt.ListenOptions{
	MaxWait:      10 * time.Second,
	MaxUtterance: 10 * time.Second,
}

// practice runs one guided question session at the given level, wired to
// the app's collaborators and current settings.
func (a *App) practice(ctx context.Context, level question.Level, category question.Category) error {
	ctrl, err := session.NewController(
		session.WithRecognizer(a.rec),
		session.WithSynthesizer(a.synth),
		session.WithTutor(a.tutor),
		session.WithTextInput(a.input),
		session.WithOutput(a.out),
		session.WithAutoSpeak(a.settings.AutoSpeak),
		session.WithMode(a.settings.Synthesis),
		session.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	_, err = ctrl.Run(ctx, level, category)
	return err
}

// freeConversation runs the open-ended chat mode: no question bank, the
// learner leads, and the tutor carries the conversation history forward.
func (a *App) freeConversation(ctx context.Context) error {
	fmt.Fprintln(a.out, "\n💬 Free Conversation Mode")
	fmt.Fprintln(a.out, strings.Repeat("=", menuDivider))

	greeting := "Let's have a free conversation! Talk about anything you want - your day, your thoughts, your dreams. " +
		"I'm here to listen and help you practice English naturally."
	fmt.Fprintf(a.out, "🤖 Tutor: %s\n", greeting)
	a.say(ctx, greeting)

	conv := feedback.NewConversation(a.tutor)
	listener := a.newListener()

	for turn := 1; ; turn++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(a.out, "\n🎤 Conversation turn %d\n", turn)
		fmt.Fprintln(a.out, "🗣️ Say whatever comes to mind...")

		reply, err := listener.Answer(ctx)
		if err != nil {
			return err
		}
		if reply.Text == "" || session.IsFarewell(reply.Text) {
			fmt.Fprintln(a.out, "👋 Thanks for the great conversation!")
			return nil
		}

		fmt.Fprintf(a.out, "\n👤 You said: %q\n", reply.Text)

		response := conv.Reply(ctx, reply.Text)
		fmt.Fprintf(a.out, "\n🤖 Tutor: %s\n", response)
		a.say(ctx, response)
	}
}

// pronunciationDrills walks the built-in sound sets: speak the model word,
// capture the learner's repeat, judge it. Silence skips to the next word.
func (a *App) pronunciationDrills(ctx context.Context) error {
	fmt.Fprintln(a.out, "\n🎯 Pronunciation Practice")
	fmt.Fprintln(a.out, strings.Repeat("=", menuDivider))

	intro := "Let's practice some challenging English sounds. I'll say a word, then you repeat it. Ready?"
	fmt.Fprintf(a.out, "🤖 Tutor: %s\n", intro)
	a.say(ctx, intro)

	listener := a.newListener()

	for _, set := range drill.BuiltIn() {
		fmt.Fprintf(a.out, "\n🎯 Practicing: %s\n", set.Sound)
		soundIntro := fmt.Sprintf("Now let's practice %s. Listen and repeat each word.", set.Sound)
		fmt.Fprintf(a.out, "🤖 Tutor: %s\n", soundIntro)
		a.say(ctx, soundIntro)

		for _, word := range set.Words {
			if err := ctx.Err(); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "\n🔊 Model word: %s\n", word)
			a.say(ctx, word)

			fmt.Fprintf(a.out, "🎤 Now you say: %s\n", word)
			reply, err := listener.Capture(ctx, drillWindow)
			if err != nil {
				return err
			}
			if reply.Text == "" {
				continue
			}

			fmt.Fprintf(a.out, "👤 You said: %q\n", reply.Text)
			verdict := drill.Judge(word, reply.Text)
			fmt.Fprintf(a.out, "💬 %s\n", verdict)
			a.say(ctx, verdict)
		}
	}
	return nil
}

// settingsMenu shows the current preferences and edits them in place.
// Changes persist immediately; the synthesis chain is rebuilt when a
// synthesis setting changed.
func (a *App) settingsMenu(ctx context.Context) error {
	fmt.Fprintln(a.out, "\n⚙️ Settings")
	fmt.Fprintln(a.out, strings.Repeat("=", 20))
	fmt.Fprintf(a.out, "🔊 Auto-speak: %s\n", onOff(a.settings.AutoSpeak))
	fmt.Fprintf(a.out, "🎙️ Synthesis: %s\n", a.settings.Synthesis)
	fmt.Fprintf(a.out, "🗣️ Voice: %s\n", a.settings.Voice)
	fmt.Fprintf(a.out, "⏩ Speaking rate: %.1fx\n", a.settings.SpeakingRate)

	changed := false
	rebuild := false

	line, err := a.input("Toggle auto-speak? [y/N]: ")
	if err != nil {
		return fmt.Errorf("read settings input: %w", err)
	}
	if isYes(line) {
		a.settings.AutoSpeak = !a.settings.AutoSpeak
		changed = true
		fmt.Fprintf(a.out, "🔊 Auto-speak is now %s\n", onOff(a.settings.AutoSpeak))
	}

	other := session.ModeOffline
	if a.settings.Synthesis == session.ModeOffline {
		other = session.ModeNetwork
	}
	line, err = a.input(fmt.Sprintf("Switch synthesis to %s? [y/N]: ", other))
	if err != nil {
		return fmt.Errorf("read settings input: %w", err)
	}
	if isYes(line) {
		a.settings.Synthesis = other
		changed, rebuild = true, true
		fmt.Fprintf(a.out, "🎙️ Synthesis is now %s\n", a.settings.Synthesis)
	}

	if a.settings.Synthesis == session.ModeNetwork {
		fmt.Fprintln(a.out, "\n🗣️ Network voices:")
		for i, v := range NetworkVoices {
			marker := "  "
			if v == a.settings.Voice {
				marker = "▶ "
			}
			fmt.Fprintf(a.out, "%s%d. %s\n", marker, i+1, v)
		}
		line, err = a.input(fmt.Sprintf("Choose a voice (1-%d) or Enter to keep: ", len(NetworkVoices)))
		if err != nil {
			return fmt.Errorf("read settings input: %w", err)
		}
		if n, convErr := strconv.Atoi(strings.TrimSpace(line)); convErr == nil && n >= 1 && n <= len(NetworkVoices) {
			if v := NetworkVoices[n-1]; v != a.settings.Voice {
				a.settings.Voice = v
				changed, rebuild = true, true
				fmt.Fprintf(a.out, "🗣️ Voice is now %s\n", v)
			}
		}
	}

	line, err = a.input(fmt.Sprintf("Speaking rate %.1f-%.1f or Enter to keep: ", MinSpeakingRate, MaxSpeakingRate))
	if err != nil {
		return fmt.Errorf("read settings input: %w", err)
	}
	if rate, convErr := strconv.ParseFloat(strings.TrimSpace(line), 64); convErr == nil {
		if rate < MinSpeakingRate {
			rate = MinSpeakingRate
		}
		if rate > MaxSpeakingRate {
			rate = MaxSpeakingRate
		}
		if rate != a.settings.SpeakingRate {
			a.settings.SpeakingRate = rate
			changed, rebuild = true, true
			fmt.Fprintf(a.out, "⏩ Speaking rate is now %.1fx\n", rate)
		}
	}

	if rebuild {
		a.rebuildSynthesis(ctx)
	}
	if changed {
		if err := SaveSettings(a.store, a.settings); err != nil {
			a.logger.Warn("saving settings", "error", err)
			fmt.Fprintf(a.out, "⚠️  Could not save settings: %v\n", err)
		} else {
			fmt.Fprintln(a.out, "💾 Settings saved")
		}
	}
	return nil
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

func isYes(line string) bool {
	return strings.ToLower(strings.TrimSpace(line)) == "y"
}
