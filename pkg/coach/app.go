package coach

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/talkware/go-parley/pkg/audio"
	"github.com/talkware/go-parley/pkg/audioio"
	"github.com/talkware/go-parley/pkg/debug"
	"github.com/talkware/go-parley/pkg/feedback"
	"github.com/talkware/go-parley/pkg/inference"
	"github.com/talkware/go-parley/pkg/question"
	"github.com/talkware/go-parley/pkg/session"
	"github.com/talkware/go-parley/pkg/stt"
	"github.com/talkware/go-parley/pkg/tts"
)

// baseWordsPerMin is the offline engine's natural speed; the speaking rate
// setting scales it.
const baseWordsPerMin = 175

const menuDivider = 40

// App is the application orchestrator. It owns the collaborators behind the
// practice menu and their lifecycle.
type App struct {
	config   Config
	settings Settings
	store    Store

	provider inference.Provider
	tutor    *feedback.Generator
	rec      stt.Recognizer  // nil in text-only mode
	synth    tts.Synthesizer // nil when no engine is available
	source   audioio.Source
	player   *audio.Player

	keys   keySource
	input  session.TextInput
	out    io.Writer
	logger *slog.Logger
}

// New creates the application with the given configuration.
func New(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	debug.Audio = cfg.DebugAudio

	path := cfg.SettingsPath
	if path == "" {
		path = SettingsPath()
	}

	return &App{
		config: cfg,
		store:  NewJSONStore(path),
		keys:   termKeys{},
		input:  session.StdinInput(),
		out:    os.Stdout,
		logger: slog.Default().With("component", "coach"),
	}, nil
}

// Init connects the collaborators: settings, the Ollama model, the
// microphone, and speech synthesis. Speech trouble degrades to typed, silent
// practice; only an unreachable model is fatal.
func (a *App) Init(ctx context.Context) error {
	a.settings = LoadSettings(a.store)
	a.logger.Debug("settings loaded",
		"auto_speak", a.settings.AutoSpeak,
		"synthesis", a.settings.Synthesis,
		"voice", a.settings.Voice,
		"speaking_rate", a.settings.SpeakingRate)

	fmt.Fprintln(a.out, "🔍 Checking Ollama connection...")
	if err := a.initModel(ctx); err != nil {
		fmt.Fprintln(a.out, "❌ Cannot connect to Ollama. Please start it with: ollama serve")
		return err
	}
	fmt.Fprintln(a.out, "✅ Ready for seamless speaking practice!")

	if a.config.Recognizer == RecognizerText {
		fmt.Fprintln(a.out, "📝 Text mode: type your answers instead of speaking")
	} else {
		fmt.Fprint(a.out, "🎤 Initializing microphone... ")
		if err := a.initRecognizer(ctx); err != nil {
			fmt.Fprintf(a.out, "⚠️  %v\n", err)
			fmt.Fprintln(a.out, "📝 Falling back to typed answers")
		} else {
			fmt.Fprintln(a.out, "✅")
		}
	}

	fmt.Fprint(a.out, "🔊 Initializing speech synthesis... ")
	if err := a.initSynthesis(ctx); err != nil {
		fmt.Fprintf(a.out, "⚠️  %v\n", err)
		fmt.Fprintln(a.out, "🔇 Continuing without spoken audio")
	} else {
		fmt.Fprintln(a.out, "✅")
	}

	return nil
}

// initModel connects to Ollama and verifies the configured model is
// installed, so the tutor cannot silently run against nothing.
func (a *App) initModel(ctx context.Context) error {
	client, err := inference.NewClient(
		inference.WithBaseURL(a.config.OllamaURL),
		inference.WithModel(a.config.Model),
		inference.WithLogger(a.logger),
	)
	if err != nil {
		return fmt.Errorf("inference client: %w", err)
	}

	models, err := client.Models(ctx)
	if err != nil {
		client.Close()
		fmt.Fprintf(a.out, "❌ Ollama connection failed: %v\n", err)
		return fmt.Errorf("list models: %w", err)
	}

	installed := false
	for _, m := range models {
		if m == a.config.Model {
			installed = true
			break
		}
	}
	if !installed {
		client.Close()
		fmt.Fprintf(a.out, "❌ Model %q is not installed. Pull it with: ollama pull %s\n",
			a.config.Model, a.config.Model)
		return fmt.Errorf("model %q: %w", a.config.Model, inference.ErrModelNotFound)
	}

	a.provider = client
	a.tutor = feedback.NewGenerator(a.provider, feedback.WithLogger(a.logger))
	return nil
}

// initRecognizer opens the microphone and builds the configured recognizer.
func (a *App) initRecognizer(ctx context.Context) error {
	src, err := audioio.NewSource(audioio.DefaultConfig(), a.logger)
	if err != nil {
		return fmt.Errorf("audio source: %w", err)
	}

	var rec stt.Recognizer
	switch a.config.Recognizer {
	case RecognizerDeepgram:
		rec, err = stt.NewDeepgram(
			stt.WithSource(src),
			stt.WithAPIKey(a.config.DeepgramKey),
			stt.WithLogger(a.logger),
		)
	default:
		rec, err = stt.NewGoogle(ctx,
			stt.WithSource(src),
			stt.WithCredentialsFile(a.config.CredentialsFile),
			stt.WithCredentialsJSON([]byte(a.config.CredentialsJSON)),
			stt.WithLogger(a.logger),
		)
	}
	if err != nil {
		src.Close()
		return fmt.Errorf("%s recognizer: %w", a.config.Recognizer, err)
	}

	a.source, a.rec = src, rec
	return nil
}

// initSynthesis builds the synthesis chain for the current settings:
// network voice first when selected, the offline engine as the always-there
// fallback. It fails only when no engine at all came up.
func (a *App) initSynthesis(ctx context.Context) error {
	if a.player == nil {
		a.player = audio.NewPlayer(audio.WithLogger(a.logger))
	}

	var engines []tts.Synthesizer

	if a.settings.Synthesis == session.ModeNetwork {
		g, err := tts.NewGoogle(ctx,
			tts.WithVoice(a.settings.Voice),
			tts.WithSpeakingRate(a.settings.SpeakingRate),
			tts.WithPlayer(a.player),
			tts.WithCredentialsFile(a.config.CredentialsFile),
			tts.WithCredentialsJSON([]byte(a.config.CredentialsJSON)),
			tts.WithLogger(a.logger),
		)
		if err != nil {
			a.logger.Warn("network synthesis unavailable", "error", err)
		} else {
			engines = append(engines, g)
		}
	}

	wpm := int(baseWordsPerMin * a.settings.SpeakingRate)
	local, err := tts.NewLocal(
		tts.WithWordsPerMinute(wpm),
		tts.WithLogger(a.logger),
	)
	if err != nil {
		a.logger.Warn("offline synthesis unavailable", "error", err)
	} else {
		engines = append(engines, local)
	}

	if len(engines) == 0 {
		a.synth = nil
		return fmt.Errorf("no synthesis engine available")
	}

	chain, err := tts.NewChainWithLogger(a.logger, engines...)
	if err != nil {
		return err
	}
	a.synth = chain
	return nil
}

// rebuildSynthesis swaps the synthesis chain after a settings change.
func (a *App) rebuildSynthesis(ctx context.Context) {
	if a.synth != nil {
		a.synth.Stop()
		if err := a.synth.Close(); err != nil {
			a.logger.Warn("closing synthesis chain", "error", err)
		}
		a.synth = nil
	}
	if err := a.initSynthesis(ctx); err != nil {
		fmt.Fprintf(a.out, "⚠️  Speech synthesis unavailable: %v\n", err)
	}
}

// Run greets the learner and drives the practice menu until they exit or
// ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	welcome := "Welcome to seamless English speaking practice! " +
		"I'll automatically speak questions and feedback, and show you exactly what I heard you say. Let's start!"
	fmt.Fprintf(a.out, "\n🤖 %s\n", welcome)
	a.say(ctx, welcome)

	if err := a.keys.Open(); err != nil {
		a.logger.Debug("raw keyboard unavailable, using line input", "error", err)
		a.keys = &lineKeys{input: a.input}
	}
	defer a.keys.Close()

	fmt.Fprintln(a.out, "🗣️ English Speaking Practice")
	fmt.Fprintln(a.out, strings.Repeat("=", menuDivider))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		a.printMenu()
		choice, err := a.keys.Read()
		if err != nil {
			return fmt.Errorf("read menu choice: %w", err)
		}

		done, err := a.dispatch(ctx, choice)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (a *App) printMenu() {
	fmt.Fprintln(a.out, "\n📚 Practice Options:")
	fmt.Fprintln(a.out, "  1. Beginner - Personal Topics")
	fmt.Fprintln(a.out, "  2. Beginner - Everyday Situations")
	fmt.Fprintln(a.out, "  3. Intermediate Conversations")
	fmt.Fprintln(a.out, "  4. Advanced Discussions")
	fmt.Fprintln(a.out, "  5. Free Conversation")
	fmt.Fprintln(a.out, "  6. Pronunciation Drills")
	fmt.Fprintln(a.out, "  7. Settings")
	fmt.Fprintln(a.out, "  8. Exit")
	fmt.Fprint(a.out, "\nChoose (1-8): ")
}

// dispatch runs the chosen mode. The bool reports that the learner exited.
func (a *App) dispatch(ctx context.Context, choice rune) (bool, error) {
	switch choice {
	case '1':
		return false, a.practice(ctx, question.LevelBeginner, question.CategoryPersonal)
	case '2':
		return false, a.practice(ctx, question.LevelBeginner, question.CategorySituations)
	case '3':
		return false, a.practice(ctx, question.LevelIntermediate, question.CategoryNone)
	case '4':
		return false, a.practice(ctx, question.LevelAdvanced, question.CategoryNone)
	case '5':
		return false, a.freeConversation(ctx)
	case '6':
		return false, a.pronunciationDrills(ctx)
	case '7':
		return false, a.settingsMenu(ctx)
	case exitKey:
		a.farewell(ctx)
		return true, nil
	default:
		fmt.Fprintln(a.out, "❌ Please choose 1-8")
		return false, nil
	}
}

func (a *App) farewell(ctx context.Context) {
	farewell := "Thanks for practicing English speaking with me! Keep up the great work!"
	fmt.Fprintf(a.out, "🤖 %s\n", farewell)
	a.say(ctx, farewell)
}

// say speaks text when auto-speak is on and an engine is available.
// Synthesis trouble is logged and skipped; practice always continues.
func (a *App) say(ctx context.Context, text string) {
	if !a.settings.AutoSpeak || a.synth == nil {
		return
	}
	if err := a.synth.Speak(ctx, text); err != nil {
		a.logger.Warn("speech synthesis failed", "error", err)
	}
}

// newListener builds a capture pipeline over the app's recognizer for the
// modes that listen outside a guided session.
func (a *App) newListener() *session.Listener {
	return session.NewListener(
		session.WithRecognizer(a.rec),
		session.WithTextInput(a.input),
		session.WithOutput(a.out),
		session.WithLogger(a.logger),
	)
}

// Shutdown releases every collaborator. Safe to call after a failed Init.
func (a *App) Shutdown() {
	fmt.Fprintln(a.out, "\n👋 Goodbye!")

	if a.synth != nil {
		a.synth.Stop()
		if err := a.synth.Close(); err != nil {
			a.logger.Warn("closing synthesis", "error", err)
		}
	}
	if a.rec != nil {
		if err := a.rec.Close(); err != nil {
			a.logger.Warn("closing recognizer", "error", err)
		}
	}
	if a.source != nil {
		if sw, ok := a.source.(audioio.SourceWithStats); ok {
			st := sw.Stats()
			a.logger.Debug("capture stats",
				"chunks", st.ChunksRead,
				"samples", st.SamplesRead,
				"overruns", st.Overruns,
			)
		}
		if err := a.source.Close(); err != nil {
			a.logger.Warn("closing audio source", "error", err)
		}
	}
	if a.provider != nil {
		if err := a.provider.Close(); err != nil {
			a.logger.Warn("closing inference provider", "error", err)
		}
	}
	if a.store != nil {
		a.store.Close()
	}
}
