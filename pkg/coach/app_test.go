package coach

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/talkware/go-parley/pkg/feedback"
	"github.com/talkware/go-parley/pkg/inference"
	"github.com/talkware/go-parley/pkg/session"
	"github.com/talkware/go-parley/pkg/stt"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scriptKeys feeds a fixed sequence of menu keypresses.
type scriptKeys struct {
	keys []rune
	idx  int
}

func (s *scriptKeys) Open() error { return nil }

func (s *scriptKeys) Read() (rune, error) {
	if s.idx >= len(s.keys) {
		return 0, io.EOF
	}
	ch := s.keys[s.idx]
	s.idx++
	return ch, nil
}

func (s *scriptKeys) Close() {}

// lineInput feeds a fixed sequence of typed lines.
func lineInput(lines ...string) session.TextInput {
	i := 0
	return func(prompt string) (string, error) {
		if i >= len(lines) {
			return "", io.EOF
		}
		line := lines[i]
		i++
		return line, nil
	}
}

func testTutor(t *testing.T) *feedback.Generator {
	t.Helper()
	return feedback.NewGenerator(inference.NewMock(), feedback.WithLogger(quietLogger()))
}

func TestNewValidatesConfig(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("New with empty config should fail")
	}

	app, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if app.store == nil || app.keys == nil || app.input == nil || app.out == nil {
		t.Error("New should wire store, keys, input, and output")
	}
}

func TestNewSettingsPathOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SettingsPath = filepath.Join(t.TempDir(), "custom.json")

	app, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	js, ok := app.store.(*JSONStore)
	if !ok {
		t.Fatalf("store is %T, want *JSONStore", app.store)
	}
	if js.FilePath != cfg.SettingsPath {
		t.Errorf("store path = %q, want %q", js.FilePath, cfg.SettingsPath)
	}
}

func TestRunInvalidChoiceThenExit(t *testing.T) {
	buf := &bytes.Buffer{}
	app := &App{
		settings: DefaultSettings(),
		keys:     &scriptKeys{keys: []rune{'9', '8'}},
		input:    lineInput(),
		out:      buf,
		logger:   quietLogger(),
	}

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "🗣️ English Speaking Practice") {
		t.Error("output should contain the menu header")
	}
	if !strings.Contains(out, "❌ Please choose 1-8") {
		t.Error("invalid choice should re-prompt")
	}
	if !strings.Contains(out, "Thanks for practicing English speaking with me! Keep up the great work!") {
		t.Error("exit should print the farewell")
	}
}

func TestRunContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	app := &App{
		settings: DefaultSettings(),
		keys:     &scriptKeys{keys: []rune{'8'}},
		input:    lineInput(),
		out:      &bytes.Buffer{},
		logger:   quietLogger(),
	}

	if err := app.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

func TestRunPracticeSessionThroughMenu(t *testing.T) {
	buf := &bytes.Buffer{}
	rec := stt.NewMockWithResult("next question", 0)
	app := &App{
		settings: Settings{AutoSpeak: false, Synthesis: session.ModeOffline},
		rec:      rec,
		tutor:    testTutor(t),
		keys:     &scriptKeys{keys: []rune{'3', '8'}},
		input:    lineInput(),
		out:      buf,
		logger:   quietLogger(),
	}

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Speaking Practice - Intermediate Level") {
		t.Error("choice 3 should start an intermediate session")
	}
	if !strings.Contains(out, "📊 Practice Session Complete!") {
		t.Error("skipping every question should still finish with stats")
	}
	if !strings.Contains(out, "Thanks for practicing English speaking with me!") {
		t.Error("session end should return to the menu and exit cleanly")
	}
}

func TestFreeConversation(t *testing.T) {
	buf := &bytes.Buffer{}
	rec := stt.NewMockScript(
		stt.Hear("I had a busy day at work today", 3*time.Second),
		stt.Hear("goodbye", time.Second),
	)
	app := &App{
		settings: Settings{AutoSpeak: false},
		rec:      rec,
		tutor:    testTutor(t),
		input:    lineInput(),
		out:      buf,
		logger:   quietLogger(),
	}

	if err := app.freeConversation(context.Background()); err != nil {
		t.Fatalf("freeConversation() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "💬 Free Conversation Mode") {
		t.Error("output should contain the mode banner")
	}
	if !strings.Contains(out, "🎤 Conversation turn 1") {
		t.Error("output should number the turns")
	}
	if !strings.Contains(out, `👤 You said: "I had a busy day at work today"`) {
		t.Error("output should echo the transcript")
	}
	if !strings.Contains(out, "🤖 Tutor: Great answer! Try adding more detail next time.") {
		t.Error("output should contain the tutor reply")
	}
	if !strings.Contains(out, "👋 Thanks for the great conversation!") {
		t.Error("goodbye should end the conversation")
	}
}

func TestFreeConversationEndsOnSilence(t *testing.T) {
	buf := &bytes.Buffer{}
	app := &App{
		settings: Settings{AutoSpeak: false},
		rec:      stt.NewMockWithResult("", 0),
		tutor:    testTutor(t),
		input:    lineInput(),
		out:      buf,
		logger:   quietLogger(),
	}

	if err := app.freeConversation(context.Background()); err != nil {
		t.Fatalf("freeConversation() error: %v", err)
	}
	if !strings.Contains(buf.String(), "👋 Thanks for the great conversation!") {
		t.Error("an empty capture should end the conversation")
	}
	if strings.Contains(buf.String(), "Conversation turn 2") {
		t.Error("conversation should end on the first silent turn")
	}
}

func TestPronunciationDrills(t *testing.T) {
	buf := &bytes.Buffer{}
	rec := stt.NewMockWithResult("think", time.Second)
	app := &App{
		settings: Settings{AutoSpeak: false},
		rec:      rec,
		input:    lineInput(),
		out:      buf,
		logger:   quietLogger(),
	}

	if err := app.pronunciationDrills(context.Background()); err != nil {
		t.Fatalf("pronunciationDrills() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"🎯 Pronunciation Practice",
		"🎯 Practicing: TH sounds",
		"🎯 Practicing: R and L",
		"🎯 Practicing: V and W",
		"🔊 Model word: think",
		"🎤 Now you say: mother",
		"Perfect! Great pronunciation.",
		"Good try! Let's practice 'this' again.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// Three sets of five words, one capture each.
	if got := rec.CallCount("Listen"); got != 15 {
		t.Errorf("Listen called %d times, want 15", got)
	}
}

func TestSettingsMenuTogglePersists(t *testing.T) {
	buf := &bytes.Buffer{}
	store := NewJSONStore(filepath.Join(t.TempDir(), "settings.json"))
	app := &App{
		settings: DefaultSettings(),
		store:    store,
		// Toggle auto-speak, keep synthesis, keep voice, keep rate.
		input:  lineInput("y", "", "", ""),
		out:    buf,
		logger: quietLogger(),
	}

	if err := app.settingsMenu(context.Background()); err != nil {
		t.Fatalf("settingsMenu() error: %v", err)
	}

	if app.settings.AutoSpeak {
		t.Error("auto-speak should be toggled off")
	}
	out := buf.String()
	if !strings.Contains(out, "🔊 Auto-speak is now OFF") {
		t.Error("output should confirm the toggle")
	}
	if !strings.Contains(out, "💾 Settings saved") {
		t.Error("output should confirm persistence")
	}

	saved := LoadSettings(store)
	if saved.AutoSpeak {
		t.Error("toggled settings should persist through the store")
	}
	if saved.Synthesis != session.ModeNetwork {
		t.Errorf("unchanged synthesis = %q, want network", saved.Synthesis)
	}
}

func TestSettingsMenuNoChanges(t *testing.T) {
	buf := &bytes.Buffer{}
	store := NewJSONStore(filepath.Join(t.TempDir(), "settings.json"))
	app := &App{
		settings: DefaultSettings(),
		store:    store,
		input:    lineInput("", "", "", ""),
		out:      buf,
		logger:   quietLogger(),
	}

	if err := app.settingsMenu(context.Background()); err != nil {
		t.Fatalf("settingsMenu() error: %v", err)
	}

	if strings.Contains(buf.String(), "💾 Settings saved") {
		t.Error("nothing changed, nothing should be saved")
	}
	if data, _ := store.Load(); data != nil {
		t.Error("store should stay empty when nothing changed")
	}
}

func TestSettingsMenuShowsCurrentValues(t *testing.T) {
	buf := &bytes.Buffer{}
	app := &App{
		settings: Settings{
			AutoSpeak:    true,
			Synthesis:    session.ModeNetwork,
			Voice:        "en-US-Neural2-C",
			SpeakingRate: 1.2,
		},
		store:  NewJSONStore(""),
		input:  lineInput("", "", "", ""),
		out:    buf,
		logger: quietLogger(),
	}

	if err := app.settingsMenu(context.Background()); err != nil {
		t.Fatalf("settingsMenu() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"🔊 Auto-speak: ON",
		"🎙️ Synthesis: network",
		"🗣️ Voice: en-US-Neural2-C",
		"⏩ Speaking rate: 1.2x",
		"▶ 2. en-US-Neural2-C",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestDispatchInvalidKeys(t *testing.T) {
	buf := &bytes.Buffer{}
	app := &App{
		settings: DefaultSettings(),
		out:      buf,
		logger:   quietLogger(),
	}

	for _, ch := range []rune{'0', 'x', 0} {
		done, err := app.dispatch(context.Background(), ch)
		if err != nil || done {
			t.Errorf("dispatch(%q) = (%v, %v), want (false, nil)", ch, done, err)
		}
	}
	if got := strings.Count(buf.String(), "❌ Please choose 1-8"); got != 3 {
		t.Errorf("re-prompt printed %d times, want 3", got)
	}
}
