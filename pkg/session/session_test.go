package session

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/talkware/go-parley/pkg/question"
)

func TestNewSession(t *testing.T) {
	before := time.Now()
	sess := NewSession(question.LevelBeginner, question.CategoryPersonal)
	after := time.Now()

	if sess.ID == uuid.Nil {
		t.Error("session ID not assigned")
	}
	if sess.Level != question.LevelBeginner {
		t.Errorf("Level = %q, want %q", sess.Level, question.LevelBeginner)
	}
	if sess.Category != question.CategoryPersonal {
		t.Errorf("Category = %q, want %q", sess.Category, question.CategoryPersonal)
	}
	if sess.Start.Before(before) || sess.Start.After(after) {
		t.Errorf("Start = %v, want between %v and %v", sess.Start, before, after)
	}
	if len(sess.Turns) != 0 {
		t.Errorf("new session has %d turns, want 0", len(sess.Turns))
	}
	if sess.Speaking != 0 {
		t.Errorf("new session Speaking = %v, want 0", sess.Speaking)
	}
}

func TestAddTurnAccumulatesSpeaking(t *testing.T) {
	sess := NewSession(question.LevelIntermediate, question.CategoryNone)

	durations := []time.Duration{
		3 * time.Second,
		0, // typed answer contributes nothing
		12 * time.Second,
		1500 * time.Millisecond,
	}

	var prev time.Duration
	var want time.Duration
	for i, d := range durations {
		sess.AddTurn(Turn{Answer: "an answer", Speaking: d})
		want += d
		if sess.Speaking < prev {
			t.Fatalf("Speaking decreased after turn %d: %v -> %v", i, prev, sess.Speaking)
		}
		prev = sess.Speaking
	}

	if sess.Speaking != want {
		t.Errorf("Speaking = %v, want %v", sess.Speaking, want)
	}
	if len(sess.Turns) != len(durations) {
		t.Errorf("Turns = %d, want %d", len(sess.Turns), len(durations))
	}
}

func TestStatsAt(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	sess := NewSession(question.LevelAdvanced, question.CategoryNone)
	sess.Start = start
	sess.AddTurn(Turn{Answer: "first", Speaking: 30 * time.Second})
	sess.AddTurn(Turn{Answer: "second", Speaking: 30 * time.Second})

	st := sess.StatsAt(start.Add(4 * time.Minute))
	if st.Wall != 4*time.Minute {
		t.Errorf("Wall = %v, want 4m", st.Wall)
	}
	if st.Speaking != time.Minute {
		t.Errorf("Speaking = %v, want 1m", st.Speaking)
	}
	if st.SpeakingPercent != 25 {
		t.Errorf("SpeakingPercent = %v, want 25", st.SpeakingPercent)
	}
	if st.Turns != 2 {
		t.Errorf("Turns = %d, want 2", st.Turns)
	}
}

func TestStatsAtZeroWall(t *testing.T) {
	sess := NewSession(question.LevelBeginner, question.CategorySituations)
	sess.AddTurn(Turn{Answer: "hello there", Speaking: 5 * time.Second})

	// Same instant as Start: percentage must be 0, not a division blowup.
	st := sess.StatsAt(sess.Start)
	if st.Wall != 0 {
		t.Errorf("Wall = %v, want 0", st.Wall)
	}
	if st.SpeakingPercent != 0 {
		t.Errorf("SpeakingPercent = %v, want 0", st.SpeakingPercent)
	}

	// A clock that ran backwards is clamped rather than negative.
	st = sess.StatsAt(sess.Start.Add(-time.Minute))
	if st.Wall != 0 {
		t.Errorf("Wall = %v after backwards clock, want 0", st.Wall)
	}
	if st.SpeakingPercent != 0 {
		t.Errorf("SpeakingPercent = %v after backwards clock, want 0", st.SpeakingPercent)
	}
}

func TestTurnWordCount(t *testing.T) {
	tests := []struct {
		answer string
		want   int
	}{
		{"", 0},
		{"hi", 1},
		{"  spaced   out  ", 2},
		{"I enjoy hiking on weekends", 5},
	}
	for _, tt := range tests {
		turn := Turn{Answer: tt.answer}
		if got := turn.WordCount(); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.answer, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00:00"},
		{42 * time.Second, "0:00:42"},
		{12*time.Minute + 34*time.Second, "0:12:34"},
		{time.Hour + 5*time.Minute + 6*time.Second, "1:05:06"},
		{2*time.Hour + 59*time.Minute + 59*time.Second, "2:59:59"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.d); got != tt.want {
			t.Errorf("formatClock(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
