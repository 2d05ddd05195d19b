// Package session drives one voice practice session: the question loop,
// command interpretation, the recognition retry policy, the post-feedback
// menu, and session statistics.
//
// The Controller owns all mutable session state. External collaborators -
// speech recognition, speech synthesis, and feedback generation - are
// consumed through narrow interfaces, so the whole loop is testable with the
// mocks those packages provide.
//
// Example usage:
//
//	ctrl, _ := session.NewController(
//	    session.WithRecognizer(rec),
//	    session.WithSynthesizer(synth),
//	    session.WithTutor(tutor),
//	)
//	sess, err := ctrl.Run(ctx, question.LevelIntermediate, question.CategoryNone)
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/talkware/go-parley/pkg/question"
)

// Mode selects which synthesis engine renders speech for a session.
// It is chosen once at session setup and recorded for reporting.
type Mode string

const (
	// ModeOffline is the local command-line engine.
	ModeOffline Mode = "offline"

	// ModeNetwork is the cloud engine with natural voices.
	ModeNetwork Mode = "network"
)

// Turn is the full record of one question's presentation: what was asked,
// what the learner said, how long they spoke, and the tutor's feedback.
// A repeat after feedback appends a new Turn for the same question, so both
// attempts stay in the history.
type Turn struct {
	// Question is the prompt this turn answered.
	Question question.Question

	// Answer is the transcribed (or typed) answer. Empty when the learner
	// stayed silent.
	Answer string

	// Speaking is the measured duration of the spoken answer. Zero for
	// typed answers.
	Speaking time.Duration

	// Feedback is the tutor feedback text. Empty when no feedback was
	// generated for this turn.
	Feedback string

	// Retries is how many recognition attempts failed before this answer
	// arrived.
	Retries int

	// Typed reports that the answer came from the typed fallback rather
	// than the microphone.
	Typed bool
}

// WordCount returns the number of words in the answer.
func (t *Turn) WordCount() int {
	return countWords(t.Answer)
}

// Session is the state of one practice run. It is created at practice start,
// mutated only by the Controller, and discarded at process exit; nothing is
// persisted.
type Session struct {
	// ID uniquely identifies the session.
	ID uuid.UUID

	// Level and Category describe which question bank is being practiced.
	Level    question.Level
	Category question.Category

	// Start is when the session began.
	Start time.Time

	// Speaking is the cumulative speaking time across all turns. It only
	// ever grows.
	Speaking time.Duration

	// Turns is the ordered turn history. The session owns this list
	// exclusively.
	Turns []Turn

	// AutoSpeak controls whether prompts and feedback are spoken aloud.
	AutoSpeak bool

	// Mode is the synthesis engine selected for this session.
	Mode Mode
}

// NewSession creates a session starting now.
func NewSession(level question.Level, category question.Category) *Session {
	return &Session{
		ID:       uuid.New(),
		Level:    level,
		Category: category,
		Start:    time.Now(),
	}
}

// AddTurn appends a turn to the history and folds its speaking time into
// the session accumulator.
func (s *Session) AddTurn(t Turn) {
	s.Speaking += t.Speaking
	s.Turns = append(s.Turns, t)
}

// Stats summarizes the session as of now.
type Stats struct {
	// Wall is the elapsed session time.
	Wall time.Duration

	// Speaking is the cumulative speaking time.
	Speaking time.Duration

	// SpeakingPercent is speaking time as a percentage of wall time,
	// 0 when the session has no measurable duration.
	SpeakingPercent float64

	// Turns is the number of recorded turns.
	Turns int
}

// StatsAt computes session statistics against the given clock reading.
// Purely derived; no session state changes.
func (s *Session) StatsAt(now time.Time) Stats {
	wall := now.Sub(s.Start)
	if wall < 0 {
		wall = 0
	}

	var pct float64
	if wall > 0 {
		pct = s.Speaking.Seconds() / wall.Seconds() * 100
	}

	return Stats{
		Wall:            wall,
		Speaking:        s.Speaking,
		SpeakingPercent: pct,
		Turns:           len(s.Turns),
	}
}

// Stats computes session statistics as of time.Now.
func (s *Session) Stats() Stats {
	return s.StatsAt(time.Now())
}
