package session

import "strings"

// Command is a control directive interpreted from speech or typed text,
// distinct from a substantive answer.
type Command int

const (
	// CommandEnter acknowledges a prompt and moves forward. It is also the
	// default for anything that cannot be classified.
	CommandEnter Command = iota

	// CommandNext advances to the following question.
	CommandNext

	// CommandRepeat re-presents the current question.
	CommandRepeat

	// CommandFinish ends the session.
	CommandFinish
)

// String returns a human-readable command name.
func (c Command) String() string {
	switch c {
	case CommandNext:
		return "next"
	case CommandRepeat:
		return "repeat"
	case CommandFinish:
		return "finish"
	default:
		return "enter"
	}
}

// Command word families for free-form utterances, checked in priority order.
var (
	nextWords   = []string{"next", "continue", "go", "skip"}
	repeatWords = []string{"repeat", "again", "retry", "redo"}
	enterWords  = []string{"enter", "okay", "yes", "ready"}
)

// Control phrases recognized mid-question. Matched exactly against the
// trimmed, lowercased utterance so an ordinary answer that merely mentions
// one of these words is still treated as an answer.
var (
	skipPhrases   = []string{"next question", "next", "skip"}
	finishPhrases = []string{"finish", "stop", "quit", "done"}
	repeatPhrases = []string{"repeat question", "repeat", "again"}
)

// Classify maps a free-form utterance to a Command using case-insensitive
// substring matching, first family wins. Unmatched utterances classify as
// CommandEnter so unclear input never blocks a session. Classify is pure and
// performs no I/O.
func Classify(utterance string) Command {
	s := strings.ToLower(utterance)
	switch {
	case containsAny(s, nextWords):
		return CommandNext
	case containsAny(s, repeatWords):
		return CommandRepeat
	case containsAny(s, enterWords):
		return CommandEnter
	default:
		return CommandEnter
	}
}

// DetectControl reports whether an answer-phase utterance is a control
// phrase rather than a substantive answer. The boolean is false when the
// utterance should be treated as an answer.
func DetectControl(utterance string) (Command, bool) {
	s := strings.ToLower(strings.TrimSpace(utterance))
	switch {
	case equalsAny(s, skipPhrases):
		return CommandNext, true
	case equalsAny(s, finishPhrases):
		return CommandFinish, true
	case equalsAny(s, repeatPhrases):
		return CommandRepeat, true
	}
	return CommandEnter, false
}

// ClassifyTyped maps a typed menu line to a Command. Unlike Classify it can
// reject: an unrecognized line reports ok=false so the caller may re-prompt.
// An empty line acknowledges the prompt as CommandEnter.
func ClassifyTyped(line string) (Command, bool) {
	s := strings.ToLower(strings.TrimSpace(line))
	switch {
	case s == "":
		return CommandEnter, true
	case equalsAny(s, nextWords):
		return CommandNext, true
	case equalsAny(s, repeatWords):
		return CommandRepeat, true
	case equalsAny(s, finishPhrases):
		return CommandFinish, true
	case equalsAny(s, enterWords):
		return CommandEnter, true
	}
	return CommandEnter, false
}

// IsFarewell reports whether an utterance ends a free conversation.
// The finish phrases apply, plus a plain "goodbye".
func IsFarewell(utterance string) bool {
	s := strings.ToLower(strings.TrimSpace(utterance))
	return s == "goodbye" || equalsAny(s, finishPhrases)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func equalsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if s == p {
			return true
		}
	}
	return false
}

func countWords(s string) int {
	return len(strings.Fields(s))
}
