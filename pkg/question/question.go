// Package question provides the practice question banks for go-parley.
package question

import "fmt"

// Level is a proficiency level for practice questions.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Valid reports whether the level is one of the known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Category is a beginner-level topic grouping.
// Only beginner questions are categorized.
type Category string

const (
	CategoryNone       Category = ""
	CategoryPersonal   Category = "personal"
	CategorySituations Category = "situations"
)

// Question is an immutable practice prompt.
type Question struct {
	// Text is the prompt spoken and shown to the learner.
	Text string

	// Level is the proficiency level the question is written for.
	Level Level

	// Category groups beginner questions; empty for other levels.
	Category Category
}

// ForLevel returns the ordered question list for a level.
// Category is required for the beginner level and must be empty otherwise.
func ForLevel(level Level, category Category) ([]Question, error) {
	if !level.Valid() {
		return nil, fmt.Errorf("unknown level %q", level)
	}

	if level == LevelBeginner {
		switch category {
		case CategoryPersonal:
			return build(level, category, beginnerPersonal), nil
		case CategorySituations:
			return build(level, category, beginnerSituations), nil
		default:
			return nil, fmt.Errorf("beginner level requires category %q or %q", CategoryPersonal, CategorySituations)
		}
	}

	if category != CategoryNone {
		return nil, fmt.Errorf("category %q is only valid for the beginner level", category)
	}

	switch level {
	case LevelIntermediate:
		return build(level, CategoryNone, intermediate), nil
	default:
		return build(level, CategoryNone, advanced), nil
	}
}

func build(level Level, category Category, texts []string) []Question {
	qs := make([]Question, len(texts))
	for i, t := range texts {
		qs[i] = Question{Text: t, Level: level, Category: category}
	}
	return qs
}
