// Package drill provides pronunciation practice word sets and the match
// rule used to judge a repeated word.
package drill

import "strings"

// Set is one group of words targeting a challenging sound pair.
type Set struct {
	// Sound names the contrast being practiced, e.g. "TH sounds".
	Sound string

	// Words are spoken one at a time for the student to repeat.
	Words []string
}

// BuiltIn returns the standard drill sets, ordered easiest first.
func BuiltIn() []Set {
	return []Set{
		{Sound: "TH sounds", Words: []string{"think", "this", "thank", "mother", "weather"}},
		{Sound: "R and L", Words: []string{"red", "led", "right", "light", "really"}},
		{Sound: "V and W", Words: []string{"very", "worry", "voice", "choice", "review"}},
	}
}

// Match reports whether the heard transcript contains the target word.
// Recognition often pads short words into phrases ("think" comes back as
// "I think so"), so the check is a case-insensitive substring match.
func Match(word, heard string) bool {
	return strings.Contains(strings.ToLower(heard), strings.ToLower(word))
}

// Judge returns the spoken feedback line for one repeat attempt.
func Judge(word, heard string) string {
	if Match(word, heard) {
		return "Perfect! Great pronunciation."
	}
	return "Good try! Let's practice '" + word + "' again."
}
