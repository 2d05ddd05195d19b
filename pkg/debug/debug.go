// Package debug provides global debug logging flags
package debug

import "fmt"

// Audio controls whether verbose audio capture logs are shown (silence
// thresholds, discarded noise, WAV dumps). These are far too chatty for the
// regular logger; use the --debug-audio flag to enable them.
var Audio bool

// AudioLog prints a message only if audio debug mode is enabled
func AudioLog(format string, args ...interface{}) {
	if Audio {
		fmt.Printf(format, args...)
	}
}

// AudioLogln prints its arguments with a newline only if audio debug mode is enabled
func AudioLogln(args ...interface{}) {
	if Audio {
		fmt.Println(args...)
	}
}
