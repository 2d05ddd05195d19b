package coach

import (
	"fmt"
	"strings"

	"github.com/eiannone/keyboard"
)

// exitKey is the menu choice that ends the application. Esc and Ctrl+C map
// to it so the usual escape hatches still work under raw keyboard input.
const exitKey = '8'

// keySource reads single keypresses for menu selection.
type keySource interface {
	Open() error
	Read() (rune, error)
	Close()
}

// termKeys reads raw keypresses from the controlling terminal.
type termKeys struct{}

func (termKeys) Open() error {
	return keyboard.Open()
}

// Read returns one keypress. Raw mode suppresses terminal echo, so the key
// is echoed here for visible feedback.
func (termKeys) Read() (rune, error) {
	ch, key, err := keyboard.GetKey()
	if err != nil {
		return 0, err
	}

	switch key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		ch = exitKey
	}
	if ch != 0 {
		fmt.Printf("%c\n", ch)
	}
	return ch, nil
}

func (termKeys) Close() {
	keyboard.Close()
}

// lineKeys reads the first character of a typed line. It is the fallback
// when no raw terminal is available, such as piped input.
type lineKeys struct {
	input func(prompt string) (string, error)
}

func (l *lineKeys) Open() error { return nil }

func (l *lineKeys) Read() (rune, error) {
	line, err := l.input("")
	if err != nil {
		return 0, err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, nil
	}
	return rune(line[0]), nil
}

func (l *lineKeys) Close() {}
