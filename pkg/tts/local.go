package tts

import (
	"context"
	"log/slog"
	"os/exec"
	"runtime"
	"strconv"
	"sync"
)

// Local synthesizes speech with an installed command-line engine:
// espeak-ng (or espeak) on Linux, say on macOS. It needs no network,
// no credentials, and no Player, so it makes a dependable fallback.
type Local struct {
	binary string
	cfg    *Config
	logger *slog.Logger

	mu      sync.Mutex
	current *exec.Cmd
	stopped bool
	closed  bool
}

// NewLocal creates an offline synthesis engine, resolving the engine
// binary from WithCommand or from what is installed.
func NewLocal(opts ...Option) (*Local, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	binary, err := resolveEngine(cfg.Command)
	if err != nil {
		return nil, err
	}

	return &Local{
		binary: binary,
		cfg:    cfg,
		logger: cfg.Logger.With("component", "tts.local"),
	}, nil
}

// resolveEngine picks the first installed speech command.
func resolveEngine(override string) (string, error) {
	candidates := []string{"espeak-ng", "espeak"}
	if runtime.GOOS == "darwin" {
		candidates = []string{"say"}
	}
	if override != "" {
		candidates = []string{override}
	}

	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrNoEngine
}

// Speak runs the engine and blocks until it finishes speaking.
func (l *Local) Speak(ctx context.Context, text string) error {
	if l.closed {
		return ErrClosed
	}
	if text == "" {
		return nil
	}

	cmd := exec.CommandContext(ctx, l.binary, l.args(text)...)

	l.mu.Lock()
	l.current = cmd
	l.stopped = false
	l.mu.Unlock()

	err := cmd.Run()

	l.mu.Lock()
	l.current = nil
	wasStopped := l.stopped
	l.mu.Unlock()

	if err != nil {
		// A kill from Stop is an interruption, not a failure.
		if wasStopped || ctx.Err() != nil {
			return ctx.Err()
		}
		return WrapError("local", err)
	}
	return nil
}

// args builds the engine command line for the configured voice and rate.
func (l *Local) args(text string) []string {
	var args []string
	if isSay(l.binary) {
		args = append(args, "-r", strconv.Itoa(l.cfg.WordsPerMin))
		if l.cfg.Voice != "" {
			args = append(args, "-v", l.cfg.Voice)
		}
	} else {
		args = append(args, "-s", strconv.Itoa(l.cfg.WordsPerMin))
		args = append(args, "-a", strconv.Itoa(amplitude(l.cfg.Volume)))
		if l.cfg.Voice != "" {
			args = append(args, "-v", l.cfg.Voice)
		}
	}
	return append(args, text)
}

func isSay(binary string) bool {
	return len(binary) >= 3 && binary[len(binary)-3:] == "say"
}

// amplitude maps a 0.0-1.0 volume onto espeak's 0-200 scale.
func amplitude(volume float64) int {
	if volume <= 0 {
		return 0
	}
	if volume > 1 {
		volume = 1
	}
	return int(volume * 200)
}

// Stop kills the engine process, cutting speech off immediately.
func (l *Local) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current != nil && l.current.Process != nil {
		l.stopped = true
		l.current.Process.Kill()
	}
}

// Health verifies the engine binary is still present.
func (l *Local) Health(ctx context.Context) error {
	if l.closed {
		return ErrClosed
	}
	_, err := exec.LookPath(l.binary)
	if err != nil {
		return WrapError("local", err)
	}
	return nil
}

// Close marks the engine unusable and stops any playback.
func (l *Local) Close() error {
	l.Stop()
	l.closed = true
	return nil
}

// Verify Local implements Synthesizer at compile time.
var _ Synthesizer = (*Local)(nil)
