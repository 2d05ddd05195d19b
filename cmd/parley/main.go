// Parley - voice-driven English conversation practice
// Speaks with the learner through the microphone and speakers, tutored by a
// local Ollama model.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	logging "github.com/talkware/go-parley/internal/log"
	"github.com/talkware/go-parley/pkg/coach"
)

func main() {
	_ = godotenv.Load()

	cfg := parseFlags()

	level := "info"
	if cfg.Debug {
		level = "debug"
	}
	logging.Init(level)

	app, err := coach.New(cfg)
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Init(ctx); err != nil {
		log.Fatalf("❌ Initialization failed: %v", err)
	}
	defer app.Shutdown()

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("❌ Runtime error: %v", err)
	}
}

// parseFlags parses command line flags and returns configuration.
// Priority: flags over environment variables over defaults.
func parseFlags() coach.Config {
	cfg := coach.DefaultConfig()
	cfg.LoadEnvConfig()

	flag.StringVar(&cfg.Model, "model", cfg.Model, "Ollama model to practice with")
	flag.StringVar(&cfg.OllamaURL, "ollama-url", cfg.OllamaURL, "OpenAI-compatible base URL of the Ollama server")
	flag.StringVar(&cfg.Recognizer, "recognizer", cfg.Recognizer, "Speech recognizer: google, deepgram, or text")
	flag.StringVar(&cfg.SettingsPath, "settings", cfg.SettingsPath, "Settings file path (default ~/.parley/settings.json)")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable verbose debug logging")
	flag.BoolVar(&cfg.DebugAudio, "debug-audio", cfg.DebugAudio, "Log audio capture internals and dump the last utterance to a WAV file")
	flag.Parse()

	return cfg
}
