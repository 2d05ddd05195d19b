package coach

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/talkware/go-parley/pkg/session"
)

// Speaking rate bounds for the network voice. 1.0 is native speed.
const (
	MinSpeakingRate = 0.5
	MaxSpeakingRate = 2.0
)

// DefaultVoice is the network voice used until the learner picks another.
const DefaultVoice = "en-US-Neural2-F"

// NetworkVoices is the fixed set of network voices offered in settings.
var NetworkVoices = []string{
	"en-US-Neural2-A",
	"en-US-Neural2-C",
	"en-US-Neural2-D",
	"en-US-Neural2-F",
}

// Settings are the learner preferences that persist across runs.
type Settings struct {
	// AutoSpeak controls whether questions and feedback are spoken aloud.
	AutoSpeak bool `json:"auto_speak"`

	// Synthesis selects the speech engine: offline or network.
	Synthesis session.Mode `json:"synthesis"`

	// Voice is the network engine voice name.
	Voice string `json:"voice"`

	// SpeakingRate scales speech speed for both engines.
	SpeakingRate float64 `json:"speaking_rate"`
}

// DefaultSettings returns the out-of-the-box preferences: spoken prompts
// with a natural network voice slightly below native speed.
func DefaultSettings() Settings {
	return Settings{
		AutoSpeak:    true,
		Synthesis:    session.ModeNetwork,
		Voice:        DefaultVoice,
		SpeakingRate: 0.9,
	}
}

// normalized clamps hand-edited values back into range instead of rejecting
// the file.
func (s Settings) normalized() Settings {
	if s.Synthesis != session.ModeOffline && s.Synthesis != session.ModeNetwork {
		s.Synthesis = session.ModeNetwork
	}
	if s.Voice == "" {
		s.Voice = DefaultVoice
	}
	if s.SpeakingRate < MinSpeakingRate {
		s.SpeakingRate = MinSpeakingRate
	}
	if s.SpeakingRate > MaxSpeakingRate {
		s.SpeakingRate = MaxSpeakingRate
	}
	return s
}

// LoadSettings reads settings from store.
// A missing, empty, or unreadable store yields defaults so a damaged
// settings file can never block practice.
func LoadSettings(store Store) Settings {
	def := DefaultSettings()
	if store == nil {
		return def
	}

	data, err := store.Load()
	if err != nil || len(data) == 0 {
		return def
	}

	s := def
	if err := json.Unmarshal(data, &s); err != nil {
		return def
	}
	return s.normalized()
}

// SaveSettings writes settings through store.
func SaveSettings(store Store, s Settings) error {
	if store == nil {
		return fmt.Errorf("settings store unavailable")
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return store.Save(data)
}

// SettingsPath returns the default settings file location,
// ~/.parley/settings.json.
func SettingsPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".parley", "settings.json")
}
