package drill

import "testing"

func TestBuiltInSets(t *testing.T) {
	sets := BuiltIn()
	if len(sets) != 3 {
		t.Fatalf("Expected 3 drill sets, got %d", len(sets))
	}

	for _, s := range sets {
		if s.Sound == "" {
			t.Error("Expected a sound name")
		}
		if len(s.Words) != 5 {
			t.Errorf("Expected 5 words for %s, got %d", s.Sound, len(s.Words))
		}
	}

	if sets[0].Sound != "TH sounds" {
		t.Errorf("Expected TH sounds first, got %s", sets[0].Sound)
	}
	if sets[0].Words[0] != "think" {
		t.Errorf("Expected 'think' as the first TH word, got %s", sets[0].Words[0])
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		word  string
		heard string
		want  bool
	}{
		{"think", "think", true},
		{"think", "I think so", true},
		{"think", "THINK", true},
		{"think", "Think.", true},
		{"think", "sink", false},
		{"think", "", false},
		{"light", "delight", true}, // substring, not word-boundary, match
		{"very", "vary", false},
	}

	for _, tt := range tests {
		if got := Match(tt.word, tt.heard); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.word, tt.heard, got, tt.want)
		}
	}
}

func TestJudge(t *testing.T) {
	if got := Judge("think", "I think so"); got != "Perfect! Great pronunciation." {
		t.Errorf("Unexpected praise line: %q", got)
	}
	if got := Judge("think", "sink"); got != "Good try! Let's practice 'think' again." {
		t.Errorf("Unexpected retry line: %q", got)
	}
}
