package question

import "testing"

func TestForLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    Level
		category Category
		want     int
		wantErr  bool
	}{
		{"beginner personal", LevelBeginner, CategoryPersonal, 5, false},
		{"beginner situations", LevelBeginner, CategorySituations, 5, false},
		{"intermediate", LevelIntermediate, CategoryNone, 8, false},
		{"advanced", LevelAdvanced, CategoryNone, 8, false},
		{"beginner without category", LevelBeginner, CategoryNone, 0, true},
		{"intermediate with category", LevelIntermediate, CategoryPersonal, 0, true},
		{"unknown level", Level("expert"), CategoryNone, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs, err := ForLevel(tt.level, tt.category)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ForLevel failed: %v", err)
			}
			if len(qs) != tt.want {
				t.Errorf("expected %d questions, got %d", tt.want, len(qs))
			}
			for i, q := range qs {
				if q.Text == "" {
					t.Errorf("question %d has empty text", i)
				}
				if q.Level != tt.level {
					t.Errorf("question %d has level %q, want %q", i, q.Level, tt.level)
				}
			}
		})
	}
}

func TestForLevelOrderStable(t *testing.T) {
	first, err := ForLevel(LevelIntermediate, CategoryNone)
	if err != nil {
		t.Fatalf("ForLevel failed: %v", err)
	}
	second, err := ForLevel(LevelIntermediate, CategoryNone)
	if err != nil {
		t.Fatalf("ForLevel failed: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("question order changed between calls at index %d", i)
		}
	}
}

func TestLevelValid(t *testing.T) {
	for _, l := range []Level{LevelBeginner, LevelIntermediate, LevelAdvanced} {
		if !l.Valid() {
			t.Errorf("level %q should be valid", l)
		}
	}
	if Level("fluent").Valid() {
		t.Error("unexpected valid level")
	}
}
