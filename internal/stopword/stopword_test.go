package stopword

import (
	"testing"

	"github.com/worldjourney/platoo/internal/normalize"
)

func TestSet_Contains(t *testing.T) {
	s := New(normalize.LanguageEnglish, []string{"near", "the", "in"})

	tests := []struct {
		token string
		want  bool
	}{
		{"near", true},
		{"NEAR", true},
		{"Near ", true},
		{"the", true},
		{"bangkok", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := s.Contains(tt.token); got != tt.want {
			t.Errorf("Contains(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestSet_ThaiToneInsensitive(t *testing.T) {
	s := New(normalize.LanguageThai, []string{"ใกล้"})
	if !s.Contains("ใกล้") {
		t.Error("expected exact Thai stopword to match")
	}
	// Same word with the tone mark dropped still matches on the normalized key.
	if !s.Contains("ใกล") {
		t.Error("expected tone-insensitive Thai stopword match")
	}
}

func TestDefaultSets(t *testing.T) {
	sets := DefaultSets()
	th := ForLanguage(sets, normalize.LanguageThai)
	en := ForLanguage(sets, normalize.LanguageEnglish)
	if th == nil || th.Len() == 0 {
		t.Fatal("missing default Thai set")
	}
	if en == nil || en.Len() == 0 {
		t.Fatal("missing default English set")
	}
	if !th.Contains("ใกล้") {
		t.Error("Thai defaults should include ใกล้")
	}
	if !en.Contains("near") {
		t.Error("English defaults should include near")
	}
}

func TestNilSet(t *testing.T) {
	var s *Set
	if s.Contains("anything") {
		t.Error("nil set should contain nothing")
	}
	if s.Len() != 0 {
		t.Error("nil set length should be 0")
	}
}
