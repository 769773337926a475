// Package stopword holds per-language connector tokens exempt from correction.
package stopword

import (
	"github.com/worldjourney/platoo/internal/normalize"
)

// Set is a per-language collection of connector/preposition tokens that the
// correction pipeline passes through unmodified, regardless of their edit
// distance to any gazetteer alias. Membership is checked on normalized keys,
// so tone marks and case never matter.
type Set struct {
	language normalize.Language
	keys     map[string]struct{}
}

// New builds a Set for the given language from raw words.
func New(language normalize.Language, words []string) *Set {
	s := &Set{
		language: language,
		keys:     make(map[string]struct{}, len(words)),
	}
	for _, w := range words {
		key := normalize.Key(w)
		if key == "" {
			continue
		}
		s.keys[key] = struct{}{}
	}
	return s
}

// Language returns the language this set is tagged with.
func (s *Set) Language() normalize.Language {
	return s.language
}

// Contains reports whether token belongs to the set. Comparison happens on
// the token's normalized key, never on raw text.
func (s *Set) Contains(token string) bool {
	if s == nil {
		return false
	}
	_, ok := s.keys[normalize.Key(token)]
	return ok
}

// Len returns the number of entries in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// defaultThai are Thai connectors and prepositions common in travel queries.
var defaultThai = []string{
	"ใน", "ที่", "ใกล้", "แถว", "กับ", "และ", "หรือ", "ของ", "จาก", "ไป",
	"มา", "อยู่", "ให้", "ได้", "ๆ", "ริม", "บน", "ละ", "นะ", "ค่ะ", "ครับ",
}

// defaultEnglish are English connectors, articles, and prepositions.
var defaultEnglish = []string{
	"in", "at", "on", "to", "of", "the", "a", "an", "and", "or",
	"near", "by", "for", "with", "from", "around", "close",
}

// DefaultSets returns the built-in Thai and English stopword sets.
func DefaultSets() map[normalize.Language]*Set {
	return map[normalize.Language]*Set{
		normalize.LanguageThai:    New(normalize.LanguageThai, defaultThai),
		normalize.LanguageEnglish: New(normalize.LanguageEnglish, defaultEnglish),
	}
}

// ForLanguage returns the set for lang from sets, or nil when absent.
func ForLanguage(sets map[normalize.Language]*Set, lang normalize.Language) *Set {
	if sets == nil {
		return nil
	}
	return sets[lang]
}
