// Package models defines core data structures for gazetteer entries, candidates, and resolutions.
package models

import "fmt"

// Attraction is a sub-item of a gazetteer entry (for example an attraction
// inside a province) with its own popularity score.
type Attraction struct {
	Name       string  `json:"name" yaml:"name"`
	Detail     string  `json:"detail,omitempty" yaml:"detail,omitempty"`
	Popularity float64 `json:"popularity,omitempty" yaml:"popularity,omitempty"`
	Thumbnail  string  `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

// GazetteerEntry represents one recognized entity: a place, category word, or
// province. Aliases always include the canonical name; comparisons happen on
// normalized keys, never raw text.
type GazetteerEntry struct {
	ID      string   `json:"id,omitempty" yaml:"id,omitempty"`
	Name    string   `json:"name" yaml:"name"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	// Group ties together entries that are easily confused with each other,
	// e.g. two provinces with similar spelling. Optional.
	Group       string       `json:"group,omitempty" yaml:"group,omitempty"`
	Popularity  float64      `json:"popularity,omitempty" yaml:"popularity,omitempty"`
	Province    string       `json:"province,omitempty" yaml:"province,omitempty"`
	District    string       `json:"district,omitempty" yaml:"district,omitempty"`
	Category    string       `json:"category,omitempty" yaml:"category,omitempty"`
	Detail      string       `json:"detail,omitempty" yaml:"detail,omitempty"`
	Thumbnail   string       `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	Attractions []Attraction `json:"attractions,omitempty" yaml:"attractions,omitempty"`
}

// Validate checks the entry is usable for matching. A failing entry is
// skipped by the gazetteer loader rather than aborting resolution.
func (e *GazetteerEntry) Validate() error {
	if e == nil {
		return fmt.Errorf("entry is nil")
	}
	if e.Name == "" {
		return fmt.Errorf("entry has no canonical name")
	}
	if e.Popularity < 0 {
		return fmt.Errorf("entry %q has negative popularity", e.Name)
	}
	return nil
}

// Subtitle returns the secondary location line for display records.
func (e *GazetteerEntry) Subtitle() string {
	switch {
	case e.District != "" && e.Province != "":
		return e.District + ", " + e.Province
	case e.Province != "":
		return e.Province
	case e.District != "":
		return e.District
	default:
		return e.Category
	}
}
