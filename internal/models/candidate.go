package models

// MatchKind classifies how a candidate matched the query. Higher kinds always
// outrank lower ones regardless of popularity.
type MatchKind int

const (
	// MatchNone means the entry did not match at all.
	MatchNone MatchKind = iota
	// MatchFuzzy is an edit-distance match within the configured bound.
	MatchFuzzy
	// MatchSubstring means one normalized string contains the other.
	MatchSubstring
	// MatchExact means the normalized strings are equal.
	MatchExact
)

// String returns a short label for logging and JSON output.
func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchSubstring:
		return "substring"
	case MatchFuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

// Candidate is an ephemeral per-query match against one gazetteer entry.
type Candidate struct {
	Entry *GazetteerEntry `json:"entry"`
	// Alias is the alias string that produced the match.
	Alias string    `json:"alias"`
	Kind  MatchKind `json:"kind"`
	// Distance is the edit distance for fuzzy matches; zero for exact and
	// substring matches.
	Distance int `json:"distance"`
	// Score is the composite similarity in [0,1].
	Score float64 `json:"score"`
}

// Suggestion is the capped display record handed to the autocomplete UI.
// Rendering is the caller's problem.
type Suggestion struct {
	Name       string  `json:"name"`
	Subtitle   string  `json:"subtitle,omitempty"`
	Popularity float64 `json:"popularity"`
	Thumbnail  string  `json:"thumbnail,omitempty"`
	Kind       string  `json:"kind"`
	Score      float64 `json:"score"`
}

// DisplayRecord converts a candidate into its UI form.
func (c *Candidate) DisplayRecord() Suggestion {
	return Suggestion{
		Name:       c.Entry.Name,
		Subtitle:   c.Entry.Subtitle(),
		Popularity: c.Entry.Popularity,
		Thumbnail:  c.Entry.Thumbnail,
		Kind:       c.Kind.String(),
		Score:      c.Score,
	}
}
