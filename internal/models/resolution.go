package models

// Outcome classifies the result of resolving a query to a single entity.
// These are resolution outcomes, not errors; callers must branch on them.
type Outcome string

const (
	// OutcomeResolved means a single entry won with a sufficient score lead.
	OutcomeResolved Outcome = "resolved"
	// OutcomeAmbiguous means two or more entries sit within the guard band;
	// the caller should ask a clarifying question rather than guess.
	OutcomeAmbiguous Outcome = "ambiguous"
	// OutcomeNoMatch means no candidate cleared the minimum match floor;
	// the caller falls back to generic behavior.
	OutcomeNoMatch Outcome = "no_match"
)

// Resolution is the ephemeral outcome of disambiguating a query.
type Resolution struct {
	Outcome Outcome         `json:"outcome"`
	Entry   *GazetteerEntry `json:"entry,omitempty"`
	// Tied carries the near-tied candidates for ambiguous outcomes so the
	// caller can present a choice.
	Tied []*Candidate `json:"tied,omitempty"`
	// Lead is the score gap between the top two candidates.
	Lead float64 `json:"lead"`
}
