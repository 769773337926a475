package models

// TokenAction says what happened to a single query token.
type TokenAction string

const (
	// TokenKept means the token was left unchanged (no alias cleared the threshold).
	TokenKept TokenAction = "kept"
	// TokenShort means the token was passed through for being 2 characters or fewer.
	TokenShort TokenAction = "short"
	// TokenStopword means the token is in the active-language stopword set.
	TokenStopword TokenAction = "stopword"
	// TokenCorrected means the token was replaced by a gazetteer alias's canonical form.
	TokenCorrected TokenAction = "corrected"
)

// TokenDecision records the per-token outcome of token-wise correction.
type TokenDecision struct {
	Token  string      `json:"token"`
	Output string      `json:"output"`
	Action TokenAction `json:"action"`
	// Alias is the winning alias for corrected tokens.
	Alias string  `json:"alias,omitempty"`
	Score float64 `json:"score,omitempty"`
}

// CorrectionResult holds the outcome of correcting one query. Ephemeral:
// consumed by the chat pipeline or search UI and discarded.
type CorrectionResult struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
	// FullMatch is true when the whole normalized query matched a gazetteer
	// alias and token-wise correction never ran.
	FullMatch bool `json:"full_match"`
	// Entry is the gazetteer entry behind a full-query match, when any.
	Entry  *GazetteerEntry `json:"entry,omitempty"`
	Tokens []TokenDecision `json:"tokens,omitempty"`
	// Language is the detected (or hinted) query language.
	Language string `json:"language"`
}

// Changed reports whether the corrected query differs from the original.
func (r *CorrectionResult) Changed() bool {
	return r.Original != r.Corrected
}
