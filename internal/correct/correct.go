// Package correct rewrites free-text queries so that misspelled place names
// become their gazetteer forms before matching and ranking run.
package correct

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/worldjourney/platoo/internal/gazetteer"
	"github.com/worldjourney/platoo/internal/match"
	"github.com/worldjourney/platoo/internal/models"
	"github.com/worldjourney/platoo/internal/normalize"
	"github.com/worldjourney/platoo/internal/stopword"
)

// Default tunables for the correction pipeline.
const (
	DefaultMaxDistance       = match.DefaultMaxDistance
	DefaultSequenceWeight    = 0.7
	DefaultContainmentWeight = 0.3
	DefaultLongThreshold     = 0.75
	DefaultShortThreshold    = 0.80
	DefaultLongTokenRunes    = 8

	// Tokens at or below this normalized length pass through untouched;
	// with one or two characters nearly everything is within edit distance.
	shortTokenRunes = 2

	// A whole-query containment match needs at least this many normalized
	// runes, otherwise a stray character expands into a full place name.
	minContainmentRunes = 3

	// Slack for float rounding when comparing a score to its threshold, so a
	// computed 0.7999... still clears 0.80.
	scoreEpsilon = 1e-9
)

// Options tunes the correction pipeline. The zero value is not usable; start
// from DefaultOptions.
type Options struct {
	MaxDistance       int
	SequenceWeight    float64
	ContainmentWeight float64
	// LongThreshold is the acceptance score for tokens of LongTokenRunes or
	// more normalized runes; ShortThreshold applies below that.
	LongThreshold  float64
	ShortThreshold float64
	LongTokenRunes int
}

// DefaultOptions returns the tuning used in production.
func DefaultOptions() Options {
	return Options{
		MaxDistance:       DefaultMaxDistance,
		SequenceWeight:    DefaultSequenceWeight,
		ContainmentWeight: DefaultContainmentWeight,
		LongThreshold:     DefaultLongThreshold,
		ShortThreshold:    DefaultShortThreshold,
		LongTokenRunes:    DefaultLongTokenRunes,
	}
}

// Pipeline corrects queries against a gazetteer snapshot. Safe for concurrent
// use; all state is read-only after construction.
type Pipeline struct {
	opts      Options
	stopwords map[normalize.Language]*stopword.Set
	logger    *zap.Logger
}

// NewPipeline builds a pipeline. Nil stopwords fall back to the built-in sets.
func NewPipeline(opts Options, stopwords map[normalize.Language]*stopword.Set, logger *zap.Logger) *Pipeline {
	if stopwords == nil {
		stopwords = stopword.DefaultSets()
	}
	return &Pipeline{opts: opts, stopwords: stopwords, logger: logger}
}

// Correct runs the full pipeline on query: whole-query matching first, then
// token-wise correction. The language is detected from the query text.
func (p *Pipeline) Correct(query string, snap *gazetteer.Snapshot) *models.CorrectionResult {
	return p.CorrectWithLanguage(query, normalize.DetectLanguage(query), snap)
}

// CorrectWithLanguage is Correct with the query language supplied by the
// caller instead of detected.
func (p *Pipeline) CorrectWithLanguage(query string, lang normalize.Language, snap *gazetteer.Snapshot) *models.CorrectionResult {
	result := &models.CorrectionResult{
		Original:  query,
		Corrected: query,
		Language:  string(lang),
	}
	key := normalize.Key(query)
	if key == "" || snap == nil || snap.Len() == 0 {
		return result
	}

	if alias, ok := p.matchFullQuery(key, snap); ok {
		result.Corrected = alias.Entry.Name
		result.FullMatch = true
		result.Entry = alias.Entry
		if p.logger != nil {
			p.logger.Debug("full-query match",
				zap.String("query", query),
				zap.String("canonical", alias.Entry.Name))
		}
		return result
	}

	tokens := strings.Fields(query)
	outputs := make([]string, 0, len(tokens))
	decisions := make([]models.TokenDecision, 0, len(tokens))
	set := stopword.ForLanguage(p.stopwords, lang)
	for _, token := range tokens {
		d := p.correctToken(token, set, snap)
		outputs = append(outputs, d.Output)
		decisions = append(decisions, d)
	}
	result.Corrected = strings.Join(outputs, " ")
	result.Tokens = decisions
	return result
}

// matchFullQuery looks for an alias the whole normalized query equals,
// contains, or is contained by. The alias-inside-query direction only applies
// to single-token queries: it exists for unspaced Thai like ไปตลาดร่มหุบกัน,
// and a spaced sentence mentioning a place must keep its surrounding words and
// fall through to token-wise correction instead of collapsing to one name.
// Ties break on higher popularity, then shorter alias, then alias text, so
// repeated queries always land on the same entry.
func (p *Pipeline) matchFullQuery(key string, snap *gazetteer.Snapshot) (gazetteer.Alias, bool) {
	if e, ok := snap.LookupKey(key); ok {
		return gazetteer.Alias{Key: key, Raw: e.Name, Entry: e}, true
	}
	if utf8.RuneCountInString(key) < minContainmentRunes {
		return gazetteer.Alias{}, false
	}
	singleToken := !strings.Contains(key, " ")

	var best gazetteer.Alias
	found := false
	for _, a := range snap.Aliases() {
		aliasInQuery := singleToken && strings.Contains(key, a.Key)
		if !aliasInQuery && !strings.Contains(a.Key, key) {
			continue
		}
		if !found || betterAlias(a, best) {
			best = a
			found = true
		}
	}
	return best, found
}

func (p *Pipeline) correctToken(token string, set *stopword.Set, snap *gazetteer.Snapshot) models.TokenDecision {
	d := models.TokenDecision{Token: token, Output: token, Action: models.TokenKept}

	key := normalize.Key(token)
	if utf8.RuneCountInString(key) <= shortTokenRunes {
		d.Action = models.TokenShort
		return d
	}
	if set.Contains(token) {
		d.Action = models.TokenStopword
		return d
	}

	best, score, ok := p.bestTokenMatch(key, snap)
	if !ok {
		return d
	}
	threshold := p.opts.ShortThreshold
	if utf8.RuneCountInString(key) >= p.opts.LongTokenRunes {
		threshold = p.opts.LongThreshold
	}
	if score < threshold-scoreEpsilon {
		return d
	}
	if best.Raw == token {
		// Already the gazetteer form.
		return d
	}
	d.Output = best.Raw
	d.Action = models.TokenCorrected
	d.Alias = best.Raw
	d.Score = score
	if p.logger != nil {
		p.logger.Debug("token corrected",
			zap.String("token", token),
			zap.String("output", best.Raw),
			zap.Float64("score", score))
	}
	return d
}

// bestTokenMatch scans every alias for the highest-scoring exact or fuzzy
// match to the token key. Substring hits are skipped here: a token embedded in
// a longer alias is the whole-query stage's business, and expanding single
// tokens into full place names mangles the sentence around them.
func (p *Pipeline) bestTokenMatch(key string, snap *gazetteer.Snapshot) (gazetteer.Alias, float64, bool) {
	var (
		best      gazetteer.Alias
		bestScore float64
		found     bool
	)
	for _, a := range snap.Aliases() {
		kind, _, score := match.Evaluate(key, a.Key, p.opts.MaxDistance, p.opts.SequenceWeight, p.opts.ContainmentWeight)
		if kind != models.MatchExact && kind != models.MatchFuzzy {
			continue
		}
		switch {
		case !found, score > bestScore:
		case score == bestScore && betterAlias(a, best):
		default:
			continue
		}
		best, bestScore, found = a, score, true
	}
	return best, bestScore, found
}

// betterAlias is the deterministic tie-break: higher entry popularity, then
// shorter alias, then lexicographic alias text.
func betterAlias(a, b gazetteer.Alias) bool {
	if a.Entry.Popularity != b.Entry.Popularity {
		return a.Entry.Popularity > b.Entry.Popularity
	}
	la, lb := utf8.RuneCountInString(a.Raw), utf8.RuneCountInString(b.Raw)
	if la != lb {
		return la < lb
	}
	return a.Raw < b.Raw
}
