// Package rank orders gazetteer candidates for a query and resolves a query
// to a single entity when one wins by a clear margin.
package rank

import (
	"sort"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/worldjourney/platoo/internal/gazetteer"
	"github.com/worldjourney/platoo/internal/match"
	"github.com/worldjourney/platoo/internal/models"
	"github.com/worldjourney/platoo/internal/normalize"
)

// Default tunables for ranking and resolution.
const (
	DefaultLimit            = 6
	MaxLimit                = 20
	DefaultGuardLead        = 0.15
	MinGuardLead            = 0.10
	MaxGuardLead            = 0.20
	DefaultPopularityWeight = 0.25
)

// Options tunes the ranker. Start from DefaultOptions.
type Options struct {
	MaxDistance       int
	SequenceWeight    float64
	ContainmentWeight float64
	LongThreshold     float64
	ShortThreshold    float64
	LongTokenRunes    int
	// GuardLead is the minimum resolution-score gap between the top two
	// candidates before Resolve commits to the leader.
	GuardLead float64
	// PopularityWeight scales the normalized popularity boost added to the
	// match score during resolution.
	PopularityWeight float64
	// Limit caps Rank output when the caller passes a non-positive limit.
	Limit int
}

// DefaultOptions returns the production tuning.
func DefaultOptions() Options {
	return Options{
		MaxDistance:       match.DefaultMaxDistance,
		SequenceWeight:    0.7,
		ContainmentWeight: 0.3,
		LongThreshold:     0.75,
		ShortThreshold:    0.80,
		LongTokenRunes:    8,
		GuardLead:         DefaultGuardLead,
		PopularityWeight:  DefaultPopularityWeight,
		Limit:             DefaultLimit,
	}
}

// ClampGuardLead pins lead to the supported band, substituting the default
// for non-positive input.
func ClampGuardLead(lead float64) float64 {
	switch {
	case lead <= 0:
		return DefaultGuardLead
	case lead < MinGuardLead:
		return MinGuardLead
	case lead > MaxGuardLead:
		return MaxGuardLead
	default:
		return lead
	}
}

// Ranker scores queries against gazetteer snapshots. Safe for concurrent use.
type Ranker struct {
	opts   Options
	logger *zap.Logger
}

// NewRanker builds a ranker.
func NewRanker(opts Options, logger *zap.Logger) *Ranker {
	return &Ranker{opts: opts, logger: logger}
}

// Rank returns up to limit candidates for query, best first. Each entry
// appears at most once, scored by its best alias. Ordering is total: match
// kind, then popularity, then edit distance, then canonical name, so equal
// inputs always produce identical output.
func (r *Ranker) Rank(query string, snap *gazetteer.Snapshot, limit int) []*models.Candidate {
	if limit <= 0 {
		limit = r.opts.Limit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	candidates := r.rankAll(normalize.Key(query), snap)
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// Resolve narrows query to a single entry using the configured guard lead.
func (r *Ranker) Resolve(query string, snap *gazetteer.Snapshot) *models.Resolution {
	return r.ResolveWithLead(query, snap, r.opts.GuardLead)
}

// ResolveWithLead is Resolve with a caller-supplied guard lead, clamped to
// the supported band. The top candidate must clear the acceptance floor:
// an exact or substring match, or a fuzzy score at or above the adaptive
// threshold for the query length. Within the guard, rivals from the same
// disambiguation group or close in resolution score force an ambiguous
// outcome instead of a silent guess.
func (r *Ranker) ResolveWithLead(query string, snap *gazetteer.Snapshot, lead float64) *models.Resolution {
	lead = ClampGuardLead(lead)
	key := normalize.Key(query)
	candidates := r.rankAll(key, snap)
	if len(candidates) == 0 || !r.clearsFloor(key, candidates[0]) {
		return &models.Resolution{Outcome: models.OutcomeNoMatch}
	}

	top := candidates[0]
	maxPop := snap.MaxPopularity()
	topScore := r.resolutionScore(top, maxPop)

	var rival *models.Candidate
	rivalScore := 0.0
	for _, c := range candidates[1:] {
		score := r.resolutionScore(c, maxPop)
		sameGroup := top.Entry.Group != "" && c.Entry.Group == top.Entry.Group
		if !sameGroup && topScore-score >= lead {
			continue
		}
		if rival == nil || score > rivalScore {
			rival, rivalScore = c, score
		}
	}
	if rival == nil {
		return &models.Resolution{Outcome: models.OutcomeResolved, Entry: top.Entry, Lead: topScore}
	}
	gap := topScore - rivalScore
	if gap >= lead {
		return &models.Resolution{Outcome: models.OutcomeResolved, Entry: top.Entry, Lead: gap}
	}
	if r.logger != nil {
		r.logger.Debug("ambiguous resolution",
			zap.String("query", query),
			zap.String("top", top.Entry.Name),
			zap.String("rival", rival.Entry.Name),
			zap.Float64("gap", gap))
	}
	return &models.Resolution{
		Outcome: models.OutcomeAmbiguous,
		Tied:    []*models.Candidate{top, rival},
		Lead:    gap,
	}
}

// rankAll scores every entry by its best alias and sorts the survivors.
func (r *Ranker) rankAll(key string, snap *gazetteer.Snapshot) []*models.Candidate {
	if key == "" || snap == nil || snap.Len() == 0 {
		return nil
	}
	best := make(map[*models.GazetteerEntry]*models.Candidate, snap.Len())
	for _, a := range snap.Aliases() {
		kind, dist, score := match.Evaluate(key, a.Key, r.opts.MaxDistance, r.opts.SequenceWeight, r.opts.ContainmentWeight)
		if kind == models.MatchNone {
			continue
		}
		c := &models.Candidate{Entry: a.Entry, Alias: a.Raw, Kind: kind, Distance: dist, Score: score}
		if prev, ok := best[a.Entry]; !ok || betterForEntry(c, prev) {
			best[a.Entry] = c
		}
	}
	candidates := make([]*models.Candidate, 0, len(best))
	for _, c := range best {
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return lessCandidate(candidates[i], candidates[j])
	})
	return candidates
}

// clearsFloor reports whether the top candidate is trustworthy at all: exact
// and substring matches always are, fuzzy ones must reach the adaptive
// threshold for the query's normalized length.
func (r *Ranker) clearsFloor(key string, c *models.Candidate) bool {
	if c.Kind == models.MatchExact || c.Kind == models.MatchSubstring {
		return true
	}
	threshold := r.opts.ShortThreshold
	if utf8.RuneCountInString(key) >= r.opts.LongTokenRunes {
		threshold = r.opts.LongThreshold
	}
	return c.Score >= threshold-1e-9
}

func (r *Ranker) resolutionScore(c *models.Candidate, maxPop float64) float64 {
	score := c.Score
	if maxPop > 0 {
		score += r.opts.PopularityWeight * (c.Entry.Popularity / maxPop)
	}
	return score
}

// betterForEntry picks the stronger of two matches for the same entry.
func betterForEntry(a, b *models.Candidate) bool {
	if a.Kind != b.Kind {
		return a.Kind > b.Kind
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Distance < b.Distance
}

// lessCandidate is the total ranking order across entries.
func lessCandidate(a, b *models.Candidate) bool {
	if a.Kind != b.Kind {
		return a.Kind > b.Kind
	}
	if a.Entry.Popularity != b.Entry.Popularity {
		return a.Entry.Popularity > b.Entry.Popularity
	}
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Entry.Name < b.Entry.Name
}
