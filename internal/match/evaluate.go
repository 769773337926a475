package match

import (
	"strings"

	"github.com/worldjourney/platoo/internal/models"
)

// Evaluate scores two normalized keys and classifies the match. The composite
// blends sequence similarity with substring containment: containment
// contributes containWeight outright, with the remaining seqWeight scaled by
// similarity; a pure fuzzy match scores its sequence similarity alone.
//
// Returns the kind, the edit distance (sentinel for non-fuzzy misses), and the
// composite score in [0,1].
func Evaluate(key, aliasKey string, maxDistance int, seqWeight, containWeight float64) (models.MatchKind, int, float64) {
	if key == "" || aliasKey == "" {
		return models.MatchNone, maxDistance + 1, 0
	}
	if key == aliasKey {
		return models.MatchExact, 0, 1.0
	}

	shorter, longer := runeLen(key), runeLen(aliasKey)
	if shorter > longer {
		shorter, longer = longer, shorter
	}

	if strings.Contains(key, aliasKey) || strings.Contains(aliasKey, key) {
		// For a contiguous substring the edit distance is exactly the length
		// gap, so similarity reduces to the length ratio.
		ratio := float64(shorter) / float64(longer)
		return models.MatchSubstring, 0, containWeight + seqWeight*ratio
	}

	d := Distance(key, aliasKey, maxDistance)
	if d > maxDistance {
		return models.MatchNone, d, 0
	}
	seq := 1.0 - float64(d)/float64(longer)
	if seq < 0 {
		seq = 0
	}
	return models.MatchFuzzy, d, seq
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
