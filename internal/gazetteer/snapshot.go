// Package gazetteer holds the immutable catalog of known entities used as the
// correction and match target.
package gazetteer

import (
	"go.uber.org/zap"

	"github.com/worldjourney/platoo/internal/models"
	"github.com/worldjourney/platoo/internal/normalize"
)

// Alias is one normalized alias key pointing back at its entry.
type Alias struct {
	// Key is the normalized comparison form; matching never touches Raw.
	Key   string
	Raw   string
	Entry *models.GazetteerEntry
}

// Snapshot is an immutable view of the gazetteer. It is built once and read
// concurrently without locking; reload swaps in a whole new Snapshot.
type Snapshot struct {
	entries []*models.GazetteerEntry
	aliases []Alias
	byKey   map[string]*models.GazetteerEntry
	maxPop  float64
}

// NewSnapshot builds a snapshot from entries. Malformed entries are skipped
// with a warning rather than aborting; the canonical name is always indexed
// as an alias even when the entry lists none.
func NewSnapshot(entries []*models.GazetteerEntry, logger *zap.Logger) *Snapshot {
	s := &Snapshot{
		byKey: make(map[string]*models.GazetteerEntry),
	}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			if logger != nil {
				logger.Warn("skipping malformed gazetteer entry", zap.Error(err))
			}
			continue
		}
		s.entries = append(s.entries, e)
		if e.Popularity > s.maxPop {
			s.maxPop = e.Popularity
		}
		seen := make(map[string]struct{})
		for _, raw := range append([]string{e.Name}, e.Aliases...) {
			key := normalize.Key(raw)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			s.aliases = append(s.aliases, Alias{Key: key, Raw: raw, Entry: e})
			if _, taken := s.byKey[key]; !taken {
				s.byKey[key] = e
			}
		}
	}
	return s
}

// Entries returns all valid entries in load order.
func (s *Snapshot) Entries() []*models.GazetteerEntry {
	return s.entries
}

// Aliases returns every normalized alias across all entries.
func (s *Snapshot) Aliases() []Alias {
	return s.aliases
}

// LookupKey returns the entry whose alias key equals key exactly, if any.
func (s *Snapshot) LookupKey(key string) (*models.GazetteerEntry, bool) {
	e, ok := s.byKey[key]
	return e, ok
}

// Len returns the number of entries.
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// MaxPopularity returns the highest popularity score in the snapshot, used to
// scale popularity into the [0,1] ranking space.
func (s *Snapshot) MaxPopularity() float64 {
	return s.maxPop
}
