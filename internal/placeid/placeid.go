// Package placeid provides a deterministic place ID from a canonical name.
package placeid

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/worldjourney/platoo/internal/normalize"
)

const prefix = "place:"

// PlaceID returns a stable ID for a place. The same canonical name and
// province always yield the same ID, so re-seeding the store is idempotent.
func PlaceID(name, province string) string {
	key := normalize.Key(name) + "|" + normalize.Key(province)
	hash := sha256.Sum256([]byte(key))
	return prefix + hex.EncodeToString(hash[:12])
}
