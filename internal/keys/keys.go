package keys

import (
	"strings"
)

// NormalizeName produces the canonical form of a template name: trimmed,
// lower-cased, inner spaces collapsed to underscores. Lookups and
// singleflight dedupe both key on it so "Giant Rat" and " giant rat "
// share one cache entry.
func NormalizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(s), "_")
}
