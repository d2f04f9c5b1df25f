package catalog

import (
	"sort"
	"strings"
)

// UsageSource reports the launch history consulted for ranking.
type UsageSource interface {
	UsageCount(name string) int
	IsFavorite(name string) bool
}

// Rank returns the entries ordered for display: favorites first,
// then most-launched first when recentFirst is set, then by
// case-insensitive name with the raw name as the final tiebreak.
// The input slice is left untouched.
func Rank(entries []Entry, usage UsageSource, recentFirst bool) []Entry {
	ranked := make([]Entry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		fa, fb := usage.IsFavorite(a.Name), usage.IsFavorite(b.Name)
		if fa != fb {
			return fa
		}
		if recentFirst {
			if ca, cb := usage.UsageCount(a.Name), usage.UsageCount(b.Name); ca != cb {
				return ca > cb
			}
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
	return ranked
}
