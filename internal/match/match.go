// Package match provides the subsequence test shared by every
// filtering path in the launcher.
package match

// Subsequence reports whether all runes of query occur in target in
// the same order, not necessarily contiguously. An empty query
// matches any target. Case folding is the caller's responsibility.
func Subsequence(query, target string) bool {
	if query == "" {
		return true
	}
	want := []rune(query)
	i := 0
	for _, r := range target {
		if r != want[i] {
			continue
		}
		i++
		if i == len(want) {
			return true
		}
	}
	return false
}
