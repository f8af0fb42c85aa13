package attendance

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips combining marks so that "Héloïse" and "Heloise"
// compare equal.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldName lowercases and removes diacritics from a name for comparison.
func foldName(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// SortByName orders a merged list alphabetically by last then first name.
// The sort is stable and case- and accent-insensitive.
func SortByName(list []*Resolved) {
	sort.SliceStable(list, func(i, j int) bool {
		li, lj := foldName(list[i].LastName), foldName(list[j].LastName)
		if li != lj {
			return li < lj
		}
		return foldName(list[i].FirstName) < foldName(list[j].FirstName)
	})
}

// MatchesQuery reports whether a resolved entry matches a free-text
// search, using the same folding as the sort so accents never hide a row.
func MatchesQuery(entry *Resolved, query string) bool {
	q := foldName(query)
	if q == "" {
		return true
	}
	return strings.Contains(foldName(entry.FirstName), q) ||
		strings.Contains(foldName(entry.LastName), q) ||
		strings.Contains(foldName(entry.FirstName+" "+entry.LastName), q)
}
