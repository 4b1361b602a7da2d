package scanner

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Leading articles and prepositions ignored when sorting titles, tried in
// priority order: the first matching prefix wins.
var ignoredSortPrefixes = []string{
	"à ",
	"les ",
	"le ",
	"la ",
	"l'",
	"l’",
	"de ",
	"du ",
	"d'",
	"the ",
	"an ",
	"a ",
}

// SearchTitle strips one recognized leading article (case-insensitive) from
// the title and trims the remainder. A title with no such prefix is returned
// trimmed and unchanged.
func SearchTitle(title string) string {
	lower := strings.ToLower(title)
	for _, prefix := range ignoredSortPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return strings.TrimSpace(title[len(prefix):])
		}
	}
	return strings.TrimSpace(title)
}

var diacriticsFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldDiacritics strips combining marks so accented titles sort and shelve
// with their plain-ASCII neighbors ("Élysée" folds to "Elysee").
func FoldDiacritics(s string) string {
	folded, _, err := transform.String(diacriticsFolder, s)
	if err != nil {
		return s
	}
	return folded
}
