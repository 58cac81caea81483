// Package slugify derives URL slugs from bilingual names. Vietnamese
// diacritics are folded to ASCII so "Sợi Viscose" becomes "soi-viscose".
package slugify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Make folds, lowercases, and hyphenates a name into a slug.
func Make(name string) string {
	s := text.Fold(name)
	s = strings.ToLower(s)
	s = nonSlug.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// WithSuffix returns the slug produced by taken(base) == false, trying base,
// base-1, base-2, ... Callers pass a taken func backed by their collection.
func WithSuffix(base string, taken func(slug string) bool) string {
	if !taken(base) {
		return base
	}
	for i := 1; ; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		if !taken(candidate) {
			return candidate
		}
	}
}
