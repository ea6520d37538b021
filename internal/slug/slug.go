// Package slug derives url path segments from titles.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonWord    = regexp.MustCompile(`[^\w\s]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Make lowercases title, folds accents, drops everything that is neither a
// word character nor whitespace and joins the words with hyphens.
func Make(title string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		folded = title
	}

	s := strings.ToLower(folded)
	s = nonWord.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	return whitespace.ReplaceAllString(s, "-")
}

// Fill sets *slug from title when it is blank.
func Fill(slug *string, title string) {
	if strings.TrimSpace(*slug) == "" {
		*slug = Make(title)
	}
}
