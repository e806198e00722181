// Package util holds small helpers shared by the HTTP and use case layers.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRuns   = regexp.MustCompile(`-{2,}`)
)

// Slugify lowercases s, strips accents and collapses everything that is not
// a letter or digit into single hyphens.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.ToLower(strings.TrimSpace(out))
	out = strings.Join(strings.Fields(out), "-")
	out = nonSlugChars.ReplaceAllString(out, "-")
	out = hyphenRuns.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}
