package genre

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify reduces genre text to a lowercase ASCII slug used as an alias key.
//
//	"Science Fiction" -> "science-fiction"
//	"Sci-Fi / Fantasy" -> "sci-fi-fantasy"
//	"Comédie" -> "comedie"
func Slugify(s string) string {
	s = norm.NFKD.String(s)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
	s = slugSeparators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
