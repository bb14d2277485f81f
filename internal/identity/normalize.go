package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining marks after NFD decomposition.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeName prepares a name attribute for login derivation:
// diacritics are stripped, any rune outside [0-9A-Za-z_] becomes a
// space, space runs collapse to one, and the result is trimmed and
// lower cased.
func normalizeName(value string) string {
	stripped, _, err := transform.String(stripMarks, value)
	if err != nil {
		stripped = value
	}

	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return r
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r == '_':
			return r
		default:
			return ' '
		}
	}, stripped)

	return strings.ToLower(strings.Join(strings.Fields(mapped), " "))
}
