package directory

import (
	"strings"
	"unicode"

	"github.com/go-ldap/ldap/v3"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ChildDN builds the DN of an entry below the given parent, such as
// "cn=<value>,<parent>". The value is escaped per RFC 4514.
func ChildDN(attr, value, parent string) string {
	return attr + "=" + ldap.EscapeDN(value) + "," + parent
}

// ValidDN reports whether the string parses as a distinguished name.
func ValidDN(dn string) bool {
	_, err := ldap.ParseDN(dn)
	return err == nil
}

// stripMarks removes combining marks after NFD decomposition.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize maps a container or user name to its directory identifier:
// diacritics are stripped, the result is lower cased and trimmed.
func Normalize(value string) string {
	stripped, _, err := transform.String(stripMarks, value)
	if err != nil {
		stripped = value
	}

	return strings.TrimSpace(strings.ToLower(stripped))
}
