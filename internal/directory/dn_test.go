package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChildDN(t *testing.T) {
	testCases := []struct {
		name     string
		attr     string
		value    string
		parent   string
		expected string
	}{
		{
			name:     "simple cn",
			attr:     "cn",
			value:    "sea-project",
			parent:   "ou=sea,ou=project,dc=sample,dc=com",
			expected: "cn=sea-project,ou=sea,ou=project,dc=sample,dc=com",
		},
		{
			name:     "value with comma is escaped",
			attr:     "cn",
			value:    "sea,project",
			parent:   "dc=sample,dc=com",
			expected: "cn=sea\\,project,dc=sample,dc=com",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ChildDN(tc.attr, tc.value, tc.parent))
		})
	}
}

func TestValidDN(t *testing.T) {
	assert.True(t, ValidDN("ou=project,dc=sample,dc=com"))
	assert.False(t, ValidDN("project sample com"))
}

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "lower case", in: "Sea-Project", expected: "sea-project"},
		{name: "diacritics stripped", in: "Émilie", expected: "emilie"},
		{name: "trimmed", in: "  sea ", expected: "sea"},
		{name: "already normalized", in: "sea", expected: "sea"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.in))
		})
	}
}
