package group

import (
	"strings"
	"unicode/utf8"
)

// labelSuffix is stripped from legend labels before deriving an identifier.
const labelSuffix = " code elements"

// Identifier derives the programmatic name for a legend label.
//
// The transform is applied once, in this order:
//  1. remove a trailing " code elements";
//  2. uppercase the first word character that directly follows a space;
//  3. remove the first non-word character.
//
// Word characters are ASCII letters, digits and underscore. Only one
// non-word character is removed, so labels with more than two words keep
// their later spaces and produce names the emitter will reject.
//
//	Identifier("Officially assigned code elements") // "OfficiallyAssigned"
func Identifier(label string) string {
	s := strings.TrimSuffix(label, labelSuffix)
	s = upperAfterSpace(s)
	return removeFirstNonWord(s)
}

// upperAfterSpace uppercases the first word byte preceded by a space.
func upperAfterSpace(s string) string {
	for i := 1; i < len(s); i++ {
		if s[i-1] == ' ' && isWord(s[i]) {
			return s[:i] + strings.ToUpper(s[i:i+1]) + s[i+1:]
		}
	}
	return s
}

// removeFirstNonWord drops the first character that is not a word byte.
// A multi-byte rune counts as one non-word character.
func removeFirstNonWord(s string) string {
	for i := 0; i < len(s); {
		if isWord(s[i]) {
			i++
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		return s[:i] + s[i+size:]
	}
	return s
}

// isWord reports whether b is in [A-Za-z0-9_].
func isWord(b byte) bool {
	return b == '_' ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}
