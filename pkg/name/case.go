package name

import (
	"strings"
	"unicode"
)

// ToSnakeCase converts s into lower-case words joined by underscores.
func ToSnakeCase(s string) string {
	return strings.Join(words(s), "_")
}

// ToKebabCase converts s into lower-case words joined by hyphens.
func ToKebabCase(s string) string {
	return strings.Join(words(s), "-")
}

// words splits s into lower-cased words. Any rune that is neither a letter
// nor a digit separates words. Inside a run of letters and digits, a new word
// starts at a lower/digit -> upper transition, and before the last upper-case
// letter of an upper-case run that is followed by a lower-case letter (so
// "HTTPServer" becomes "http", "server").
func words(s string) []string {
	runes := []rune(s)
	ret := make([]string, 0, 4)

	var current []rune
	flush := func() {
		if len(current) != 0 {
			ret = append(ret, string(current))
			current = current[:0]
		}
	}

	for i, r := range runes {
		if !isWordRune(r) {
			flush()
			continue
		}

		if len(current) != 0 && isUpper(r) {
			prev := runes[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				flush()
			} else if isUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				flush()
			}
		}

		current = append(current, unicode.ToLower(r))
	}
	flush()

	return ret
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isUpper only reports letters that actually have a lower-case mapping, so
// that the output of words never contains a rune that would start a new word
// on a second pass.
func isUpper(r rune) bool {
	return unicode.IsUpper(r) && unicode.ToLower(r) != r
}
