package validators

import "strings"

// SanitizeString trims surrounding whitespace, drops control characters and
// caps the result at maxLen runes. Phone numbers and login codes arrive from
// mobile clients that occasionally paste invisible characters along.
func SanitizeString(input string, maxLen int) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, strings.TrimSpace(input))

	if maxLen <= 0 {
		return cleaned
	}
	runes := []rune(cleaned)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return cleaned
}
