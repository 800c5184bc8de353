package validators

import "strings"

// SanitizeString trims whitespace, drops invalid UTF-8 and truncates to maxLen
// characters when maxLen > 0. Truncation never splits a rune.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(strings.ToValidUTF8(input, ""))
	if maxLen <= 0 {
		return trimmed
	}
	count := 0
	for i := range trimmed {
		if count == maxLen {
			return strings.TrimSpace(trimmed[:i])
		}
		count++
	}
	return trimmed
}
