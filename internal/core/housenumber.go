package core

import (
	"strings"
	"unicode"
)

var housenumberSuffixes = map[string]bool{
	"bis":    true,
	"ter":    true,
	"quater": true,
}

// NormalizeHousenumber lower-cases tokens and joins a number with the
// suffix that follows it, so "12 B" and "12b" index the same way.
func NormalizeHousenumber(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		t := strings.ToLower(tokens[i])
		if isNumber(t) && i+1 < len(tokens) {
			next := strings.ToLower(tokens[i+1])
			if housenumberSuffixes[next] || (len([]rune(next)) == 1 && unicode.IsLetter([]rune(next)[0])) {
				out = append(out, t+next)
				i++
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
