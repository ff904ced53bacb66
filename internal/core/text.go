package core

import (
	"strings"
	"unicode"

	"github.com/phrazzld/addok/internal/component"
	"github.com/phrazzld/addok/internal/config"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CheckQueryLength truncates queries longer than QUERY_MAX_LENGTH runes.
// A non-positive limit disables the check.
func CheckQueryLength(cfg *config.Config) component.QueryProcessor {
	return func(query string) string {
		limit := cfg.QueryMaxLength
		if limit <= 0 {
			return query
		}
		r := []rune(query)
		if len(r) <= limit {
			return query
		}
		return string(r[:limit])
	}
}

// CleanQuery replaces separators with spaces and collapses whitespace.
func CleanQuery(query string) string {
	query = strings.Map(func(r rune) rune {
		switch r {
		case ',', ';', '|', ' ':
			return ' '
		}
		return r
	}, query)
	return strings.Join(strings.Fields(query), " ")
}

// Tokenize splits every token on anything that is not a letter or a digit.
func Tokenize(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, strings.FieldsFunc(t, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})...)
	}
	return out
}

// Normalize lower-cases tokens and strips their diacritics.
func Normalize(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if n := fold(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
