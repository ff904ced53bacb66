// Package redact masks credentials in strings and setting values before they
// are logged or printed by the config command.
package redact

import (
	"net/url"
	"regexp"
	"strings"
)

// Placeholders used in redacted output.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

var (
	// Connection strings with user info
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|redis|mysql|mongodb|db|database|connection)://[^@/\s]+@`)

	// Credentials and tokens
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)
	apiKeyRegex   = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|access|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	patterns = []struct {
		re          *regexp.Regexp
		placeholder string
	}{
		{dbConnRegex, RedactedCredentialPlaceholder},
		{passwordRegex, RedactedCredentialPlaceholder},
		{apiKeyRegex, RedactedKeyPlaceholder},
		{jwtTokenRegex, "[REDACTED_JWT]"},
	}

	sensitiveNames = []string{"PASSWORD", "SECRET", "TOKEN", "CREDENTIAL", "API_KEY"}
)

// String masks credentials found in input.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, p := range patterns {
		result = p.re.ReplaceAllString(result, p.placeholder)
	}
	return result
}

// Error masks credentials in an error's message.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// URL masks the password of a connection URL and keeps the rest readable.
// Inputs that do not parse as URLs go through String.
func URL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return String(raw)
	}
	if _, hasPassword := u.User.Password(); !hasPassword {
		return raw
	}
	return u.Redacted()
}

// Setting masks a setting value for display. Values of settings whose name
// suggests a secret are replaced entirely; other strings, including those
// nested in lists and mappings, go through String.
func Setting(name string, value any) any {
	upper := strings.ToUpper(name)
	for _, s := range sensitiveNames {
		if strings.Contains(upper, s) && value != nil {
			return RedactionPlaceholder
		}
	}
	return redactValue(value)
}

func redactValue(value any) any {
	switch v := value.(type) {
	case string:
		if strings.Contains(v, "://") {
			return URL(v)
		}
		return String(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = redactValue(item)
		}
		return out
	case []string:
		out := make([]string, len(v))
		for i, item := range v {
			out[i] = redactValue(item).(string)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = Setting(k, item)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(v))
		for i, item := range v {
			out[i] = redactValue(item).(map[string]any)
		}
		return out
	}
	return value
}
