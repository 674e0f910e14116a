package utils

import (
	"regexp"
	"strings"
)

// Tokenize splits a raw query on whitespace and drops empty tokens.
func Tokenize(query string) []string {
	return strings.Fields(query)
}

// WordMatcher reports whether text contains any of its tokens starting at a
// word boundary, ignoring case. Tokens are matched literally.
type WordMatcher struct {
	re *regexp.Regexp
}

// NewWordMatcher returns nil when tokens is empty; a nil matcher matches nothing.
func NewWordMatcher(tokens []string) *WordMatcher {
	quoted := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token = strings.TrimSpace(token); token != "" {
			quoted = append(quoted, regexp.QuoteMeta(token))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	return &WordMatcher{re: regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)`)}
}

// MatchAny reports whether at least one of fields matches.
func (m *WordMatcher) MatchAny(fields ...string) bool {
	if m == nil {
		return false
	}
	for _, field := range fields {
		if m.re.MatchString(field) {
			return true
		}
	}
	return false
}

// LikeEscapeChar is the ESCAPE character used with LikeContains patterns.
const LikeEscapeChar = "!"

// LikeContains builds a lower-cased LIKE pattern matching token anywhere,
// with the LIKE wildcards in token escaped.
func LikeContains(token string) string {
	escaped := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(strings.ToLower(token))
	return "%" + escaped + "%"
}
