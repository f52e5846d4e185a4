package table

import (
	"regexp"
	"strings"
)

// Matcher matches cell text either by regular expression (search
// semantics, not full match) or by literal substring.
type Matcher struct {
	re      *regexp.Regexp
	literal string
}

// NewRegexpMatcher compiles expr into a regex matcher.
func NewRegexpMatcher(expr string) (Matcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Matcher{}, err
	}
	return Matcher{re: re}, nil
}

// NewLiteralMatcher matches text containing s as a substring.
func NewLiteralMatcher(s string) Matcher {
	return Matcher{literal: s}
}

// Matches reports whether text matches.
func (m Matcher) Matches(text string) bool {
	if m.re != nil {
		return m.re.MatchString(text)
	}
	return strings.Contains(text, m.literal)
}

// ReplaceIn substitutes every match inside text with replacement. Regex
// matchers expand $1-style backreferences; literal matchers replace the
// substring verbatim.
func (m Matcher) ReplaceIn(text, replacement string) string {
	if m.re != nil {
		return m.re.ReplaceAllString(text, replacement)
	}
	return strings.ReplaceAll(text, m.literal, replacement)
}

// Expand produces a standalone value from replacement for remapping. For
// regex matchers the first match's groups are expanded into replacement;
// literal matchers yield the replacement verbatim. ok is false when text
// does not match.
func (m Matcher) Expand(text, replacement string) (string, bool) {
	if m.re != nil {
		loc := m.re.FindStringSubmatchIndex(text)
		if loc == nil {
			return "", false
		}
		return string(m.re.ExpandString(nil, replacement, text, loc)), true
	}
	if !strings.Contains(text, m.literal) {
		return "", false
	}
	return replacement, true
}
