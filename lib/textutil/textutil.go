package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases name and removes all whitespace.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// MatchName reports whether the normalized name contains any of matchers.
func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// NormalizeLabel case folds label and collapses its whitespace, zero width
// spaces included, into single spaces.
func NormalizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\u200b", " ")
	label = whitespaceRegex.ReplaceAllString(label, " ")
	return cases.Fold().String(strings.TrimSpace(label))
}

var (
	horizontalRun    = regexp.MustCompile(`[ \t\x{00a0}\x{200b}]+`)
	trailingSpace    = regexp.MustCompile(` +\n`)
	excessBlankLines = regexp.MustCompile(`\n{3,}`)
)

// SanitizeWhitespace collapses runs of horizontal whitespace, removes spaces
// before line breaks and squashes three or more line breaks into a single
// blank line.
func SanitizeWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = horizontalRun.ReplaceAllString(text, " ")
	text = trailingSpace.ReplaceAllString(text, "\n")
	text = excessBlankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

var punctuationOnly = regexp.MustCompile(`^[\s\-\x{2013}\x{2014}/\\|,.:;·•*~_]*$`)

// IsPunctuation reports whether text has nothing but separators, dashes,
// slashes and whitespace in it.
func IsPunctuation(text string) bool {
	return punctuationOnly.MatchString(text)
}
