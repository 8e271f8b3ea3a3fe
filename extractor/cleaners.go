package extractor

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CleanFunc is one step of a string cleanup pipeline.
type CleanFunc func(string) string

// CleanString applies cleanFuncs to str in order.
func CleanString(str string, cleanFuncs ...CleanFunc) string {
	cleaned := str
	for _, clean := range cleanFuncs {
		cleaned = clean(cleaned)
	}
	return cleaned
}

// RemovePrefix drops a literal leading label such as "Title:".
func RemovePrefix(prefix string) CleanFunc {
	return func(str string) string {
		return strings.TrimPrefix(str, prefix)
	}
}

// CollapseSpaces trims s and folds every whitespace run into one space.
func CollapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsSpace(r) {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// FirstYear returns the first run of four digits in s, or "".
func FirstYear(s string) string {
	return yearPattern.FindString(s)
}

// doiPattern is deliberately loose; it is bounded by whitespace only.
var doiPattern = regexp.MustCompile(`10\.\d{4,}[^\s]*`)

// FindDOI extracts the first DOI-looking substring of s.
func FindDOI(s string) string {
	return strings.TrimRight(doiPattern.FindString(s), ".,;:)")
}

var doiPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"doi:",
}

// NormalizeDOI strips resolver URLs and "doi:" labels down to the bare DOI.
func NormalizeDOI(s string) string {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	for _, p := range doiPrefixes {
		if strings.HasPrefix(lower, p) {
			return strings.TrimSpace(s[len(p):])
		}
	}
	return s
}

// TruncateAbstract caps s at MaxAbstractLen characters, ending in "...".
func TruncateAbstract(s string) string {
	if utf8.RuneCountInString(s) <= MaxAbstractLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxAbstractLen-len(ellipsis)]) + ellipsis
}

// JoinAuthors joins names the way every profile reports them.
func JoinAuthors(names []string) string {
	return strings.Join(names, ", ")
}
