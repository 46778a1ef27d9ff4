package multimodal

import (
	"fmt"
	"strings"
	"unicode"
)

// stringClusters induces one anchored character-class pattern per
// value, squares the pattern frequencies, and keeps the patterns whose
// normalized weight reaches the elbow threshold. When every pattern is
// equally frequent all of them are kept.
func stringClusters(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		pattern := generateRegex(v)
		if _, seen := counts[pattern]; !seen {
			order = append(order, pattern)
		}
		counts[pattern]++
	}

	wmin, wmax := -1, -1
	weights := make(map[string]int, len(counts))
	for pattern, n := range counts {
		w := n * n
		weights[pattern] = w
		if wmin < 0 || w < wmin {
			wmin = w
		}
		if w > wmax {
			wmax = w
		}
	}

	if wmin == wmax {
		return order
	}

	var kept []string
	for _, pattern := range order {
		normalized := float64(weights[pattern]-wmin) / float64(wmax-wmin)
		if normalized >= normalizedMin {
			kept = append(kept, pattern)
		}
	}
	return kept
}

// generateRegex collapses a string into an anchored sequence of
// character classes with run lengths: "Ab12" -> ^[A-Z]{1}[a-z]{1}\d{2}$.
// Whitespace runs collapse to a single \s without a length.
func generateRegex(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) == 0 {
		return "^$"
	}

	var pattern strings.Builder
	pattern.WriteByte('^')

	runes := []rune(s)
	prevClass := characterClass(runes[0])
	count := 0
	flush := func() {
		pattern.WriteString(prevClass)
		if prevClass != `\s` {
			fmt.Fprintf(&pattern, "{%d}", count)
		}
	}
	for _, r := range runes {
		class := characterClass(r)
		if class == prevClass {
			count++
			continue
		}
		flush()
		prevClass = class
		count = 1
	}
	flush()

	pattern.WriteByte('$')
	return pattern.String()
}

func characterClass(r rune) string {
	switch {
	case unicode.IsLetter(r):
		if unicode.IsLower(r) {
			return "[a-z]"
		}
		return "[A-Z]"
	case unicode.IsDigit(r):
		return `\d`
	case unicode.IsSpace(r):
		return `\s`
	case r == '.' || r == '?' || r == '!':
		return `[.?!]`
	default:
		return `[^A-Za-z0-9.?! ]`
	}
}
