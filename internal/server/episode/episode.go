// Package episode holds the label handling shared by progress reporting and
// resume matching. Catalog sources are sloppy about episode names: the same
// episode arrives as "12", "12." or " 12 ", and sometimes as "Episode 12".
package episode

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes a raw episode label for use as part of the
// progress-record key: surrounding whitespace is trimmed and one trailing
// "." is stripped. An empty result means the content has no episodes
// (a standalone movie) and is represented as nil.
func Normalize(raw string) *string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, ".")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Number extracts the numeric core of a label: the integer formed by all
// digit runs in order, so "Episode 12." and "12" both yield 12. The second
// return value reports whether the label contained any digits at all.
func Number(label string) (int, bool) {
	n := 0
	found := false
	for _, r := range label {
		if unicode.IsDigit(r) {
			n = n*10 + int(r-'0')
			found = true
		}
	}
	return n, found
}

// Match reports whether two labels refer to the same episode: either their
// normalized forms are equal, or both have a numeric core and the cores
// match.
func Match(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == nil || nb == nil {
		return na == nil && nb == nil
	}
	if *na == *nb {
		return true
	}
	numA, okA := Number(*na)
	numB, okB := Number(*nb)
	return okA && okB && numA == numB
}
