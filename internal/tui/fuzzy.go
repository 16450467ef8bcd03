package tui

import (
	"strings"
	"unicode"
)

// FuzzyMatch reports whether every rune of query appears in target in
// order, ignoring case, and scores the match. Consecutive runs, a match on
// the first rune and matches right after a separator score higher.
func FuzzyMatch(query, target string) (bool, int) {
	q := []rune(strings.ToLower(query))
	if len(q) == 0 {
		return true, 0
	}
	t := []rune(strings.ToLower(target))

	qi, score, run := 0, 0, 0
	for ti := 0; ti < len(t) && qi < len(q); ti++ {
		if t[ti] != q[qi] {
			run = 0
			continue
		}
		qi++
		run++
		score += run
		switch {
		case ti == 0:
			score += 3
		case isSeparator(t[ti-1]):
			score += 2
		}
	}
	return qi == len(q), score
}

func isSeparator(r rune) bool {
	switch r {
	case ':', '/', '-', '_', '.':
		return true
	}
	return unicode.IsSpace(r)
}
