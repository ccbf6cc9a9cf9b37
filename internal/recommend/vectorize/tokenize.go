// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package vectorize

import (
	"strings"
	"unicode"
)

// minTokenLen is the shortest token kept, in runes.
const minTokenLen = 2

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// Tokenize lowercases doc and splits it into runs of word characters,
// dropping runs shorter than two runes. "rating_8.1" yields "rating_8";
// "Sci-Fi" yields "sci" and "fi".
func Tokenize(doc string) []string {
	lower := strings.ToLower(doc)
	tokens := make([]string, 0, 16)

	start := -1
	runes := 0
	for i, r := range lower {
		if isWordRune(r) {
			if start < 0 {
				start = i
				runes = 0
			}
			runes++
			continue
		}
		if start >= 0 && runes >= minTokenLen {
			tokens = append(tokens, lower[start:i])
		}
		start = -1
	}
	if start >= 0 && runes >= minTokenLen {
		tokens = append(tokens, lower[start:])
	}
	return tokens
}
