// Copyright (c) 2026 Kasane. All rights reserved.

package ingest

import (
	"regexp"
	"strconv"
)

// numberPattern matches the first numeric token in a directory name,
// integer or decimal ("7", "2.5", "012").
var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// deriveChapterNumber extracts the chapter number from a directory name.
//
// The first numeric token wins: "Chapter 2.5 - The Duel" yields 2.5,
// "Vol2 Ch13" yields 2. Names without any digits report ok=false.
func deriveChapterNumber(name string) (number float64, ok bool) {
	token := numberPattern.FindString(name)
	if token == "" {
		return 0, false
	}

	number, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}

	return number, true
}
