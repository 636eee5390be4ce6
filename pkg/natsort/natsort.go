// Copyright (c) 2026 Kasane. All rights reserved.

/*
Package natsort implements natural (numeric-aware) string ordering.

Plain lexical ordering puts "10.png" before "2.png" because '1' < '2'.
Natural ordering treats embedded digit runs as numbers, so page filenames
sort the way humans (and comic readers) expect: 1.png, 2.png, 10.png.

The comparison is case-insensitive for ASCII letters and has no allocation
on the hot path, making it safe to use inside sort loops over large archives.
*/
package natsort

import "slices"

// Compare returns -1, 0, or +1 comparing a and b in natural order.
//
// # Rules
//
//   - Digit runs are compared by numeric value, not character by character.
//   - Numeric ties (e.g. "2" vs "02") are broken by the shorter run first.
//   - Non-digit characters are compared case-insensitively (ASCII).
//   - A string that is a prefix of another sorts first.
func Compare(a, b string) int {
	i, j := 0, 0

	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			// Consume both digit runs.
			startA := i
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			startB := j
			for j < len(b) && isDigit(b[j]) {
				j++
			}

			if c := compareDigitRuns(a[startA:i], b[startB:j]); c != 0 {
				return c
			}
			continue
		}

		charA := lower(a[i])
		charB := lower(b[j])
		if charA != charB {
			if charA < charB {
				return -1
			}
			return 1
		}
		i++
		j++
	}

	// The shorter string (exhausted first) sorts first.
	switch {
	case len(a)-i < len(b)-j:
		return -1
	case len(a)-i > len(b)-j:
		return 1
	default:
		return 0
	}
}

// Less reports whether a sorts before b in natural order.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Sort sorts the slice in place in natural order. The sort is stable.
func Sort(values []string) {
	slices.SortStableFunc(values, Compare)
}

// compareDigitRuns compares two runs of ASCII digits by numeric value.
//
// Leading zeros are skipped before comparison, so arbitrarily long runs are
// handled without integer conversion (no overflow on pathological names).
func compareDigitRuns(a, b string) int {
	ta := trimLeadingZeros(a)
	tb := trimLeadingZeros(b)

	// More significant digits wins.
	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}

	// Same magnitude: lexical comparison equals numeric comparison.
	for k := 0; k < len(ta); k++ {
		if ta[k] != tb[k] {
			if ta[k] < tb[k] {
				return -1
			}
			return 1
		}
	}

	// Numerically equal: fewer leading zeros first ("2" before "02").
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// trimLeadingZeros strips leading '0' bytes, keeping at least one digit.
func trimLeadingZeros(s string) string {
	k := 0
	for k < len(s)-1 && s[k] == '0' {
		k++
	}
	return s[k:]
}

// isDigit reports whether c is an ASCII digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// lower folds an ASCII upper-case byte to lower case.
func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
