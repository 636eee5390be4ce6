// Copyright (c) 2026 Kasane. All rights reserved.

package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveChapterNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		number float64
		ok     bool
	}{
		{"plain", "Chapter 7", 7, true},
		{"fractional", "Chapter 2.5", 2.5, true},
		{"leading_zeros", "Chapter 007", 7, true},
		{"first_token_wins", "Vol2 Ch13", 2, true},
		{"number_with_suffix", "12 - The Duel", 12, true},
		{"no_digits", "Extras", 0, false},
		{"empty", "", 0, false},
		{"unicode_name", "第3話", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			number, ok := deriveChapterNumber(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.number, number)
			}
		})
	}
}
