// Copyright (c) 2026 Kasane. All rights reserved.

package natsort_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kasanehq/kasane/pkg/natsort"
)

/*
TestCompare verifies the pairwise ordering rules.
*/
func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"numeric_before_lexical", "2.png", "10.png", -1},
		{"equal", "5.png", "5.png", 0},
		{"plain_lexical", "cover.jpg", "extra.jpg", -1},
		{"prefix_first", "1", "1a", -1},
		{"padded_equal_value", "2", "02", -1},
		{"padded_vs_larger", "02", "3", -1},
		{"case_insensitive", "Page-1.png", "page-2.png", -1},
		{"multi_segment", "ch1-p10", "ch1-p9", 1},
		{"long_digit_runs", "99999999999999999998", "99999999999999999999", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := natsort.Compare(tt.a, tt.b)
			assert.Equal(t, tt.want, got)

			// Antisymmetry: swapping operands flips the sign.
			assert.Equal(t, -tt.want, natsort.Compare(tt.b, tt.a))
		})
	}
}

/*
TestSort verifies full-slice ordering, including the canonical page-name case.
*/
func TestSort(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "page_filenames",
			input: []string{"2.png", "10.png", "1.png"},
			want:  []string{"1.png", "2.png", "10.png"},
		},
		{
			name:  "mixed_padding",
			input: []string{"010.jpg", "2.jpg", "001.jpg", "10.jpg"},
			want:  []string{"001.jpg", "2.jpg", "10.jpg", "010.jpg"},
		},
		{
			name:  "prefixed_pages",
			input: []string{"page-11.webp", "page-2.webp", "page-1.webp"},
			want:  []string{"page-1.webp", "page-2.webp", "page-11.webp"},
		},
		{
			name:  "empty",
			input: []string{},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			natsort.Sort(tt.input)
			assert.Equal(t, tt.want, tt.input)
		})
	}
}

/*
TestLess is a thin sanity check over the Compare wrapper.
*/
func TestLess(t *testing.T) {
	assert.True(t, natsort.Less("2.png", "10.png"))
	assert.False(t, natsort.Less("10.png", "2.png"))
	assert.False(t, natsort.Less("5.png", "5.png"))
}
