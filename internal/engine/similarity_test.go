package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, nameSimilarity("irvy", "irvy"))
	assert.Equal(t, 0.0, nameSimilarity("", "irvy"))
	assert.Equal(t, 0.0, nameSimilarity("irvy", ""))

	// Ratcliff/Obershelp: 2*4 matching characters over 10 total.
	assert.InDelta(t, 0.8, nameSimilarity("abcdef", "abcd"), 1e-9)

	// One extra character drops below the high-confidence threshold.
	assert.Less(t, nameSimilarity("abcdefg", "abcd"), 0.8)

	// Matching runs on both sides of the longest common substring count:
	// "l" + "uise" give 2*5 over 11.
	assert.InDelta(t, 10.0/11.0, nameSimilarity("louise", "luise"), 1e-9)
	assert.InDelta(t, 0.8, nameSimilarity("abxcd", "abycd"), 1e-9)
}

func TestTokenOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{
			name: "identical subjects",
			a:    "Check-in Louise x Irvy",
			b:    "Check-in Louise x Irvy",
			want: 1.0,
		},
		{
			name: "stamped filename shares subject tokens",
			a:    "20251204_220053_Check-in Louise x Irvy",
			b:    "Check-in Louise x Irvy",
			want: 1.0,
		},
		{
			name: "disjoint",
			a:    "Catch up with Jep",
			b:    "Budget review",
			want: 0.0,
		},
		{
			name: "empty",
			a:    "",
			b:    "Check-in",
			want: 0.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tokenOverlap(tt.a, tt.b), 1e-9)
		})
	}
}
