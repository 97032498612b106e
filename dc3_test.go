package autocomplete

import (
	"math/rand"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

// genSymbols produces a random stream over [1, sigma], keeping 0 for
// sentinels so that test streams mirror real ones.
func genSymbols(size int, sigma int32) []int32 {
	input := make([]int32, size)
	for i := range input {
		input[i] = rand.Int31n(sigma) + 1
	}
	return input
}

// makeSA is the brute-force oracle: sort all suffix positions by direct
// suffix comparison.
func makeSA(text []int32) []int32 {
	sa := make([]int32, len(text))
	for i := range text {
		sa[i] = int32(i)
	}
	sort.Slice(sa, func(i, j int) bool {
		return slices.Compare(text[sa[i]:], text[sa[j]:]) < 0
	})
	return sa
}

// runSkew pads the stream and derives sigma the way build does.
func runSkew(text []int32) []int32 {
	padded := make([]int32, len(text)+3)
	copy(padded, text)
	var sigma int32
	for _, s := range text {
		if s > sigma {
			sigma = s
		}
	}
	return suffixArray(padded, len(text), sigma)
}

func TestSuffixArray(t *testing.T) {
	tests := map[string]struct {
		input []int32
	}{
		"empty stream": {
			input: []int32{},
		},
		"single symbol": {
			input: []int32{100},
		},
		"two symbols ascending": {
			input: []int32{1, 2},
		},
		"two symbols descending": {
			input: []int32{2, 1},
		},
		"same symbols": {
			input: []int32("aaaaaaaaaaaaaaaaaaaaa"),
		},
		"banana": {
			input: []int32("banana"),
		},
		"abracadabra": {
			input: []int32("abracadabra"),
		},
		"ACGTGCCTAGCCTACCGTGCC": {
			input: []int32("ACGTGCCTAGCCTACCGTGCC"),
		},
		"repeated pattern": {
			input: []int32{1, 2, 1, 2, 1, 2, 1, 2},
		},
		"reverse sorted": {
			input: []int32{5, 4, 3, 2, 1},
		},
		"alternating pattern": {
			input: []int32{3, 1, 3, 1, 3, 1},
		},
		"leading zeros": {
			input: []int32{0, 0, 0, 1, 1, 1},
		},
		"sentinel separated": {
			input: []int32{3, 1, 4, 3, 0, 2, 4, 1, 2, 0},
		},
		"min max edges": {
			input: []int32{0, 255},
		},
		"long same run": {
			input: genSymbols(1000, 1),
		},
		"long binary": {
			input: genSymbols(1000, 2),
		},
		"long random 8 bit": {
			input: genSymbols(1000, 255),
		},
		"long random small alphabet": {
			input: genSymbols(2000, 4),
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, makeSA(tc.input), runSkew(tc.input))
		})
	}
}

// TestSuffixArrayPermutation pins the permutation invariant on streams
// shaped like real builds: texts joined by sentinels, one trailing zero.
func TestSuffixArrayPermutation(t *testing.T) {
	for _, size := range []int{1, 2, 3, 10, 100, 1500} {
		input := genSymbols(size, 6)
		for i := 50; i < size; i += 50 {
			input[i] = 0
		}
		input[size-1] = 0

		sa := runSkew(input)
		seen := make([]bool, size)
		for _, p := range sa {
			assert.False(t, seen[p])
			seen[p] = true
		}
		assert.Equal(t, makeSA(input), sa)
	}
}

func TestRadixPassStability(t *testing.T) {
	keys := []int32{2, 1, 2, 1, 0, 2}
	src := []int32{0, 1, 2, 3, 4, 5}
	dst := make([]int32, len(src))
	radixPass(src, dst, keys, 2)
	// Equal keys keep their source order.
	assert.Equal(t, []int32{4, 1, 3, 0, 2, 5}, dst)
}

func BenchmarkSuffixArray(b *testing.B) {
	tests := []struct {
		name  string
		input []int32
	}{
		{"empty", []int32{}},
		{"single", []int32{100}},
		{"all same", []int32{5, 5, 5, 5, 5, 5}},
		{"repeated pattern", []int32{1, 2, 1, 2, 1, 2, 1, 2}},
		{"ACGTGCCTAGCCTACCGTGCC", []int32("ACGTGCCTAGCCTACCGTGCC")},
		{"long random 8 bit", genSymbols(10000, 255)},
		{"long binary", genSymbols(10000, 2)},
	}

	for _, tt := range tests {
		padded := make([]int32, len(tt.input)+3)
		copy(padded, tt.input)
		var sigma int32
		for _, s := range tt.input {
			if s > sigma {
				sigma = s
			}
		}
		b.Run(tt.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				suffixArray(padded, len(tt.input), sigma)
			}
		})
	}
}
