// Copyright (c) 2025 Artem Lavrov
// Licensed under the MIT License. See LICENSE file in the project root for details.
package autocomplete

import (
	"slices"
	"sort"
	"unicode"
	"unicode/utf8"
)

// sentinel terminates each entry's text inside the concatenated stream.
// It is strictly smaller than every real symbol and never occurs in a
// query, so suffixes that cross it can never extend a match.
const sentinel int32 = 0

// alphabet maps lowercased code points to dense symbol ranks. Ranks
// follow code-point order, so the suffix order over symbols agrees with
// the order over the lowercased text itself. Rank 0 is the sentinel.
type alphabet map[rune]int32

// buildAlphabet collects the distinct lowercased code points of the given
// texts and ranks them in sorted order starting at 1. Dense ranks keep
// the radix passes in the suffix array construction proportional to the
// number of distinct code points rather than the code-point range.
func buildAlphabet(texts []string) alphabet {
	set := make(map[rune]struct{})
	for _, t := range texts {
		for _, r := range t {
			set[unicode.ToLower(r)] = struct{}{}
		}
	}
	runes := make([]rune, 0, len(set))
	for r := range set {
		runes = append(runes, r)
	}
	slices.Sort(runes)
	ab := make(alphabet, len(runes))
	for i, r := range runes {
		ab[r] = int32(i) + 1
	}
	return ab
}

// symbolize maps a lowercased query onto the alphabet. ok is false when
// the query holds a code point that occurs in no entry, in which case no
// suffix can match it.
func (ab alphabet) symbolize(query string) (symbols []int32, ok bool) {
	symbols = make([]int32, 0, len(query))
	for _, r := range query {
		s, found := ab[unicode.ToLower(r)]
		if !found {
			return nil, false
		}
		symbols = append(symbols, s)
	}
	return symbols, true
}

// newStream concatenates the lowercased texts into one symbol stream,
// appending a sentinel after each text. Positions count code points, so
// starts[i] is the cumulative code-point length of the preceding texts
// plus one sentinel each. The stream carries three extra zero symbols
// past n for the window reads of the suffix array construction; they are
// never indexed.
func newStream(texts []string, ab alphabet) (symbols, starts []int32) {
	n := 0
	for _, t := range texts {
		n += utf8.RuneCountInString(t) + 1
	}
	symbols = make([]int32, n+3)
	starts = make([]int32, len(texts))
	pos := 0
	for i, t := range texts {
		starts[i] = int32(pos)
		for _, r := range t {
			symbols[pos] = ab[unicode.ToLower(r)]
			pos++
		}
		symbols[pos] = sentinel
		pos++
	}
	return symbols, starts
}

// ownerMap expands the entry start positions into a dense position→entry
// table covering all n stream positions, each entry owning its text and
// the sentinel after it.
func ownerMap(starts []int32, n int) []int32 {
	owners := make([]int32, n)
	for i := range starts {
		end := n
		if i+1 < len(starts) {
			end = int(starts[i+1])
		}
		for p := int(starts[i]); p < end; p++ {
			owners[p] = int32(i)
		}
	}
	return owners
}

// comparePrefix compares a suffix with a query prefix lexicographically.
// A suffix that runs out before the prefix compares smaller: the symbols
// past its end are pad zeros, below every query symbol.
func comparePrefix(suf, prefix []int32) int {
	for i := 0; i < min(len(suf), len(prefix)); i++ {
		if suf[i] != prefix[i] {
			if suf[i] < prefix[i] {
				return -1
			}
			return 1
		}
	}
	if len(suf) < len(prefix) {
		return -1
	}
	return 0
}

// matchRange locates the half-open range of sa whose suffixes start with
// the query, by a lower and an upper bound binary search. An empty query
// spans the whole array.
func matchRange(symbols, sa, query []int32, n int) (lo, hi int) {
	if len(query) == 0 {
		return 0, len(sa)
	}
	lo = sort.Search(len(sa), func(i int) bool {
		return comparePrefix(symbols[sa[i]:n], query) >= 0
	})
	hi = lo + sort.Search(len(sa)-lo, func(i int) bool {
		return comparePrefix(symbols[sa[lo+i]:n], query) > 0
	})
	return lo, hi
}
