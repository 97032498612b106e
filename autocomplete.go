// Copyright (c) 2025 Artem Lavrov
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package autocomplete provides an in-memory, case-insensitive substring
// index over arbitrary records. A query matches every record whose text
// contains it anywhere, located through a generalized suffix array built
// with the DC3 construction.
package autocomplete

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

// StringKey is the attribute every entry must carry: the text to index.
const StringKey = "string"

// ErrMissingString reports an entry without a string attribute.
var ErrMissingString = errors.New("autocomplete: entry has no string attribute")

// Entry is a searchable record: an attribute bag whose "string" attribute
// holds the text to index. All other attributes are opaque payload and
// travel with the entry through matches and rebuilds.
type Entry map[string]any

// Model is an immutable substring index over a list of entries. All
// operations leave the receiver untouched, so a model may be read
// concurrently; Insert and Remove hand back fresh models instead of
// mutating.
type Model struct {
	entries []Entry
	texts   []string // entry texts, aligned with entries
	ab      alphabet
	symbols []int32 // n+3 symbols, the last three are pad zeros
	n       int
	sa      []int32 // suffix array over symbols[:n]
	so      []int32 // so[i] is the entry owning the suffix at sa[i]
	opts    options
}

type options struct {
	logger *zap.Logger
}

// Option configures index construction.
type Option func(*options)

// WithLogger routes build diagnostics to l. The default discards them.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Build constructs a model over the given entries, eagerly indexing every
// suffix of their lowercased texts. Entries are stored in input order.
// Fails with ErrMissingString if any entry lacks a string attribute; no
// partial model is produced. An empty or nil entry list is valid and
// matches nothing.
func Build(entries []Entry, opts ...Option) (*Model, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	texts, err := entryTexts(entries, 0)
	if err != nil {
		return nil, err
	}
	return build(slices.Clone(entries), texts, o), nil
}

// entryTexts extracts the required string attribute of each entry.
// offset shifts the entry index reported on failure.
func entryTexts(entries []Entry, offset int) ([]string, error) {
	texts := make([]string, len(entries))
	for i, e := range entries {
		s, ok := e[StringKey].(string)
		if !ok {
			return nil, fmt.Errorf("%w: entry %d", ErrMissingString, offset+i)
		}
		texts[i] = s
	}
	return texts, nil
}

// build assembles the index for already validated entries.
func build(entries []Entry, texts []string, o options) *Model {
	begin := time.Now()
	ab := buildAlphabet(texts)
	symbols, starts := newStream(texts, ab)
	n := len(symbols) - 3
	sa := suffixArray(symbols, n, int32(len(ab)))
	owners := ownerMap(starts, n)
	so := make([]int32, len(sa))
	for i, p := range sa {
		so[i] = owners[p]
	}
	o.logger.Debug("index built",
		zap.Int("entries", len(entries)),
		zap.Int("stream", n),
		zap.Int("alphabet", len(ab)),
		zap.Duration("elapsed", time.Since(begin)),
	)
	return &Model{
		entries: entries,
		texts:   texts,
		ab:      ab,
		symbols: symbols,
		n:       n,
		sa:      sa,
		so:      so,
		opts:    o,
	}
}

// Match returns every entry whose text contains the query, ignoring case.
// Each entry appears at most once, ordered by its first suffix in the
// suffix array; nil when nothing matches. The empty query matches every
// entry.
func (m *Model) Match(query string) []Entry {
	q, ok := m.ab.symbolize(query)
	if !ok || len(m.sa) == 0 {
		return nil
	}
	lo, hi := matchRange(m.symbols, m.sa, q, m.n)
	seen := make([]bool, len(m.entries))
	var out []Entry
	for i := lo; i < hi; i++ {
		owner := m.so[i]
		if seen[owner] {
			continue
		}
		seen[owner] = true
		out = append(out, m.entries[owner])
	}
	return out
}

// Insert returns a new model indexing the stored entries followed by the
// given ones. Only the new entries are validated; the receiver is
// unchanged either way.
func (m *Model) Insert(entries ...Entry) (*Model, error) {
	texts, err := entryTexts(entries, len(m.entries))
	if err != nil {
		return nil, err
	}
	combined := make([]Entry, 0, len(m.entries)+len(entries))
	combined = append(append(combined, m.entries...), entries...)
	allTexts := make([]string, 0, len(combined))
	allTexts = append(append(allTexts, m.texts...), texts...)
	return build(combined, allTexts, m.opts), nil
}

// Criteria selects which entries a Remove drops.
//
// Filters sieve the stored entries: an entry survives only if every
// filter returns true for it. Strings drops entries by exact text.
// Entries drops entries whose top-level attributes are structurally equal
// to one of the given entries; nested values compare structurally too,
// so callers owning exotic payloads should prefer Filters. The three
// criteria combine, and an empty Criteria drops nothing.
type Criteria struct {
	Filters []func(Entry) bool
	Strings []string
	Entries []Entry
}

// Remove returns a new model without the entries selected by the
// criteria, keeping the survivors in their stored order. The receiver is
// unchanged.
func (m *Model) Remove(c Criteria) *Model {
	dropTexts := make(map[string]struct{}, len(c.Strings))
	for _, s := range c.Strings {
		dropTexts[s] = struct{}{}
	}
	var kept []Entry
	var keptTexts []string
	for i, e := range m.entries {
		if c.drops(e, m.texts[i], dropTexts) {
			continue
		}
		kept = append(kept, e)
		keptTexts = append(keptTexts, m.texts[i])
	}
	return build(kept, keptTexts, m.opts)
}

// drops reports whether the entry is selected for removal.
func (c Criteria) drops(e Entry, text string, dropTexts map[string]struct{}) bool {
	for _, keep := range c.Filters {
		if !keep(e) {
			return true
		}
	}
	if _, ok := dropTexts[text]; ok {
		return true
	}
	for _, other := range c.Entries {
		if cmp.Equal(map[string]any(e), map[string]any(other)) {
			return true
		}
	}
	return false
}

// Len reports the number of stored entries.
func (m *Model) Len() int {
	return len(m.entries)
}

// Entries returns a copy of the stored entries in input order.
func (m *Model) Entries() []Entry {
	return slices.Clone(m.entries)
}
