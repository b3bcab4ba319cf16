package usage

import (
	"cmp"
	"maps"
	"slices"
)

// Entry is one ranked language.
type Entry struct {
	Language string `json:"language"`
	Size     int64  `json:"size"`
}

// Set is a set of language names.
type Set map[string]struct{}

// NewSet builds a Set from names. Empty names are skipped.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		if n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

// Has reports whether name is in the set. A nil Set contains nothing.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Rank returns the topN largest languages of u that are not in ignore,
// ordered by size descending and then by name.
//
// If fewer than topN languages are eligible, all of them are returned.
// A topN of zero or less yields an empty, non-nil slice.
func Rank(u Usage, topN int, ignore Set) []Entry {
	if topN <= 0 {
		return []Entry{}
	}

	entries := make([]Entry, 0, len(u))
	for lang, size := range u {
		if ignore.Has(lang) {
			continue
		}
		entries = append(entries, Entry{Language: lang, Size: size})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Size, a.Size); c != 0 {
			return c
		}
		return cmp.Compare(a.Language, b.Language)
	})

	if len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}

// Share returns each entry's percentage of total, in entry order.
// All shares are 0 when total is not positive.
func Share(entries []Entry, total int64) []float64 {
	shares := make([]float64, len(entries))
	if total <= 0 {
		return shares
	}
	for i, e := range entries {
		shares[i] = 100 * float64(e.Size) / float64(total)
	}
	return shares
}
