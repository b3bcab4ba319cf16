package usage

import (
	"maps"
	"math"
	"slices"

	"github.com/matzehuels/toplangs/pkg/errors"
)

// LanguageSize is the number of bytes a repository attributes to one language.
type LanguageSize struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// RepoLanguages is the language breakdown of a single repository.
// Repo is only used to give errors some context.
type RepoLanguages struct {
	Repo      string         `json:"repo"`
	Languages []LanguageSize `json:"languages"`
}

// Usage maps a language name to its total size in bytes across repositories.
// Keys are case-sensitive.
type Usage map[string]int64

// Aggregate sums the language sizes of all records into a new Usage.
//
// The result does not depend on the order of records or of the languages
// inside them. A record with an empty language name or a negative size
// aborts the fold with a DATA_FORMAT error naming the repository, the
// language and the value. So does a total that would overflow int64.
func Aggregate(records []RepoLanguages) (Usage, error) {
	u := make(Usage)
	for _, rec := range records {
		for i, l := range rec.Languages {
			if l.Name == "" {
				return nil, errors.New(errors.ErrCodeDataFormat,
					"repository %q: language #%d has an empty name (size %d)", rec.Repo, i, l.Size)
			}
			if l.Size < 0 {
				return nil, errors.New(errors.ErrCodeDataFormat,
					"repository %q: language %q has negative size %d", rec.Repo, l.Name, l.Size)
			}
			if u[l.Name] > math.MaxInt64-l.Size {
				return nil, errors.New(errors.ErrCodeDataFormat,
					"repository %q: total size of language %q overflows", rec.Repo, l.Name)
			}
			u[l.Name] += l.Size
		}
	}
	return u, nil
}

// Total returns the sum of all sizes.
func (u Usage) Total() int64 {
	var total int64
	for _, size := range u {
		total += size
	}
	return total
}

// Languages returns the language names in lexical order.
func (u Usage) Languages() []string {
	return slices.Sorted(maps.Keys(u))
}

// Clone returns an independent copy of u.
func (u Usage) Clone() Usage {
	return maps.Clone(u)
}
