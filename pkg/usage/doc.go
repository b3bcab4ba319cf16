// Package usage aggregates per-repository language byte counts and ranks them.
//
// # Overview
//
// GitHub reports, for every repository, how many bytes of source it attributes
// to each detected language. This package folds those per-repository records
// into a single [Usage] map and selects the largest languages from it:
//
//	records := []usage.RepoLanguages{
//	    {Repo: "api", Languages: []usage.LanguageSize{{Name: "Go", Size: 100}}},
//	    {Repo: "web", Languages: []usage.LanguageSize{{Name: "Go", Size: 250}, {Name: "HTML", Size: 9000}}},
//	}
//	u, err := usage.Aggregate(records)     // {Go: 350, HTML: 9000}
//	top := usage.Rank(u, 5, usage.NewSet("HTML")) // [(Go, 350)]
//
// # Invariants
//
//   - [Aggregate] never mutates its input and fails with a DATA_FORMAT error
//     for empty language names or negative sizes.
//   - Zero sizes are kept; a language with 0 bytes still shows up in the map.
//   - [Rank] never mutates the map. Equal sizes are ordered by language name,
//     so the result is identical across runs.
//
// Every function in this package is pure and safe for concurrent use.
package usage
