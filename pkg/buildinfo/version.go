// Package buildinfo holds the version stamped into toplangs at build time.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/toplangs/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/toplangs/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/toplangs/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	// Set via ldflags: -X github.com/matzehuels/toplangs/pkg/buildinfo.Version=...
	Version = "dev"

	// Commit is the git commit SHA.
	// Set via ldflags: -X github.com/matzehuels/toplangs/pkg/buildinfo.Commit=...
	Commit = "none"

	// Date is the build timestamp.
	// Set via ldflags: -X github.com/matzehuels/toplangs/pkg/buildinfo.Date=...
	Date = "unknown"
)

// String returns the build information on one line, e.g. for User-Agent
// suffixes and debug logs.
func String() string {
	return fmt.Sprintf("%s (%s, %s)", Version, short(Commit), Date)
}

// short trims a full commit SHA to the usual seven characters.
func short(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
