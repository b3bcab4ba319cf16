// Package github talks to the GitHub API on behalf of a single user.
//
// # Reading
//
// Repository language statistics are read through the GraphQL endpoint in
// two steps. [Client.RepoCount] asks how many repositories the viewer owns,
// then [Client.Languages] pages through exactly that many repositories (100
// per request) and returns one [usage.RepoLanguages] record per repository:
//
//	c := github.NewClient(token)
//	n, err := c.RepoCount(ctx)
//	records, err := c.Languages(ctx, n)
//	u, err := usage.Aggregate(records)
//
// A repository created between the two calls is simply not read. Callers
// that care compare len(records) with the count.
//
// # Publishing
//
// [Client.Publish] commits a single file through the git data API: it
// resolves the branch head, uploads a blob, builds a tree on top of the
// head's tree, commits it, and fast-forwards the branch. When the file
// already holds identical content nothing is written.
//
// # Errors
//
// HTTP failures are mapped onto [errors.Code] values (UNAUTHORIZED,
// FORBIDDEN, RATE_LIMITED, NOT_FOUND, NETWORK_ERROR). Server errors and
// connection failures are retried with backoff; a response that lacks an
// expected field or carries a field of the wrong type fails with
// DATA_FORMAT.
package github
