// Package httputil provides retry helpers for the GitHub API client.
//
// [Retry] runs a request function until it succeeds, fails with a
// non-retryable error, or runs out of attempts. Only errors wrapped in
// [RetryableError] are retried:
//
//   - Network errors (connection refused, timeouts)
//   - 5xx server errors
//   - Rate limits whose reset is only a few seconds away
//
// Authentication failures, 404s and malformed responses are returned
// immediately. The delay between attempts doubles each time, and is
// stretched to [RetryableError.After] when the server asked for a longer
// wait:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return client.fetch(ctx)
//	})
//
// Default settings used by [RetryWithBackoff]:
//
//   - Max attempts: 3
//   - Base backoff: 1 second
package httputil
