// Package fetch retrieves caption documents over HTTP.
//
// Client issues plain GET requests with the configured user agent and turns
// 4xx/5xx responses into *StatusError values. Retry wraps any operation with
// capped exponential backoff; IsRetriable decides which failures are worth
// another attempt.
package fetch
