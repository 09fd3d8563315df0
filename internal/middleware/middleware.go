// Package middleware stores the echo middleware shared by every route.
//
// It covers request correlation, request-scoped logging, CORS, secure
// headers, panic recovery, New Relic tracing and the global error handler
// that turns any returned error into the JSON error envelope.
package middleware
