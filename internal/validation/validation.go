// Package validation binds request data into payload structs and checks it.
//
// Payloads validate themselves: bookmark payloads with hand-written ordered
// checks, path parameters with go-playground/validator tags. Failures are
// turned into 400 errors the client can act on.
package validation
