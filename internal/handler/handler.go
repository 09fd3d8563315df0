// Package handler is the HTTP layer that sits right after the router.
//
// Each endpoint receives a payload already bound and validated by the
// shared pipeline in base.go, calls the service layer and returns the value
// to write. Errors are returned, never written, so the global error handler
// shapes every failure the same way.
package handler
