// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures..
// (e.g. FieldErrors for payloads or HTTPError for API responses)..
// to ensure the client receive meaningful, actionable, and consistent..
// error messages.
//
// - Return consistent error shapes to API clients (JSON).
// - Support field-level validation errors.
// - Provide errors that play nicely with Go's standard errors package.
package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "rating", "error": "Rating must be a number between 0 and 5, received five" }
type FieldError struct {
	// Field is the field name/key the error relates to (e.g. "url").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error().
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST", "MISSING_FIELD").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: whether Message is safe to show as-is to end users.
//   - Errors: list of per-field errors (validation).
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors,omitempty"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
//
// It returns the Message, so printing/logging the error shows the message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is customizes how errors.Is(...) treats HTTPError.
//
// This implementation returns true if `target` is also a *HTTPError.
// It does NOT compare Code/Status/etc., only the type.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// Response is the JSON body written for every failed request.
//
// The message is repeated at the top level so clients can read either
// `message` or `error.message`:
//
//	{ "message": "bookmark id 2 does not exist",
//	  "error": { "code": "NOT_FOUND", "message": "bookmark id 2 does not exist", "status": 404 } }
type Response struct {
	Message string     `json:"message"`
	Error   *HTTPError `json:"error"`
}

// NewResponse wraps err into the response envelope.
func NewResponse(err *HTTPError) Response {
	return Response{
		Message: err.Message,
		Error:   err,
	}
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
//
// Used to create stable machine-readable error codes from HTTP status text.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
