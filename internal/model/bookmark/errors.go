package bookmark

import "fmt"

// Kind classifies why a create payload was rejected.
//
// The string value doubles as the machine-readable error code sent to
// clients, following the UPPER_CASE_WITH_UNDERSCORES style of errs.HTTPError.
type Kind string

const (
	KindMissingField  Kind = "MISSING_FIELD"
	KindInvalidRating Kind = "INVALID_RATING"
	KindInvalidURL    Kind = "INVALID_URL"
)

// ValidationError describes the first problem found in a create payload.
//
// Only one error is ever reported: checks run in a fixed order and stop at
// the first failure.
type ValidationError struct {
	// Kind is the failure category (missing field, bad rating, bad url).
	Kind Kind

	// Field is the payload key the error relates to (e.g. "rating").
	Field string

	// Value is the offending value as received. Nil for missing fields.
	Value any

	// Message is the human-readable text returned to the client.
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func missingField(field string) *ValidationError {
	return &ValidationError{
		Kind:    KindMissingField,
		Field:   field,
		Message: fmt.Sprintf("Missing '%s' in request body", field),
	}
}

func invalidRating(value any) *ValidationError {
	return &ValidationError{
		Kind:    KindInvalidRating,
		Field:   "rating",
		Value:   value,
		Message: fmt.Sprintf("Rating must be a number between %d and %d, received %s", MinRating, MaxRating, formatValue(value)),
	}
}

func invalidURL(value string) *ValidationError {
	return &ValidationError{
		Kind:    KindInvalidURL,
		Field:   "url",
		Value:   value,
		Message: "URL must begin with http(s)://",
	}
}
