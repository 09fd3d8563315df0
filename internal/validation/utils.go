package validation

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/deppfellow/bookmarks/internal/errs"
	"github.com/deppfellow/bookmarks/internal/middleware"
	"github.com/deppfellow/bookmarks/internal/model/bookmark"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Validatable is implemented by request payloads that validate themselves,
// either with validator tags or with hand-written checks.
type Validatable interface {
	Validate() error
}

// paramsOnly is implemented by payloads that come entirely from the path.
// Their request body, if any, is never read.
type paramsOnly interface {
	ParamsOnly() bool
}

// BindAndValidate fills payload from the request and validates it.
//
// Every failure comes back as a 400 *errs.HTTPError. A *bookmark.ValidationError
// keeps its kind as the error code, so a missing title answers with code
// MISSING_FIELD and the message "Missing 'title' in request body".
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := bind(c, payload); err != nil {
		return errs.NewBadRequestError(bindMessage(err), false, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		var bookmarkErr *bookmark.ValidationError
		if errors.As(err, &bookmarkErr) {
			middleware.GetLogger(c).Error().
				Str("kind", string(bookmarkErr.Kind)).
				Str("field", bookmarkErr.Field).
				Interface("value", bookmarkErr.Value).
				Msg(bookmarkErr.Message)
		}
		return validationError(err)
	}

	return nil
}

func bind(c echo.Context, payload Validatable) error {
	if p, ok := payload.(paramsOnly); ok && p.ParamsOnly() {
		return (&echo.DefaultBinder{}).BindPathParams(c, payload)
	}
	return c.Bind(payload)
}

// bindMessage pulls the client-facing text out of an echo bind error.
func bindMessage(err error) string {
	var bindingErr *echo.BindingError
	if errors.As(err, &bindingErr) && bindingErr.Field != "" {
		return fmt.Sprintf("Invalid value for '%s'", bindingErr.Field)
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return msg
		}
		return http.StatusText(echoErr.Code)
	}
	return "Invalid request"
}

func validationError(err error) *errs.HTTPError {
	var bookmarkErr *bookmark.ValidationError
	if errors.As(err, &bookmarkErr) {
		code := string(bookmarkErr.Kind)
		return errs.NewBadRequestError(bookmarkErr.Message, true, &code, []errs.FieldError{
			{Field: bookmarkErr.Field, Error: bookmarkErr.Message},
		})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return errs.NewBadRequestError("Validation failed", true, nil, fieldErrors(validationErrors))
	}

	return errs.ValidationError(err)
}

func fieldErrors(validationErrors validator.ValidationErrors) []errs.FieldError {
	out := make([]errs.FieldError, 0, len(validationErrors))

	for _, err := range validationErrors {
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min", "gte":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max", "lte":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s:%s", err.Tag(), err.Param())
			} else {
				msg = err.Tag()
			}
		}

		out = append(out, errs.FieldError{
			Field: strings.ToLower(err.Field()),
			Error: msg,
		})
	}

	return out
}
