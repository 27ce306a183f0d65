package serrors

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// BaseError is a structured error with a stable machine-readable code.
// Callers branch on the code (or the helper predicates below), not on the
// message text.
type BaseError struct {
	Code      string
	Message   string
	LocaleKey string
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}

// Engine error codes. These are the only error kinds the calendar engine
// surfaces to its callers.
const (
	CodePermissionDenied      = "CALENDAR_PERMISSION_DENIED"
	CodeDependencyUnavailable = "CALENDAR_DEPENDENCY_UNAVAILABLE"
	CodeInvalidRange          = "CALENDAR_INVALID_RANGE"
	CodeNotFound              = "CALENDAR_NOT_FOUND"
)

func NewPermissionDenied(message string) *BaseError {
	return NewError(CodePermissionDenied, message, "Calendar.Errors.PermissionDenied")
}

func NewDependencyUnavailable(message string) *BaseError {
	return NewError(CodeDependencyUnavailable, message, "Calendar.Errors.DependencyUnavailable")
}

func NewInvalidRange(message string) *BaseError {
	return NewError(CodeInvalidRange, message, "Calendar.Errors.InvalidRange")
}

func NewNotFound(message string) *BaseError {
	return NewError(CodeNotFound, message, "Calendar.Errors.NotFound")
}

// HasCode reports whether err (or anything it wraps) is a BaseError carrying
// the given code.
func HasCode(err error, code string) bool {
	var be *BaseError
	if !errors.As(err, &be) {
		return false
	}
	return be.Code == code
}

func IsPermissionDenied(err error) bool      { return HasCode(err, CodePermissionDenied) }
func IsDependencyUnavailable(err error) bool { return HasCode(err, CodeDependencyUnavailable) }
func IsInvalidRange(err error) bool          { return HasCode(err, CodeInvalidRange) }
func IsNotFound(err error) bool              { return HasCode(err, CodeNotFound) }

// ValidationErrors maps DTO field names to structured errors.
type ValidationErrors map[string]*BaseError

// ProcessValidatorErrors converts go-playground validator failures into
// ValidationErrors. localeKeyFn resolves the per-field message key.
func ProcessValidatorErrors(errs validator.ValidationErrors, localeKeyFn func(field string) string) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = NewError(
			"VALIDATION_"+fe.Tag(),
			fmt.Sprintf("field %s failed on the %q rule", fe.Field(), fe.Tag()),
			localeKeyFn(fe.Field()),
		)
	}
	return out
}
