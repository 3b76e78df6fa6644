package errorutil

import (
	"fmt"

	"github.com/pkg/errors"
)

// UserError is an error whose message can be shown to the end user as is.
// Declare them as package level sentinels and compare with errors.Is.
type UserError struct {
	error
}

func NewUserError(msg string) *UserError {
	return &UserError{error: errors.New(msg)}
}

func NewUserErrorf(msg string, args ...any) *UserError {
	return NewUserError(fmt.Sprintf(msg, args...))
}

// combinedError pairs an internal error with the UserError describing it:
//
//	return errorutil.CombinedError(
//		errors.Wrap(err, "parse kubeconfig"),
//		ErrConfigReadOrParse,
//	)
//
// errors.Is matches both the cause chain and the user error, and Unwrap walks
// the cause chain so the original error is never lost.
type combinedError struct {
	cause     error
	userError *UserError
}

// CombinedError attaches userErr to cause. If cause already carries a user
// message it is returned unchanged.
func CombinedError(cause error, userErr *UserError) error {
	if cause == nil || hasUserError(cause) {
		return cause
	}
	return &combinedError{cause: cause, userError: userErr}
}

// AddUserMessagef is CombinedError with an ad hoc user message.
func AddUserMessagef(cause error, msg string, args ...any) error {
	return CombinedError(cause, NewUserErrorf(msg, args...))
}

// GetUserErrorMessage returns the user facing message in err's chain, or ""
// if there is none.
func GetUserErrorMessage(err error) string {
	var ce *combinedError
	if errors.As(err, &ce) {
		return ce.userError.Error()
	}
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Error()
	}
	return ""
}

func (e *combinedError) Error() string {
	return e.wrapped().Error()
}

func (e *combinedError) Is(target error) bool {
	return errors.Is(e.cause, target) || errors.Is(e.userError, target)
}

func (e *combinedError) Unwrap() error { return e.cause }

// Cause lets errors.Cause reach the root of the cause chain.
func (e *combinedError) Cause() error { return errors.Cause(e.cause) }

// Format supports %+v as implemented by github.com/pkg/errors.
func (e *combinedError) Format(s fmt.State, verb rune) {
	e.wrapped().(fmt.Formatter).Format(s, verb)
}

func (e *combinedError) wrapped() error {
	return errors.WithMessage(e.cause, e.userError.Error())
}

func hasUserError(err error) bool {
	var ce *combinedError
	var ue *UserError
	return errors.As(err, &ce) || errors.As(err, &ue)
}
