package matching

import (
	"errors"
	"fmt"
)

// Error codes carried by MatchError.
const (
	CodeValidation = "validation"
	CodeNotFound   = "notFound"
)

// MatchError is a domain error raised by the matching engine itself.
// Repository failures are never converted into a MatchError.
type MatchError struct {
	Code    string
	Message string
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError reports missing or malformed criteria.
func NewValidationError(msg string) error {
	return &MatchError{Code: CodeValidation, Message: msg}
}

// NewNotFoundError reports a referenced entity that does not exist.
func NewNotFoundError(msg string) error {
	return &MatchError{Code: CodeNotFound, Message: msg}
}

// IsValidationError reports whether err is a validation MatchError.
func IsValidationError(err error) bool {
	return hasCode(err, CodeValidation)
}

// IsNotFoundError reports whether err is a not-found MatchError.
func IsNotFoundError(err error) bool {
	return hasCode(err, CodeNotFound)
}

func hasCode(err error, code string) bool {
	var me *MatchError
	return errors.As(err, &me) && me.Code == code
}
