package errs

import (
	"errors"
)

const (
	MsgArticleIDRequired = "article_id required"
	MsgFieldsRequired    = "article_id and rating required"
	MsgRatingRange       = "rating must be between 1 and 5"
	MsgMethodNotAllowed  = "Method not allowed"
)

// ValidationError is reported to the caller as 400 with Message as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

var ErrNotFound = errors.New("not found")
