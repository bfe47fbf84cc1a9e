package search

import "fmt"

// Error codes surfaced in failed response envelopes.
const (
	CodeValidation = "validation_error"
	CodeUpstream   = "upstream_unavailable"
	CodeInternal   = "internal_error"
)

type SearchError struct {
	Code    string
	Message string
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &SearchError{Code: CodeValidation, Message: msg}
}

func NewUpstreamError(msg string) error {
	return &SearchError{Code: CodeUpstream, Message: msg}
}
