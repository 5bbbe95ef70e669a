package app

import "fmt"

type RequestErrorCode string

const (
	ErrCodeInvalidInput  RequestErrorCode = "INVALID_INPUT"
	ErrCodeEmptyMessage  RequestErrorCode = "EMPTY_MESSAGE"
	ErrCodeInvalidStatus RequestErrorCode = "INVALID_STATUS"
)

// RequestError reports input that a use case refuses to act on.
type RequestError struct {
	Code    RequestErrorCode
	Message string
}

func (e *RequestError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// DependencyError wraps a failure of a collaborator such as the task source
// or block store. Op names the step that failed. Unwrap returns the
// collaborator's error unchanged.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}
