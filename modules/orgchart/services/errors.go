package services

import (
	"errors"
	"fmt"
)

// ErrNoCurrentChart is returned by repositories when an organization has no
// current organizational chart.
var ErrNoCurrentChart = errors.New("organization has no current chart")

// ServiceError is the coded error the service layer returns to its callers.
type ServiceError struct {
	Status  int
	Code    string
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *ServiceError) Unwrap() error { return e.Cause }

func newServiceError(status int, code, message string, cause error) *ServiceError {
	return &ServiceError{Status: status, Code: code, Message: message, Cause: cause}
}
