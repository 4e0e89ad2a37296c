// Package services implements the application services behind the HTTP API:
// workflow management and deal ingestion.
package services

import (
	"errors"
	"fmt"
)

// Business logic errors that map to client errors (4xx responses).
var (
	ErrInvalidRequest           = errors.New("invalid request")
	ErrWorkflowNil              = errors.New("workflow cannot be nil")
	ErrWorkflowNameRequired     = errors.New("workflow name is required")
	ErrEmptyTeamID              = errors.New("team ID cannot be empty")
	ErrInvalidTriggerType       = errors.New("invalid trigger type")
	ErrInvalidConditionOperator = errors.New("invalid condition operator")
	ErrInvalidActionType        = errors.New("invalid action type")
	ErrInvalidActionConfig      = errors.New("invalid action config")
	ErrDealNil                  = errors.New("deal cannot be nil")
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string
	Code    string
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsValidationError checks if an error should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrWorkflowNil) ||
		errors.Is(err, ErrWorkflowNameRequired) ||
		errors.Is(err, ErrEmptyTeamID) ||
		errors.Is(err, ErrInvalidTriggerType) ||
		errors.Is(err, ErrInvalidConditionOperator) ||
		errors.Is(err, ErrInvalidActionType) ||
		errors.Is(err, ErrInvalidActionConfig) ||
		errors.Is(err, ErrDealNil)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
