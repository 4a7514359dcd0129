// Package apperror holds the error types that handlers translate into HTTP
// status codes.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError reports every missing or malformed input field at once.
type ValidationError struct {
	Message  string
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Problems, "; ")
}

// ConflictError is returned when a unique value (username, email) is taken.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError is returned when a resource or a referenced foreign key does
// not resolve.
type NotFoundError struct {
	Resource string
	ID       any
}

func (e *NotFoundError) Error() string {
	if e.ID == nil {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

func Validation(message string, problems ...string) error {
	return &ValidationError{Message: message, Problems: problems}
}

func Conflict(message string) error {
	return &ConflictError{Message: message}
}

func NotFound(resource string, id any) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// StatusCode maps err to the HTTP status the API answers with.
func StatusCode(err error) int {
	var (
		v  *ValidationError
		c  *ConflictError
		nf *NotFoundError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &v), errors.As(err, &c):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
