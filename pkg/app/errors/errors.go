// Package errors classifies service failures into categories that the HTTP layer
// turns into status codes and that clients turn back into typed errors.
package errors

import (
	"errors"
	"net/http"
)

// Category defines error category
type Category int

const (
	// CategoryNoError marks a successful call in request tracking.
	CategoryNoError Category = iota
	// CategoryDataError covers invalid payloads, parameters and generic client errors.
	CategoryDataError
	// CategoryUnauthorized means the caller could not be authenticated.
	CategoryUnauthorized
	// CategoryForbidden means the authenticated caller may not perform the operation.
	CategoryForbidden
	CategoryResourceNotFound
	CategoryNotSupported
	// CategoryDataConflict means the request contradicts existing state,
	// e.g. a nonce that was already consumed.
	CategoryDataConflict
	// CategoryDependencyFailure means a downstream service (node, validator, store) failed.
	CategoryDependencyFailure
	CategoryGeneralError
	// CategoryUnavailable means the service is failing but is expected to recover.
	CategoryUnavailable
)

type categoryInfo struct {
	name   string
	status int
}

var categories = map[Category]categoryInfo{
	CategoryDataError:         {"CategoryDataError", http.StatusBadRequest},
	CategoryUnauthorized:      {"CategoryUnauthorized", http.StatusUnauthorized},
	CategoryForbidden:         {"CategoryForbidden", http.StatusForbidden},
	CategoryResourceNotFound:  {"CategoryResourceNotFound", http.StatusNotFound},
	CategoryNotSupported:      {"CategoryNotSupported", http.StatusMethodNotAllowed},
	CategoryDataConflict:      {"CategoryDataConflict", http.StatusConflict},
	CategoryDependencyFailure: {"CategoryDependencyFailure", http.StatusBadGateway},
	CategoryGeneralError:      {"CategoryGeneralError", http.StatusInternalServerError},
	CategoryUnavailable:       {"CategoryUnavailable", http.StatusServiceUnavailable},
}

func (c Category) String() string {
	if info, ok := categories[c]; ok {
		return info.name
	}
	return categories[CategoryGeneralError].name
}

// CategoryFromStatus maps an HTTP status code back to its error category.
func CategoryFromStatus(code int) Category {
	for c, info := range categories {
		if info.status == code {
			return c
		}
	}
	return CategoryGeneralError
}

// ServiceError is the error type returned by every service layer. Message is safe to
// show to the caller, Err is only logged.
type ServiceError struct {
	Category Category
	Message  string
	// Reason is a stable machine readable code clients can match on.
	Reason string
	Err    error
}

func (err ServiceError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	return err.Message
}

func (err ServiceError) Unwrap() error {
	return err.Err
}

// StatusCode returns the HTTP status code for the error category
func (err ServiceError) StatusCode() int {
	if info, ok := categories[err.Category]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// Is checks that provided error is a ServiceError with desired Category
func Is(err error, cat Category) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Category == cat
}

// IsInternalError reports whether err should be treated as a server side failure:
// anything that is not a ServiceError, or one categorized as a dependency or
// general failure.
func IsInternalError(err error) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.Category < CategoryDependencyFailure {
		return false
	}
	return true
}

func newServiceError(cat Category, err error, message, fallback string) error {
	if err == nil {
		err = errors.New(fallback)
	}
	return &ServiceError{Category: cat, Message: message, Err: err}
}

// GeneralError hides err behind "Internal Server Error"; err is only logged.
func GeneralError(err error) error {
	return newServiceError(CategoryGeneralError, err, "Internal Server Error", "internal server error")
}

// ResourceNotFoundError returns an error with category ResourceNotFound
func ResourceNotFoundError(err error, message string) error {
	return newServiceError(CategoryResourceNotFound, err, message, "resource not found:"+message)
}

// BadRequestError returns an error with category DataError
func BadRequestError(err error, message string) error {
	return newServiceError(CategoryDataError, err, message, "bad request:"+message)
}

// NotSupportedError returns an error with category NotSupported
func NotSupportedError(err error, message string) error {
	return newServiceError(CategoryNotSupported, err, message, "not supported:"+message)
}

// ForbiddenError returns an error with category Forbidden
func ForbiddenError(err error, message string) error {
	return newServiceError(CategoryForbidden, err, message, "request forbidden")
}

// UnAuthorizedError returns an error with category Unauthorized
func UnAuthorizedError(err error, message string) error {
	return newServiceError(CategoryUnauthorized, err, message, "unauthorized")
}

// ConflictError returns an error with category DataConflict
func ConflictError(err error, message string) error {
	return newServiceError(CategoryDataConflict, err, message, "conflict")
}

// DependencyError returns an error with category DependencyFailure
func DependencyError(err error, message string) error {
	return newServiceError(CategoryDependencyFailure, err, message, "dependency failure")
}

// UnavailableError returns an error with category Unavailable
func UnavailableError(err error, message string) error {
	return newServiceError(CategoryUnavailable, err, message, "service unavailable")
}

// WithReason attaches a machine readable reason to a ServiceError. Other errors are
// returned unchanged.
func WithReason(err error, reason string) error {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		cp := *svcErr
		cp.Reason = reason
		return &cp
	}
	return err
}
