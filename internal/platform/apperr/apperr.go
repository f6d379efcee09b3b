// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error taxonomy for the catalog service.

Taxonomy:

  - VALIDATION_ERROR: a required field is missing or malformed (400).
  - UNAUTHORIZED: no valid caller identity (401).
  - FORBIDDEN: the caller lacks the required role (403).
  - NOT_FOUND: the target resource is absent (404).
  - CONFLICT: a uniqueness constraint rejected the write (409).
  - STORAGE_ERROR / INTERNAL_ERROR: the store or the process failed (500).

Services return an [AppError] for every failure so the HTTP adapter never has
to inspect driver errors.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a classified failure: a code, a client-safe message and the
// HTTP status it renders as. Cause stays server-side for logging.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// Codes rendered in the "code" member of failure payloads.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeRateLimited  = "RATE_LIMITED"
	CodeStorage      = "STORAGE_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

func newError(code string, status int, msg string, cause error) *AppError {
	return &AppError{Code: code, Message: msg, HTTPStatus: status, Cause: cause}
}

// # Client Errors (4xx)

// NotFound reports a missing resource, e.g. NotFound("Book") is "Book not found".
func NotFound(resource string) *AppError {
	return newError(CodeNotFound, http.StatusNotFound, resource+" not found", nil)
}

// Unauthorized reports a request without a usable caller identity.
func Unauthorized(msg string) *AppError {
	return newError(CodeUnauthorized, http.StatusUnauthorized, msg, nil)
}

// Forbidden reports a caller whose role does not permit the operation.
func Forbidden(msg string) *AppError {
	return newError(CodeForbidden, http.StatusForbidden, msg, nil)
}

// Conflict reports a write rejected by a uniqueness constraint.
func Conflict(msg string, cause error) *AppError {
	return newError(CodeConflict, http.StatusConflict, msg, cause)
}

// ValidationError reports rejected input, optionally naming each failed field.
func ValidationError(msg string, details ...FieldError) *AppError {
	appError := newError(CodeValidation, http.StatusBadRequest, msg, nil)
	appError.Details = details
	return appError
}

// RateLimited reports a client that exceeded its request budget.
func RateLimited(retryAfterSeconds int) *AppError {
	return newError(CodeRateLimited, http.StatusTooManyRequests,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds), nil)
}

// # Server Errors (5xx)

// Internal hides an unexpected failure behind a generic message.
func Internal(cause error) *AppError {
	return newError(CodeInternal, http.StatusInternalServerError, "An unexpected error occurred", cause)
}

// Storage reports a failed storage call with an operation-level message such
// as "Failed to retrieve books".
func Storage(msg string, cause error) *AppError {
	return newError(CodeStorage, http.StatusInternalServerError, msg, cause)
}

// # Helpers

// Wrap passes an existing [*AppError] through untouched and turns any other
// non-nil error into a [Storage] error with the given message.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	if IsAppError(err) {
		return err
	}
	return Storage(msg, err)
}

// IsAppError reports whether err's chain already carries a classification.
func IsAppError(err error) bool {
	return As(err) != nil
}

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
