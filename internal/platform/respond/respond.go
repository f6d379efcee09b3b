// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Envelope
//
// Every payload carries a boolean "success" flag next to its fields:
//
//	{"success": true, "books": [...]}
//	{"success": false, "code": "NOT_FOUND", "message": "Book not found"}
//
// The browser frontend branches on "success" alone, so no handler writes JSON
// directly.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/bibliotheca/internal/platform/apperr"
	"github.com/taibuivan/bibliotheca/internal/platform/constants"
	"github.com/taibuivan/bibliotheca/internal/platform/ctxutil"
)

// Fields is the set of operation-specific members of a success payload.
type Fields map[string]any

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 response of the form {"success": true, ...fields}.
func OK(writer http.ResponseWriter, fields Fields) {
	JSON(writer, http.StatusOK, success(fields))
}

// Created writes a 201 response of the form {"success": true, ...fields}.
func Created(writer http.ResponseWriter, fields Fields) {
	JSON(writer, http.StatusCreated, success(fields))
}

func success(fields Fields) Fields {
	payload := make(Fields, len(fields)+1)
	for key, value := range fields {
		payload[key] = value
	}
	payload[constants.FieldSuccess] = true
	return payload
}

// Error converts any Go error into a standardized JSON API error response.
//
// Errors that are not [*apperr.AppError] are logged in full and rendered as a
// generic INTERNAL_ERROR so driver messages never reach the client.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
		)
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Success: false,
		Message: appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
