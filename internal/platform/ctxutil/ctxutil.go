// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores and reads the per-request values the catalog relies
// on: the request id, the request-scoped logger and the verified caller.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/bibliotheca/internal/platform/ctxkey"
	"github.com/taibuivan/bibliotheca/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok || logger == nil {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithAuthUser returns a new context with the verified caller attached.
//
// The request logger is re-scoped with the caller's user_id so catalog events
// logged further down (book_added, favorite_toggled) name who triggered them.
func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	ctx = context.WithValue(ctx, ctxkey.KeyUser, user)
	if user == nil {
		return ctx
	}
	return WithLogger(ctx, GetLogger(ctx).With(slog.String("user_id", user.UserID)))
}

// GetAuthUser retrieves the verified caller, or nil for anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := ctx.Value(ctxkey.KeyUser).(*sec.AuthClaims)
	return claims
}
