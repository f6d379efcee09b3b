// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuidv7 generates time-ordered identifiers used for request correlation.

Version 7 values sort by creation time, so log lines grouped by request id
also read in arrival order.
*/
package uuidv7

import "github.com/google/uuid"

// New returns a UUIDv7 string. If the clock source fails it falls back to a
// random (v4) value instead of panicking in the request path.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
