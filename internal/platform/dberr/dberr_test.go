// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bibliotheca/internal/platform/apperr"
	"github.com/taibuivan/bibliotheca/internal/platform/dberr"
)

/*
TestWrap classifies the driver errors the catalog cares about.
*/
func TestWrap(t *testing.T) {
	plain := errors.New("connection reset by peer")

	tests := []struct {
		name    string
		err     error
		code    string
		isPlain bool
	}{
		{"no_rows", pgx.ErrNoRows, "NOT_FOUND", false},
		{"unique_violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, "CONFLICT", false},
		{"foreign_key_violation", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, "VALIDATION_ERROR", false},
		{"other_sqlstate", &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, "", true},
		{"network", plain, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dberr.Wrap(tt.err, "test_action")

			if tt.isPlain {
				assert.False(t, apperr.IsAppError(err))
				assert.ErrorIs(t, err, tt.err)
				assert.Contains(t, err.Error(), "test_action")
				return
			}

			assert.True(t, apperr.HasCode(err, tt.code))
		})
	}
}

/*
TestWrap_Nil verifies that a nil error stays nil.
*/
func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))
}
