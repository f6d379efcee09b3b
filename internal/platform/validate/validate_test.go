// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bibliotheca/internal/platform/apperr"
	"github.com/taibuivan/bibliotheca/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "Don Quijote", false},
		{"empty_string", "", true},
		{"whitespace_only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("title", tt.value)

			if !tt.hasError {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Equal(t, "title", ae.Details[0].Field)
		})
	}
}

/*
TestValidator_RequiredID checks numeric identifier presence.
*/
func TestValidator_RequiredID(t *testing.T) {
	assert.False(t, (&validate.Validator{}).RequiredID("book_id", 7).HasErrors())
	assert.True(t, (&validate.Validator{}).RequiredID("book_id", 0).HasErrors())
	assert.True(t, (&validate.Validator{}).RequiredID("book_id", -3).HasErrors())
}

/*
TestValidator_ErrMessage verifies collective reporting of several missing fields.
*/
func TestValidator_ErrMessage(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("title", "").
		Required("author_name", "").
		Required("category_name", "Novel").
		ErrMessage("Title, author, category and book URL are required")

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "Title, author, category and book URL are required", ae.Message)
	assert.Len(t, ae.Details, 2)
}
