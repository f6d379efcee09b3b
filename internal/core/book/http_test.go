// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bibliotheca/internal/core/book"
	"github.com/taibuivan/bibliotheca/internal/platform/ctxutil"
	"github.com/taibuivan/bibliotheca/internal/platform/sec"
)

// newRouter mounts the catalog under /books with the given caller injected.
func newRouter(repo *memRepository, caller *sec.AuthClaims) http.Handler {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if caller != nil {
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), caller))
			}
			next.ServeHTTP(writer, request)
		})
	})
	router.Route("/books", book.NewHandler(book.NewService(repo, nil)).RegisterRoutes)
	return router
}

func serve(t *testing.T, handler http.Handler, method, target, body string) (int, map[string]any) {
	t.Helper()

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	payload := map[string]any{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload), recorder.Body.String())
	return recorder.Code, payload
}

const addBody = `{"title":"Ficciones","author_name":"Jorge Luis Borges","category_name":"Stories","book_url":"https://files.example.com/ficciones.pdf"}`

/*
TestHandler_AddBook covers the status codes and envelopes of POST /books.
*/
func TestHandler_AddBook(t *testing.T) {
	tests := []struct {
		name       string
		caller     *sec.AuthClaims
		body       string
		wantStatus int
		wantCode   string
	}{
		{"admin", admin, addBody, http.StatusCreated, ""},
		{"anonymous", nil, addBody, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"reader", reader, addBody, http.StatusForbidden, "FORBIDDEN"},
		{"invalid_json", admin, `{"title":`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing_fields", admin, `{"title":"only"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, payload := serve(t, newRouter(newMemRepository(), tt.caller), http.MethodPost, "/books", tt.body)

			assert.Equal(t, tt.wantStatus, status)
			if tt.wantCode == "" {
				assert.Equal(t, true, payload["success"])
				assert.Equal(t, "Book added successfully", payload["message"])
				assert.EqualValues(t, 1, payload["bookId"])
				return
			}
			assert.Equal(t, false, payload["success"])
			assert.Equal(t, tt.wantCode, payload["code"])
			assert.NotEmpty(t, payload["message"])
		})
	}
}

/*
TestHandler_ListAndDelete walks add, list, delete and a second delete.
*/
func TestHandler_ListAndDelete(t *testing.T) {
	repo := newMemRepository()
	router := newRouter(repo, admin)

	status, _ := serve(t, router, http.MethodPost, "/books", addBody)
	require.Equal(t, http.StatusCreated, status)

	status, payload := serve(t, router, http.MethodGet, "/books", "")
	require.Equal(t, http.StatusOK, status)
	books := payload["books"].([]any)
	require.Len(t, books, 1)
	first := books[0].(map[string]any)
	assert.Equal(t, "Jorge Luis Borges", first["author_name"])
	assert.Equal(t, "ENG", first["book_language"])
	assert.Equal(t, "English", first["book_language_name"])
	assert.Equal(t, false, first["is_favorite"])

	status, payload = serve(t, router, http.MethodDelete, "/books/1", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, payload["affectedRows"])

	status, payload = serve(t, router, http.MethodDelete, "/books/1", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Book not found", payload["message"])

	status, payload = serve(t, router, http.MethodGet, "/books", "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, payload["books"])
}

/*
TestHandler_Downloads verifies the public counter endpoint, including unknown ids.
*/
func TestHandler_Downloads(t *testing.T) {
	repo := newMemRepository()
	router := newRouter(repo, admin)

	serve(t, router, http.MethodPost, "/books", addBody)

	anonymous := newRouter(repo, nil)
	for range 3 {
		status, _ := serve(t, anonymous, http.MethodPost, "/books/1/downloads", "")
		require.Equal(t, http.StatusOK, status)
	}

	status, payload := serve(t, anonymous, http.MethodGet, "/books/1", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 3, payload["book"].(map[string]any)["download_count"])

	status, payload = serve(t, anonymous, http.MethodPost, "/books/77/downloads", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, payload["success"])
}

/*
TestHandler_StorageFailureIsGeneric verifies driver text never reaches the client.
*/
func TestHandler_StorageFailureIsGeneric(t *testing.T) {
	repo := newMemRepository()
	repo.failErr = errors.New(`ERROR: relation "catalog.book" does not exist`)

	status, payload := serve(t, newRouter(repo, admin), http.MethodDelete, "/books/3", "")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "STORAGE_ERROR", payload["code"])
	assert.Equal(t, "Failed to delete book", payload["message"])
	assert.NotContains(t, payload, "error")
}
