// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book implements the catalog: listing, adding and deleting books and
counting their downloads.

Write paths:

  - Add: resolves the author and category names, then inserts the book, all in
    one transaction.
  - Delete: clears the book's favorites on a best-effort basis, then removes
    the book row.
  - Downloads: a single unconditional increment.

The list projection is cached and every write invalidates it.
*/
package book

import "time"

// Book is a catalog entry joined with its author and category names.
type Book struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	IsFavorite    bool      `json:"is_favorite"`
	PortraitURL   *string   `json:"portrait_url"`
	BookURL       string    `json:"book_url"`
	Language      string    `json:"book_language"`
	LanguageName  string    `json:"book_language_name,omitempty"`
	DownloadCount int64     `json:"download_count"`
	AuthorID      int64     `json:"author_id"`
	AuthorName    string    `json:"author_name"`
	CategoryID    int64     `json:"category_id"`
	CategoryName  string    `json:"category_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AddInput is the payload accepted when an administrator adds a book.
type AddInput struct {
	Title        string  `json:"title"`
	AuthorName   string  `json:"author_name"`
	CategoryName string  `json:"category_name"`
	PortraitURL  *string `json:"portrait_url"`
	BookURL      string  `json:"book_url"`
	Language     *string `json:"book_language"`
}

// NewBook is a checked book ready to be persisted.
type NewBook struct {
	Title        string
	AuthorName   string
	CategoryName string
	PortraitURL  *string
	BookURL      string
	Language     string
}

// Global field names for validation
const (
	FieldTitle        = "title"
	FieldAuthorName   = "author_name"
	FieldCategoryName = "category_name"
	FieldBookURL      = "book_url"
	FieldBookID       = "book_id"
)
