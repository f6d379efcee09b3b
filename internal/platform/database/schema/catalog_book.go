// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table         string
	ID            string
	Title         string
	IsFavorite    string
	PortraitURL   string
	BookURL       string
	Language      string
	DownloadCount string
	AuthorID      string
	CategoryID    string
	CreatedAt     string
	UpdatedAt     string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:         "catalog.book",
	ID:            "id",
	Title:         "title",
	IsFavorite:    "is_favorite",
	PortraitURL:   "portrait_url",
	BookURL:       "book_url",
	Language:      "language",
	DownloadCount: "download_count",
	AuthorID:      "author_id",
	CategoryID:    "category_id",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
}

func (t CatalogBookTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.IsFavorite, t.PortraitURL, t.BookURL, t.Language,
		t.DownloadCount, t.AuthorID, t.CategoryID, t.CreatedAt, t.UpdatedAt,
	}
}
