// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogFavoriteTable represents the 'catalog.user_favorite' table
type CatalogFavoriteTable struct {
	Table     string
	UserID    string
	BookID    string
	CreatedAt string
}

// CatalogFavorite is the schema definition for catalog.user_favorite
var CatalogFavorite = CatalogFavoriteTable{
	Table:     "catalog.user_favorite",
	UserID:    "user_id",
	BookID:    "book_id",
	CreatedAt: "created_at",
}

func (t CatalogFavoriteTable) Columns() []string {
	return []string{t.UserID, t.BookID, t.CreatedAt}
}
