// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogAuthorTable represents the 'catalog.author' table
type CatalogAuthorTable struct {
	Table     string
	ID        string
	Name      string
	CreatedAt string
}

// CatalogAuthor is the schema definition for catalog.author
var CatalogAuthor = CatalogAuthorTable{
	Table:     "catalog.author",
	ID:        "id",
	Name:      "name",
	CreatedAt: "created_at",
}

func (t CatalogAuthorTable) Columns() []string {
	return []string{t.ID, t.Name, t.CreatedAt}
}
