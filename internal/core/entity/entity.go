// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package entity resolves author and category names to stable identifiers.

Authors and categories are created lazily: the first book that names them
creates the row, and every later book reuses it. Names match exactly and
case-sensitively.

Resolution accepts a [postgres.Querier] so it can run inside the caller's
transaction. Two concurrent first-time resolutions of the same name may both
attempt the insert; the loser fails on the unique constraint and the error is
returned as-is.
*/
package entity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/bibliotheca/internal/platform/database/schema"
	"github.com/taibuivan/bibliotheca/internal/platform/dberr"
	"github.com/taibuivan/bibliotheca/internal/platform/postgres"
)

// Kind selects which lookup table a name is resolved against.
type Kind int

const (
	KindAuthor Kind = iota + 1
	KindCategory
)

func (kind Kind) String() string {
	switch kind {
	case KindAuthor:
		return "author"
	case KindCategory:
		return "category"
	default:
		return fmt.Sprintf("kind(%d)", int(kind))
	}
}

// table returns the table, id column and name column backing the kind.
func (kind Kind) table() (table, id, name string, err error) {
	switch kind {
	case KindAuthor:
		return schema.CatalogAuthor.Table, schema.CatalogAuthor.ID, schema.CatalogAuthor.Name, nil
	case KindCategory:
		return schema.CatalogCategory.Table, schema.CatalogCategory.ID, schema.CatalogCategory.Name, nil
	default:
		return "", "", "", fmt.Errorf("entity: unknown %s", kind)
	}
}

/*
Resolve returns the identifier of the named entity, creating it when absent.

An existing row is returned unchanged. Lookup and insert failures are
propagated without retry.

Parameters:
  - ctx: context.Context
  - querier: pool or open transaction
  - kind: KindAuthor or KindCategory
  - name: exact display name

Returns:
  - int64: identifier of the existing or newly created row
  - error: storage failure, or CONFLICT when a concurrent insert won the race
*/
func Resolve(ctx context.Context, querier postgres.Querier, kind Kind, name string) (int64, error) {
	table, idColumn, nameColumn, err := kind.table()
	if err != nil {
		return 0, err
	}

	var id int64

	lookup := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, idColumn, table, nameColumn)
	err = querier.QueryRow(ctx, lookup, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, dberr.Wrap(err, "lookup_"+kind.String())
	}

	insert := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) RETURNING %s`, table, nameColumn, idColumn)
	if err := querier.QueryRow(ctx, insert, name).Scan(&id); err != nil {
		return 0, dberr.Wrap(err, "create_"+kind.String())
	}

	return id, nil
}
