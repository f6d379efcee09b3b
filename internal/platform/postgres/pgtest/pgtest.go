// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pgtest opens a migrated PostgreSQL pool for repository tests.

Tests using it are skipped unless TEST_DATABASE_URL points at a disposable
database. Rows are never truncated, so tests must use [Unique] names and
count only the rows they created.
*/
package pgtest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bibliotheca/internal/platform/migration"
	"github.com/taibuivan/bibliotheca/pkg/uuidv7"
)

// EnvDatabaseURL names the variable holding the test database DSN.
const EnvDatabaseURL = "TEST_DATABASE_URL"

/*
Open migrates the test database and returns a pool closed at test cleanup.

params are applied as session settings on every connection, e.g.
{"lock_timeout": "200ms"}.
*/
func Open(t testing.TB, params map[string]string) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(EnvDatabaseURL)
	if dsn == "" {
		t.Skipf("%s not set", EnvDatabaseURL)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := migration.RunUp(dsn, migrationsPath(), logger, false); err != nil {
		t.Fatalf("pgtest: migrate: %v", err)
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		t.Fatalf("pgtest: parse dsn: %v", err)
	}
	for name, value := range params {
		config.ConnConfig.RuntimeParams[name] = value
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		t.Fatalf("pgtest: connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// Unique returns prefix suffixed with a fresh identifier.
func Unique(prefix string) string {
	return prefix + "-" + uuidv7.New()
}

func migrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "data", "migrations")
}
