package test

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/veraison/scaffold/pkg/db"
	"github.com/veraison/scaffold/pkg/migrations"
)

var defaultTestDbFile = ":memory:"

// NewTestDB returns a migrated sqlite database for use in tests. It lives in
// memory unless TEST_DB_FILE is set.
func NewTestDB(t *testing.T) *bun.DB {
	testDbFile := os.Getenv("TEST_DB_FILE")
	if testDbFile == "" {
		testDbFile = defaultTestDbFile
	}

	if testDbFile != ":memory:" {
		_ = os.Remove(testDbFile)
	}

	testDB, err := db.Open(&db.Config{
		DBMS:     "sqlite",
		DSN:      fmt.Sprintf("file:%s", testDbFile),
		TraceSQL: trace,
	})
	require.NoError(t, err)

	// every connection to :memory: is a separate database
	testDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = testDB.Close() })

	ctx := context.Background()

	migrator := migrate.NewMigrator(testDB, migrations.Migrations)

	err = migrator.Init(ctx)
	require.NoError(t, err)

	err = migrator.Lock(ctx)
	require.NoError(t, err)
	defer func() { require.NoError(t, migrator.Unlock(ctx)) }()

	_, err = migrator.Migrate(ctx)
	require.NoError(t, err)

	return testDB
}

var trace bool

func init() {
	flag.BoolVar(&trace, "trace", false, "enable SQL statement tracing")
}
