package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

var SupportedDBMS = []string{
	"sqlite", "sqlite3", "mysql", "mariadb", "postgres", "pg", "pgx",
}

type Config struct {
	DBMS     string
	DSN      string
	TraceSQL bool
}

func Open(cfg *Config) (*bun.DB, error) {
	var ret *bun.DB

	switch cfg.DBMS {
	case "sqlite", "sqlite3":
		if dbPath := sqliteFilePath(cfg.DSN); dbPath != "" {
			if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
				return nil, err
			}
		}

		sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DSN)
		if err != nil {
			return nil, err
		}

		ret = bun.NewDB(sqldb, sqlitedialect.New())
	case "mysql", "mariadb":
		// parse first so that a malformed DSN is reported here rather
		// than on first use
		if _, err := mysql.ParseDSN(cfg.DSN); err != nil {
			return nil, err
		}

		sqldb, err := sql.Open("mysql", cfg.DSN)
		if err != nil {
			return nil, err
		}

		ret = bun.NewDB(sqldb, mysqldialect.New())
	case "postgres", "pg", "pgx":
		sqldb, err := sql.Open("pgx", cfg.DSN)
		if err != nil {
			return nil, err
		}

		ret = bun.NewDB(sqldb, pgdialect.New())
	default:
		return nil, fmt.Errorf("unsupported DBMS: %s", cfg.DBMS)
	}

	if cfg.TraceSQL {
		ret.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
		))
	}

	return ret, nil
}

// sqliteFilePath returns the path of the database file named by a sqlite
// DSN, or "" for in-memory databases.
func sqliteFilePath(dsn string) string {
	dbPath, query, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if dbPath == "" || strings.HasPrefix(dbPath, ":memory:") ||
		strings.Contains(query, "mode=memory") {
		return ""
	}

	return dbPath
}
