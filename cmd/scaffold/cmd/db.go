package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dbfixture"
	"github.com/uptrace/bun/migrate"
	"github.com/veraison/scaffold/pkg/db"
	"github.com/veraison/scaffold/pkg/migrations"
	"github.com/veraison/scaffold/pkg/model"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Operations on the history database.",
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the migrations meta-tables and migrate to the latest schema.",

	Run: func(cmd *cobra.Command, args []string) {
		db, err := db.Open(cliConfig.DB())
		CheckErr(err)
		defer func() { CheckErr(db.Close()) }()

		CheckErr(runDBInit(context.Background(), db, cmd.OutOrStdout()))
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate database schema to the latest version.",

	Run: func(cmd *cobra.Command, args []string) {
		db, err := db.Open(cliConfig.DB())
		CheckErr(err)
		defer func() { CheckErr(db.Close()) }()

		CheckErr(runDBMigrate(context.Background(), db, cmd.OutOrStdout()))
	},
}

var rollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Roll back the last migration group.",

	Run: func(cmd *cobra.Command, args []string) {
		db, err := db.Open(cliConfig.DB())
		CheckErr(err)
		defer func() { CheckErr(db.Close()) }()

		CheckErr(runDBRollback(context.Background(), db, cmd.OutOrStdout()))
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of the currently configured database.",

	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "                DBMS: %s\n", cliConfig.DBMS)
		fmt.Fprintf(out, "                 DSN: %s\n", cliConfig.DSN)

		db, err := db.Open(cliConfig.DB())
		CheckErr(err)
		defer func() { CheckErr(db.Close()) }()

		CheckErr(runDBStatus(context.Background(), db, out))
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Display database schema as SQL.",

	Run: func(cmd *cobra.Command, args []string) {
		db, err := db.Open(cliConfig.DB())
		CheckErr(err)
		defer func() { CheckErr(db.Close()) }()

		CheckErr(runDBSchema(context.Background(), db, cliConfig.DBMS, cmd.OutOrStdout()))
	},
}

func runDBInit(ctx context.Context, db *bun.DB, out io.Writer) (err error) {
	migrator := migrate.NewMigrator(db, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return err
	}

	if err := migrator.Lock(ctx); err != nil {
		return err
	}
	defer func() { err = errors.Join(err, migrator.Unlock(ctx)) }()

	if _, err := migrator.Migrate(ctx); err != nil {
		return err
	}

	fmt.Fprintln(out, Green("ok"))

	return nil
}

func runDBMigrate(ctx context.Context, db *bun.DB, out io.Writer) (err error) {
	migrator := migrate.NewMigrator(db, migrations.Migrations)

	if err := migrator.Lock(ctx); err != nil {
		return err
	}
	defer func() { err = errors.Join(err, migrator.Unlock(ctx)) }()

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}

	if group.IsZero() {
		fmt.Fprintln(out, "Everything is up-to-date.")
	} else {
		fmt.Fprintln(out, "Migrated to", group)
	}

	return nil
}

func runDBRollback(ctx context.Context, db *bun.DB, out io.Writer) (err error) {
	migrator := migrate.NewMigrator(db, migrations.Migrations)

	if err := migrator.Lock(ctx); err != nil {
		return err
	}
	defer func() { err = errors.Join(err, migrator.Unlock(ctx)) }()

	group, err := migrator.Rollback(ctx)
	if err != nil {
		return err
	}

	if group.IsZero() {
		fmt.Fprintln(out, "Nothing to roll back.")
	} else {
		fmt.Fprintln(out, "Rolled back", group)
	}

	return nil
}

func runDBStatus(ctx context.Context, db *bun.DB, out io.Writer) error {
	migrator := migrate.NewMigrator(db, migrations.Migrations)

	status, err := migrator.MigrationsWithStatus(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "no such table") {
			return errors.New("database has not been initialized (run init sub-command)")
		}
		return err
	}

	fmt.Fprintf(out, "          migrations: %s\n", status)
	fmt.Fprintf(out, "unapplied migrations: %s\n", status.Unapplied())
	fmt.Fprintf(out, "last migration group: %s\n", status.LastGroup())

	if len(status.Unapplied()) == 0 {
		fmt.Fprintln(out, Green("ok"))
	} else {
		fmt.Fprintln(out, Amber("migration required"))
	}

	return nil
}

func runDBSchema(ctx context.Context, db *bun.DB, dbms string, out io.Writer) error {
	switch dbms {
	case "sqlite", "sqlite3":
		var sql []string

		err := db.NewSelect().
			TableExpr("sqlite_master").
			Column("sql").
			Where("type IN (?)", bun.In([]string{"table", "view", "index"})).
			Where("sql IS NOT NULL").
			Scan(ctx, &sql)
		if err != nil {
			return err
		}

		for _, statement := range sql {
			fmt.Fprintf(out, "%s;\n", statement)
		}

		return nil
	default:
		return fmt.Errorf("unsupported DBMS: %s", dbms)
	}
}

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Commands related to fixtures (see https://bun.uptrace.dev/guide/fixtures.html).",
	Args:  cobra.NoArgs,
}

var loadFixturesCmd = &cobra.Command{
	Use:   "load PATH [PATH ...]",
	Short: "Load history entries from YAML fixture files.",
	Args:  cobra.MinimumNArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		truncate, err := cmd.Flags().GetBool("truncate")
		CheckErr(err)

		db, err := db.Open(cliConfig.DB())
		CheckErr(err)
		defer func() { CheckErr(db.Close()) }()

		CheckErr(loadFixtures(context.Background(), db, truncate, args...))

		fmt.Println(Green("ok"))
	},
}

func loadFixtures(ctx context.Context, db *bun.DB, truncate bool, paths ...string) error {
	var opts []dbfixture.FixtureOption
	if truncate {
		opts = append(opts, dbfixture.WithTruncateTables())
	}

	model.RegisterModels(db)
	fixture := dbfixture.New(db, opts...)

	for _, path := range paths {
		fmt.Printf("Loading from %s...\n", path)
		dir, file := filepath.Split(path)
		if dir == "" {
			dir = "."
		}

		if err := fixture.Load(ctx, os.DirFS(dir), file); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	return nil
}

func init() {
	loadFixturesCmd.Flags().Bool("truncate", false, "Truncate existing data before loading the fixtures.")

	fixturesCmd.AddCommand(loadFixturesCmd)

	dbCmd.AddCommand(initCmd)
	dbCmd.AddCommand(migrateCmd)
	dbCmd.AddCommand(rollbackCmd)
	dbCmd.AddCommand(statusCmd)
	dbCmd.AddCommand(schemaCmd)
	dbCmd.AddCommand(fixturesCmd)

	rootCmd.AddCommand(dbCmd)
}
