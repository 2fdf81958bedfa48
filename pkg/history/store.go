package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/veraison/scaffold/pkg/db"
	"github.com/veraison/scaffold/pkg/migrations"
	"github.com/veraison/scaffold/pkg/model"
)

var ErrNotFound = errors.New("generation not found")
var ErrDuplicate = errors.New("project already generated into this target")

// Store keeps a record of generated projects.
type Store struct {
	Ctx context.Context
	DB  *bun.DB

	cfg *Config
}

// Filter narrows down the generations returned by Store.List. Zero values
// match everything.
type Filter struct {
	ProjectName string
	Limit       int
}

// Open a Store configured according to provided Config that will use the
// provided Context for its transactions.
func Open(ctx context.Context, cfg *Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := db.Open(cfg.DB())
	if err != nil {
		return nil, err
	}

	return &Store{Ctx: ctx, cfg: cfg, DB: db}, nil
}

// OpenWithDB opens a store using an existing bun.DB and specified config options.
func OpenWithDB(ctx context.Context, db *bun.DB, options ...ConfigOption) (*Store, error) {
	cfg := NewConfig(db.Dialect().Name().String(), "<USING EXISTING DB>").WithOptions(options...)
	return &Store{Ctx: ctx, cfg: cfg, DB: db}, nil
}

// Close the Store, including its database connection.
func (o *Store) Close() error {
	return o.DB.Close()
}

// Init inializes a new database with the store's tables
func (o *Store) Init() error {
	migrator := migrate.NewMigrator(o.DB, migrations.Migrations)

	if err := migrator.Init(o.Ctx); err != nil {
		return err
	}

	return o.Migrate()
}

// Migrate upates the tables in the associated database to be compatible with this store.
// (note: there is no need to run this after invoking Store.Init().)
func (o *Store) Migrate() error {
	migrator := migrate.NewMigrator(o.DB, migrations.Migrations)

	if err := migrator.Lock(o.Ctx); err != nil {
		return err
	}
	defer migrator.Unlock(o.Ctx) // nolint:errcheck

	_, err := migrator.Migrate(o.Ctx)
	return err
}

// Add records the provided generation. TimeAdded is set to the current time
// if it is zero.
func (o *Store) Add(gen *model.Generation) error {
	if err := o.CheckUnique(gen.ProjectName, gen.Target); err != nil {
		return err
	}

	if gen.TimeAdded.IsZero() {
		gen.TimeAdded = time.Now().UTC()
	}

	tx, err := o.DB.BeginTx(o.Ctx, nil)
	if err != nil {
		return err
	}

	if err := gen.Insert(o.Ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// CheckUnique returns ErrDuplicate if the store requires unique entries and
// the project name has already been generated into target. It always
// succeeds when RequireUnique is not set.
func (o *Store) CheckUnique(projectName, target string) error {
	if !o.cfg.RequireUnique {
		return nil
	}

	count, err := o.DB.NewSelect().
		Model((*model.Generation)(nil)).
		Where("project_name = ?", projectName).
		Where("target = ?", target).
		Count(o.Ctx)
	if err != nil {
		return err
	}

	if count != 0 {
		return fmt.Errorf("%w: %s", ErrDuplicate, target)
	}

	return nil
}

// Get returns the generation with the specified UUID.
func (o *Store) Get(genUUID string) (*model.Generation, error) {
	var ret model.Generation

	err := o.DB.NewSelect().Model(&ret).Where("uuid = ?", genUUID).Scan(o.Ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, genUUID)
		}

		return nil, err
	}

	return &ret, nil
}

// List returns generations matching the filter, most recent first.
func (o *Store) List(filter Filter) ([]*model.Generation, error) {
	var ret []*model.Generation

	query := o.DB.NewSelect().Model(&ret).OrderExpr("time_added DESC, id DESC")

	if filter.ProjectName != "" {
		query.Where("project_name = ?", filter.ProjectName)
	}

	if filter.Limit > 0 {
		query.Limit(filter.Limit)
	}

	if err := query.Scan(o.Ctx); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return ret, nil
}

// Delete removes the generation with the specified UUID from the store. The
// generated files themselves are not touched.
func (o *Store) Delete(genUUID string) error {
	gen, err := o.Get(genUUID)
	if err != nil {
		return err
	}

	return gen.Delete(o.Ctx, o.DB)
}

// Clear removes all recorded generations.
func (o *Store) Clear() error {
	return model.ResetModels(o.Ctx, o.DB)
}
