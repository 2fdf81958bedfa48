package migrations

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// The models are duplicated here to provide immutable "snapshots" that will
// be used by the migration instead of the actual models. This means the
// migration will not be impacted by any future changes to the models.

type generation_v1 struct {
	bun.BaseModel `bun:"table:generations,alias:gen"`

	ID int64 `bun:",pk,autoincrement"`

	UUID        string `bun:",unique,notnull"`
	RawName     string
	ProjectName string
	Forced      bool

	Template  string
	Target    string
	FileCount int

	TimeAdded time.Time
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewCreateTable().Model((*generation_v1)(nil)).IfNotExists().Exec(ctx)
		if err != nil {
			return err
		}

		_, err = db.NewCreateIndex().
			Model((*generation_v1)(nil)).
			Index("generations_project_name_idx").
			IfNotExists().
			Column("project_name").
			Exec(ctx)

		return err
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().Model((*generation_v1)(nil)).IfExists().Exec(ctx)
		return err
	})
}
