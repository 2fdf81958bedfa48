package model

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Generation records a single project generated from a template.
type Generation struct {
	bun.BaseModel `bun:"table:generations,alias:gen"`

	ID int64 `bun:",pk,autoincrement"`

	UUID string `bun:",unique,notnull"`
	// RawName is the name as supplied by the user; ProjectName is what it
	// was normalized to (identical when Forced is set).
	RawName     string
	ProjectName string
	Forced      bool

	Template  string
	Target    string
	FileCount int

	TimeAdded time.Time
}

func NewGeneration(rawName, projectName string, forced bool) *Generation {
	return &Generation{
		UUID:        uuid.NewString(),
		RawName:     rawName,
		ProjectName: projectName,
		Forced:      forced,
	}
}

func (o *Generation) Validate() error {
	if o.UUID == "" {
		return errors.New("UUID not set")
	}

	if _, err := uuid.Parse(o.UUID); err != nil {
		return err
	}

	if o.ProjectName == "" {
		return errors.New("project name not set")
	}

	return nil
}

func (o *Generation) Insert(ctx context.Context, db bun.IDB) error {
	if err := o.Validate(); err != nil {
		return err
	}

	_, err := db.NewInsert().Model(o).Exec(ctx)
	return err
}

func (o *Generation) Select(ctx context.Context, db bun.IDB) error {
	if o.ID == 0 {
		return errors.New("ID not set")
	}

	return db.NewSelect().Model(o).Where("id = ?", o.ID).Scan(ctx)
}

func (o *Generation) Delete(ctx context.Context, db bun.IDB) error {
	if o.ID == 0 {
		return errors.New("ID not set")
	}

	_, err := db.NewDelete().Model(o).WherePK().Exec(ctx)
	return err
}

// RenderParts returns the generation's fields as (name, value) pairs
// suitable for display.
func (o *Generation) RenderParts() [][2]string {
	forced := "no"
	if o.Forced {
		forced = "yes"
	}

	return [][2]string{
		{"uuid", o.UUID},
		{"project name", o.ProjectName},
		{"raw name", o.RawName},
		{"forced", forced},
		{"template", o.Template},
		{"target", o.Target},
		{"files", strconv.Itoa(o.FileCount)},
		{"time added", o.TimeAdded.Format(time.RFC3339)},
	}
}
