package model

import (
	"context"

	"github.com/uptrace/bun"
)

var allModels = []any{
	(*Generation)(nil),
}

func RegisterModels(db *bun.DB) {
	db.RegisterModel(allModels...)
}

func ResetModels(ctx context.Context, db *bun.DB) error {
	return db.ResetModel(ctx, allModels...)
}
