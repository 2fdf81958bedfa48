package history

import (
	"fmt"
	"slices"

	"github.com/veraison/scaffold/pkg/db"
)

// Config contains configuration for the Store.
type Config struct {
	db.Config

	// RequireUnique, when set, rejects recording a generation whose project
	// name and target match an existing entry.
	RequireUnique bool
}

func NewConfig(dbms, dsn string, options ...ConfigOption) *Config {
	ret := &Config{
		Config: db.Config{
			DBMS:     dbms,
			DSN:      dsn,
			TraceSQL: false,
		},
		RequireUnique: false,
	}

	ret.WithOptions(options...)

	return ret
}

func (o *Config) WithOptions(options ...ConfigOption) *Config {
	for _, opt := range options {
		opt(o)
	}

	return o
}

func (o *Config) Validate() error {
	if !slices.Contains(db.SupportedDBMS, o.DBMS) {
		return fmt.Errorf("invalid DBMS: %s", o.DBMS)
	}

	return nil
}

func (o *Config) DB() *db.Config {
	return &o.Config
}

type ConfigOption func(c *Config)

func OptionTraceSQL(c *Config) {
	c.TraceSQL = true
}

func OptionRequireUnique(c *Config) {
	c.RequireUnique = true
}
