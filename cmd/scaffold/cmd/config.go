package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/veraison/scaffold/pkg/db"
	"github.com/veraison/scaffold/pkg/generate"
	"github.com/veraison/scaffold/pkg/history"
	"github.com/veraison/scaffold/pkg/logger"
	"github.com/veraison/scaffold/pkg/template"
	"github.com/veraison/scaffold/pkg/util"
)

type Config struct {
	NoColor   bool
	Verbose   bool
	LogFormat string
	Force     bool

	LeftDelim  string
	RightDelim string

	NoHistory bool
	Unique    bool
	DBMS      string
	DSN       string
	TraceSQL  bool

	err error
}

func NewConfig() *Config {
	return &Config{}
}

func (o *Config) Check() error {
	if o == nil {
		return errors.New("nil config")
	}

	return o.err
}

func (o *Config) History() *history.Config {
	return &history.Config{
		Config: db.Config{
			DBMS:     o.DBMS,
			DSN:      o.DSN,
			TraceSQL: o.TraceSQL,
		},
		RequireUnique: o.Unique,
	}
}

func (o *Config) DB() *db.Config {
	return &db.Config{
		DBMS:     o.DBMS,
		DSN:      o.DSN,
		TraceSQL: o.TraceSQL,
	}
}

func (o *Config) Generator(options ...generate.ConfigOption) *generate.Config {
	cfg := generate.NewConfig(
		generate.OptionTemplate(template.OptionDelims(o.LeftDelim, o.RightDelim)),
	)

	return cfg.WithOptions(options...)
}

func (o *Config) Logger() *logger.Logger {
	level := logger.INFO
	if o.Verbose {
		level = logger.DEBUG
	}

	return logger.New(logger.Config{Level: level, Format: o.LogFormat})
}

func (o *Config) Init(path string) {
	o.InitWithViper(viper.GetViper(), path)
}

func (o *Config) InitWithViper(v *viper.Viper, path string) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		wd, err := os.Getwd()
		if err != nil {
			o.err = err
			return
		}

		userConfigDir, err := os.UserConfigDir()
		if err == nil {
			v.AddConfigPath(userConfigDir)
		}
		v.AddConfigPath(wd)
		v.SetConfigType("yaml")
		v.SetConfigName("scaffold")
	}

	v.SetEnvPrefix("scaffold")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		err = nil
	}

	if err != nil {
		o.err = err
		return
	}

	o.NoColor = v.GetBool("no-color")
	o.Verbose = v.GetBool("verbose")
	o.Force = v.GetBool("force")
	o.NoHistory = v.GetBool("no-history")
	o.Unique = v.GetBool("unique")
	o.DBMS = util.NormalizeKeyword(v.GetString("dbms"))
	o.DSN = v.GetString("dsn")
	o.TraceSQL = v.GetBool("trace-sql")

	o.LogFormat = util.NormalizeKeyword(v.GetString("log-format"))
	if o.LogFormat == "" {
		o.LogFormat = logger.TEXT
	}

	o.LeftDelim = v.GetString("left-delim")
	if o.LeftDelim == "" {
		o.LeftDelim = template.DefaultLeftDelim
	}

	o.RightDelim = v.GetString("right-delim")
	if o.RightDelim == "" {
		o.RightDelim = template.DefaultRightDelim
	}

	if o.DBMS == "" {
		o.DBMS = "sqlite"
	}
}
