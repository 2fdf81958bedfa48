package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_InitWithViper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scaffold.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"force: true\nverbose: true\ndbms: Postgres\ndsn: postgres://localhost/scaffold\n"+
			"left-delim: \"<%\"\nright-delim: \"%>\"\n",
	), 0o644))

	cfg := NewConfig()
	cfg.InitWithViper(viper.New(), path)
	require.NoError(t, cfg.Check())

	assert.True(t, cfg.Force)
	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.NoColor)
	assert.Equal(t, "postgres", cfg.DBMS)
	assert.Equal(t, "postgres://localhost/scaffold", cfg.DSN)
	assert.Equal(t, "text", cfg.LogFormat)

	genCfg := cfg.Generator()
	require.NoError(t, genCfg.Validate())
	assert.Equal(t, "<%", genCfg.Template.Left)
	assert.Equal(t, "%>", genCfg.Template.Right)

	assert.Equal(t, "postgres", cfg.History().DBMS)
	assert.Equal(t, "postgres://localhost/scaffold", cfg.DB().DSN)
}

func TestConfig_InitWithViper_env(t *testing.T) {
	t.Setenv("SCAFFOLD_NO_HISTORY", "true")
	t.Setenv("SCAFFOLD_LOG_FORMAT", " JSON ")

	cfg := NewConfig()
	cfg.InitWithViper(viper.New(), "")
	require.NoError(t, cfg.Check())

	assert.True(t, cfg.NoHistory)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "sqlite", cfg.DBMS)
	assert.Equal(t, "{{", cfg.LeftDelim)
	assert.Equal(t, "}}", cfg.RightDelim)
}

func TestConfig_Check_nil(t *testing.T) {
	var cfg *Config
	assert.EqualError(t, cfg.Check(), "nil config")
}

func TestConfig_History_unique(t *testing.T) {
	t.Setenv("SCAFFOLD_UNIQUE", "true")

	cfg := NewConfig()
	cfg.InitWithViper(viper.New(), "")
	require.NoError(t, cfg.Check())

	assert.True(t, cfg.Unique)
	assert.True(t, cfg.History().RequireUnique)
	assert.NoError(t, cfg.History().Validate())

	assert.False(t, NewConfig().History().RequireUnique)
}

func TestDefaultDSN(t *testing.T) {
	cacheDir, err := os.UserCacheDir()
	require.NoError(t, err)

	dsn := defaultDSN()
	assert.True(t, strings.HasPrefix(dsn, "file:"+cacheDir))
	assert.True(t, strings.HasSuffix(dsn, "history.db?cache=shared"))
}
