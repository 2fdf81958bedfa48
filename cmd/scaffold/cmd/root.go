package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/veraison/scaffold/pkg/build"
)

var configFile string
var cliConfig *Config

var rootCmd = &cobra.Command{
	Use:     "scaffold COMMAND COMMAND_ARGS...",
	Short:   "Generate new projects from template directories",
	Version: build.Version.String(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		CheckErr(cliConfig.Check())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		cliConfig = NewConfig()
		cliConfig.Init(configFile)
	})

	rootCmd.PersistentFlags().StringVar(
		&configFile, "config", "",
		"Path to the config file (default is $XDG_CONFIG_HOME/scaffold.yaml).",
	)

	rootCmd.PersistentFlags().Bool(
		"no-color", false, "Disable color output.",
	)

	rootCmd.PersistentFlags().BoolP(
		"verbose", "v", false, "Enable debug logging.",
	)

	rootCmd.PersistentFlags().String(
		"log-format", "text", "Log format: text or json.",
	)

	rootCmd.PersistentFlags().BoolP(
		"force", "f", false, "Use the project name exactly as given, without normalizing it.",
	)

	rootCmd.PersistentFlags().Bool(
		"trace-sql", false, "Enable SQL tracing.",
	)

	rootCmd.PersistentFlags().Bool(
		"no-history", false, "Do not record generated projects in the history database.",
	)

	rootCmd.PersistentFlags().Bool(
		"unique", false, "Refuse to record the same project name and target twice.",
	)

	rootCmd.PersistentFlags().StringP(
		"dbms", "D", "sqlite", "DataBase Management System type for the history database",
	)

	rootCmd.PersistentFlags().StringP(
		"dsn", "N", defaultDSN(), "Data Source Name for the history database",
	)

	rootCmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		if flag.Name == "config" {
			// it doesn't make sense to bind the location of the config file to
			// a config inside that file.
			return
		}

		CheckErr(viper.BindPFlag(flag.Name, flag))
	})
}

const fallbackDSN = "file:scaffold.db?cache=shared"

// defaultDSN places the sqlite history database in the user cache directory.
func defaultDSN() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return fallbackDSN
	}

	return "file:" + filepath.Join(cacheDir, "scaffold", "history.db") + "?cache=shared"
}
