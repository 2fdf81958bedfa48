package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/veraison/scaffold/pkg/generate"
	"github.com/veraison/scaffold/pkg/history"
)

var generateCmd = &cobra.Command{
	Use:     "generate NAME",
	Aliases: []string{"gen", "new"},
	Short:   "Generate a new project from a template directory.",
	Long: `Generate a new project from a template directory.

The project is created in a directory named after NAME inside the destination
(the current directory by default). NAME is normalized first: snake_case names
are kept, anything else is converted to kebab-case (use --force to keep NAME
as it is).

Inside template file contents and paths, {{project-name}} is replaced with the
project name and {{package_name}} with its snake_case form. Further
placeholders can be set with --define KEY=VALUE.
	`,
	Args: cobra.ExactArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		CheckErr(runGenerateCommand(cmd, args))
	},
}

func runGenerateCommand(cmd *cobra.Command, args []string) error {
	templatePath, err := cmd.Flags().GetString("template")
	if err != nil {
		return err
	}

	destination, err := cmd.Flags().GetString("destination")
	if err != nil {
		return err
	}

	defines, err := cmd.Flags().GetStringArray("define")
	if err != nil {
		return err
	}

	keep, err := cmd.Flags().GetBool("keep-on-failure")
	if err != nil {
		return err
	}

	options, err := parseDefines(defines)
	if err != nil {
		return err
	}

	if keep {
		options = append(options, generate.OptionKeepOnFailure)
	}

	generator, err := generate.NewGenerator(cliConfig.Generator(options...), cliConfig.Logger())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if !cliConfig.NoHistory {
		store, err := history.Open(ctx, cliConfig.History())
		if err != nil {
			return fmt.Errorf("history: %w", err)
		}
		defer func() { CheckErr(store.Close()) }()

		if err := store.Init(); err != nil {
			return fmt.Errorf("history: %w", err)
		}

		generator.WithHistory(store)
	}

	res, err := generator.Generate(ctx, &generate.Request{
		RawName:     args[0],
		Force:       cliConfig.Force,
		Template:    templatePath,
		Destination: destination,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "created %s (%d files)\n", res.Target, len(res.Files))
	if res.ID != "" {
		fmt.Fprintf(out, "history entry %s\n", res.ID)
	}
	fmt.Fprintln(out, Green("ok"))

	return nil
}

func init() {
	generateCmd.Flags().StringP("template", "t", "", "Path to the template directory.")
	generateCmd.Flags().StringP("destination", "d", ".", "Directory to create the project in.")
	generateCmd.Flags().StringArrayP("define", "s", nil, "Set a template placeholder (KEY=VALUE).")
	generateCmd.Flags().Bool("keep-on-failure", false, "Do not remove a partially generated project.")

	generateCmd.Flags().String("left-delim", "", "Opening placeholder delimiter (default \"{{\").")
	generateCmd.Flags().String("right-delim", "", "Closing placeholder delimiter (default \"}}\").")

	CheckErr(generateCmd.MarkFlagRequired("template"))
	CheckErr(viper.BindPFlag("left-delim", generateCmd.Flags().Lookup("left-delim")))
	CheckErr(viper.BindPFlag("right-delim", generateCmd.Flags().Lookup("right-delim")))

	rootCmd.AddCommand(generateCmd)
}
