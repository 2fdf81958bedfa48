package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/veraison/scaffold/pkg/generate"
	"github.com/veraison/scaffold/pkg/name"
)

var nameCmd = &cobra.Command{
	Use:   "name NAME",
	Short: "Show the project name that would be used for NAME.",
	Long: `Show the project name that would be used for NAME.

Names already in snake_case are kept as they are; anything else is converted
to kebab-case. With --force, NAME is used verbatim.
	`,
	Args: cobra.ExactArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		CheckErr(runNameCommand(cmd, args))
	},
}

func runNameCommand(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	projectName := name.Normalize(args[0], cliConfig.Force)

	fmt.Fprintln(out, projectName)

	if cliConfig.Verbose {
		fmt.Fprintf(out, "snake: %s\n", name.ToSnakeCase(args[0]))
		fmt.Fprintf(out, "kebab: %s\n", name.ToKebabCase(args[0]))
	}

	if !generate.IsValidProjectName(projectName.String()) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %q cannot be used as a directory name\n",
			Amber("WARNING"), projectName.String())
	}

	return nil
}

func init() {
	rootCmd.AddCommand(nameCmd)
}
