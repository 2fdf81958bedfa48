package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/veraison/scaffold/pkg/history"
	"github.com/veraison/scaffold/pkg/model"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Operations on the record of generated projects.",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated projects, most recent first.",
	Args:  cobra.NoArgs,

	Run: func(cmd *cobra.Command, args []string) {
		CheckErr(runHistoryListCommand(cmd))
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show UUID",
	Short: "Show details of a generated project.",
	Args:  cobra.ExactArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		CheckErr(runHistoryShowCommand(cmd, args))
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete UUID [UUID ...]",
	Short: "Delete history entries (generated files are left untouched).",
	Args:  cobra.MinimumNArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		CheckErr(runHistoryDeleteCommand(cmd, args))
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every history entry (generated files are left untouched).",
	Args:  cobra.NoArgs,

	Run: func(cmd *cobra.Command, args []string) {
		store, err := openHistory()
		CheckErr(err)
		defer func() { CheckErr(store.Close()) }()

		CheckErr(runHistoryClear(store, cmd.OutOrStdout()))
	},
}

func openHistory() (*history.Store, error) {
	return history.Open(context.Background(), cliConfig.History())
}

func runHistoryListCommand(cmd *cobra.Command) error {
	projectName, err := cmd.Flags().GetString("name")
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { CheckErr(store.Close()) }()

	gens, err := store.List(history.Filter{ProjectName: projectName, Limit: limit})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderGenerations(gens))

	return nil
}

func renderGenerations(gens []*model.Generation) string {
	header := table.Row{"uuid", "project_name", "raw_name", "forced", "target", "files", "time_added"}

	tw := table.NewWriter()
	tw.AppendHeader(header)
	for _, gen := range gens {
		tw.AppendRow(table.Row{
			gen.UUID,
			gen.ProjectName,
			gen.RawName,
			gen.Forced,
			gen.Target,
			gen.FileCount,
			gen.TimeAdded.Local().Format(time.DateTime),
		})
	}

	colConfigs := make([]table.ColumnConfig, 0, len(header))
	for _, h := range header {
		colConfigs = append(colConfigs, table.ColumnConfig{
			Name:        h.(string),
			AlignHeader: text.AlignCenter,
			VAlign:      text.VAlignMiddle,
		})
	}
	tw.SetColumnConfigs(colConfigs)
	tw.SetStyle(table.StyleLight)

	return tw.Render()
}

func runHistoryShowCommand(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { CheckErr(store.Close()) }()

	gen, err := store.Get(args[0])
	if err != nil {
		return err
	}

	for _, part := range gen.RenderParts() {
		fmt.Fprintf(cmd.OutOrStdout(), "%12s: %s\n", part[0], part[1])
	}

	return nil
}

func runHistoryDeleteCommand(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { CheckErr(store.Close()) }()

	for _, genUUID := range args {
		if err := store.Delete(genUUID); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", genUUID)
	}

	fmt.Fprintln(cmd.OutOrStdout(), Green("ok"))

	return nil
}

func runHistoryClear(store *history.Store, out io.Writer) error {
	if err := store.Clear(); err != nil {
		return err
	}

	fmt.Fprintln(out, Green("ok"))

	return nil
}

func init() {
	historyListCmd.Flags().StringP("name", "n", "", "Only list projects with this (normalized) name.")
	historyListCmd.Flags().IntP("limit", "l", 0, "Maximum number of entries to list (0 means no limit).")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)

	rootCmd.AddCommand(historyCmd)
}
