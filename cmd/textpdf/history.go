// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/textpdf/internal/history"
	"github.com/pdiddy/textpdf/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past conversion runs",
	Long: `History shows conversion runs recorded in the SQLite database given by
--history (or history.db in textpdf.yaml), newest first. Runs are only
recorded when a history database is configured.`,
	RunE: runHistoryList,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to YAML or JSON",
	RunE:  runHistoryExport,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete runs older than a given age",
	RunE:  runHistoryPrune,
}

func init() {
	historyCmd.PersistentFlags().String("input", "", "only runs of this input file")
	historyCmd.PersistentFlags().String("status", "", "only runs with this status: converted or failed")

	historyCmd.Flags().Int("limit", 0, "maximum runs to list (0 = history.limit, default 20)")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
	historyExportCmd.Flags().Int("limit", 0, "maximum runs to export (0 = all)")

	historyPruneCmd.Flags().Duration("older-than", 30*24*time.Hour, "delete runs started longer ago than this")

	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory() (*history.Store, types.HistoryConfig, error) {
	cfg := loadConfig().History
	if cfg.DB == "" {
		return nil, cfg, fmt.Errorf("no history database configured: pass --history or set history.db")
	}
	store, err := history.Open(cfg.DB)
	return store, cfg, err
}

func historyQuery(cmd *cobra.Command) (history.QueryOptions, error) {
	input, _ := cmd.Flags().GetString("input")
	status, _ := cmd.Flags().GetString("status")
	opts := history.QueryOptions{
		Input:  input,
		Status: types.ConversionStatus(status),
	}
	switch opts.Status {
	case "", types.ConversionDone, types.ConversionFailed:
	default:
		return opts, fmt.Errorf("unknown status %q: use converted or failed", status)
	}
	opts.Limit, _ = cmd.Flags().GetInt("limit")
	return opts, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	opts, err := historyQuery(cmd)
	if err != nil {
		return err
	}
	store, cfg, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	if opts.Limit == 0 {
		opts.Limit = cfg.Limit
	}
	runs, err := store.List(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRuns(cmd, runs, jsonOutput)
}

func formatRuns(cmd *cobra.Command, runs []types.Run, jsonOutput bool) error {
	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(out, "%-20s  %-9s  %-30s  %5s  %7s  %s\n",
		"Started", "Status", "Input", "Rows", "Dropped", "Output")
	fmt.Fprintln(out, strings.Repeat("-", 100))

	for _, r := range runs {
		input := r.Input
		if len(input) > 30 {
			input = "..." + input[len(input)-27:]
		}
		output := r.Output
		if r.Error != "" {
			output = r.Error
		}
		fmt.Fprintf(out, "%-20s  %-9s  %-30s  %5d  %7d  %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Status, input, r.Rows, r.Dropped, output)
	}

	fmt.Fprintf(out, "\n%d runs\n", len(runs))
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	opts, err := historyQuery(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	path, _ := cmd.Flags().GetString("output")

	store, _, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	if path == "" {
		return store.Export(cmd.Context(), cmd.OutOrStdout(), format, opts)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := store.Export(cmd.Context(), f, format, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", path)
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	age, _ := cmd.Flags().GetDuration("older-than")

	store, _, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Prune(cmd.Context(), time.Now().Add(-age))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d run(s)\n", n)
	return nil
}
