// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent digest runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if store == nil {
		return eris.New("history is disabled (history.enabled=false)")
	}
	defer store.Close()

	runs, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	formatRuns(runs, out)
	return nil
}

// formatRuns writes runs as a table, newest first.
func formatRuns(runs []types.RunRecord, w io.Writer) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-36s  %-16s  %-6s  %-7s  %-8s  %-4s  %s\n",
		"ID", "Started", "Status", "Fetched", "Selected", "Tier", "Top paper")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for _, r := range runs {
		top := r.Error
		if len(r.Selections) > 0 {
			top = r.Selections[0].Title
		}
		if len(top) > 40 {
			top = top[:37] + "..."
		}
		fmt.Fprintf(w, "%-36s  %-16s  %-6s  %-7d  %-8d  %-4d  %s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04"), r.Status,
			r.Fetched, len(r.Selections), r.Tier, top)
	}
}
