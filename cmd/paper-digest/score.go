// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/feed"
	"github.com/pdiddy/paper-digest/internal/relevance"
	"github.com/pdiddy/paper-digest/pkg/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score and rank papers without summarizing or posting",
	Long: `Score fetches the current batch from arXiv (or reads documents from a JSON
file with --input), runs the threshold cascade, and prints the selection.
--explain prints every contribution to each selected paper's score.`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().String("input", "", "JSON file of documents to score instead of fetching")
	scoreCmd.Flags().Bool("explain", false, "print the score breakdown of each selected paper")
	scoreCmd.Flags().Bool("json", false, "output the selection as JSON")
	scoreCmd.Flags().Bool("all", false, "list every document, not only the cascade selection")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	explain, _ := cmd.Flags().GetBool("explain")
	asJSON, _ := cmd.Flags().GetBool("json")
	all, _ := cmd.Flags().GetBool("all")

	scoring, _, err := loadTables(cfg)
	if err != nil {
		return err
	}
	docs, err := loadDocuments(cmd.Context(), input)
	if err != nil {
		return err
	}

	asOf := time.Now()
	res := relevance.Cascade(docs, scoring, cfg.Selection.Tiers, asOf)
	selected := res.Documents
	if all {
		selected = relevance.Select(docs, scoring, math.Inf(-1), asOf)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return relevance.FormatJSON(selected, out)
	}

	relevance.FormatTable(selected, out)
	fmt.Fprintf(out, "Cascade tier %d accepted (threshold %.1f, relaxed=%t) from %d documents\n",
		res.Tier, res.Threshold, res.Relaxed(), len(docs))

	if explain {
		fmt.Fprintln(out)
		for _, d := range selected {
			relevance.FormatBreakdown(d, relevance.Explain(d, scoring, asOf), out)
		}
	}
	return nil
}

// loadDocuments reads documents from a JSON file, or fetches them from
// arXiv when path is empty.
func loadDocuments(ctx context.Context, path string) ([]types.Document, error) {
	if path == "" {
		return feed.NewArxivFetcher(cfg.Feed).Fetch(ctx)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}
	var docs []types.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, eris.Wrapf(err, "parse %s", path)
	}
	return docs, nil
}
