// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/paper-digest/internal/trend"
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Print research trends for the current batch",
	Long: `Trends fetches the current batch (or reads --input), aggregates keyword,
category, emerging-technology, and institution counts over every paper, and
compares the top keywords with the last recorded run.`,
	RunE: runTrends,
}

func init() {
	trendsCmd.Flags().String("input", "", "JSON file of documents instead of fetching")
	trendsCmd.Flags().Bool("json", false, "output the report as JSON")

	rootCmd.AddCommand(trendsCmd)
}

func runTrends(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	asJSON, _ := cmd.Flags().GetBool("json")

	_, trendTables, err := loadTables(cfg)
	if err != nil {
		return err
	}
	docs, err := loadDocuments(cmd.Context(), input)
	if err != nil {
		return err
	}

	report := trend.Extract(docs, trendTables, time.Now())

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintln(out, trend.Render(report, trendTables))

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if store == nil {
		return nil
	}
	defer store.Close()

	prior, err := store.Latest(cmd.Context())
	if err != nil {
		zap.L().Warn("could not load previous trends", zap.Error(err))
		return nil
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, trend.RenderDelta(trend.Delta(report, prior), prior != nil))
	return nil
}
