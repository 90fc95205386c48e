// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/tables"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Write the active keyword tables as YAML",
	Long: `Tables writes the scoring and trend tables in effect (the built-ins, or the
files named by tables.scoring_file and tables.trend_file) to scoring.yaml and
trend.yaml in --out-dir. Edit them and point the config at the copies to
override the built-ins; a file replaces its table entirely.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("out-dir")

		scoring, trendTables, err := loadTables(cfg)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "create %s", dir)
		}

		files := []struct {
			name string
			v    any
		}{
			{"scoring.yaml", scoring},
			{"trend.yaml", trendTables},
		}
		for _, f := range files {
			path := filepath.Join(dir, f.name)
			if err := tables.WriteYAML(path, f.v); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		}
		return nil
	},
}

func init() {
	tablesCmd.Flags().String("out-dir", "tables", "directory to write the YAML files into")

	rootCmd.AddCommand(tablesCmd)
}
