// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-digest CLI. The run
// command posts one digest; serve runs digests on a cron schedule. score,
// trends, history, and ping inspect each stage on its own.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/paper-digest/internal/config"
	"github.com/pdiddy/paper-digest/internal/secrets"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg is the configuration loaded before every command.
var cfg *types.DigestConfig

// rootCmd is the base command for the paper-digest CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-digest",
	Short: "Daily digest of relevant AI papers from arXiv, posted to Slack",
	Long: `paper-digest fetches recent arXiv papers, scores them against weighted
keyword tables, summarizes the best ones with Claude, and posts a digest with
research trends to a Slack channel.

Configuration is read from paper-digest.yaml (in . or ~/.config/paper-digest/),
PAPER_DIGEST_* environment variables, and credential files in .secrets/.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		secretsDir, _ := cmd.Flags().GetString("secrets-dir")

		loaded, used, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		s, err := secrets.Load(secretsDir)
		if err != nil {
			return err
		}
		config.ApplySecrets(loaded, s)

		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			loaded.Log.Level = lvl
		}
		if err := config.InitLogger(loaded.Log); err != nil {
			return err
		}

		if used != "" {
			zap.L().Debug("using config file", zap.String("path", used))
		}
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			zap.L().Debug("loaded secrets", zap.Strings("keys", keys))
		}

		cfg = loaded
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-digest.yaml or ~/.config/paper-digest/paper-digest.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of credential files")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
