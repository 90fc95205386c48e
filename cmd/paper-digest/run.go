// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, select, summarize, and post one digest",
	Long: `Run executes one digest end to end: fetch the last days_back days of papers
from arXiv, select the relevant ones through the threshold cascade, summarize
the top_n with Claude, append research trends and changes since the previous
run, and post the result to Slack.

Failures are reported to the same Slack channel and exit non-zero.`,
	RunE: runDigest,
}

func init() {
	runCmd.Flags().Int("top", 0, "number of papers to summarize (overrides selection.top_n)")
	runCmd.Flags().Int("days-back", 0, "submission window in days (overrides feed.days_back)")

	rootCmd.AddCommand(runCmd)
}

func runDigest(cmd *cobra.Command, args []string) error {
	if top, _ := cmd.Flags().GetInt("top"); top > 0 {
		cfg.Selection.TopN = top
	}
	if days, _ := cmd.Flags().GetInt("days-back"); days > 0 {
		cfg.Feed.DaysBack = days
	}
	if err := requireCredentials(cfg); err != nil {
		return err
	}

	p, closeFn, err := newPipeline(cfg, nil)
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Posted digest %s: %d of %d papers (cascade tier %d, threshold %.1f)\n",
		res.Record.ID, len(res.Record.Selections), res.Record.Fetched, res.Record.Tier, res.Record.Threshold)
	return nil
}

// requireCredentials fails fast when a digest could not be summarized or posted.
func requireCredentials(c *types.DigestConfig) error {
	if c.Summary.APIKey == "" {
		return eris.New("no Anthropic API key: set ANTHROPIC_API_KEY, summary.api_key, or .secrets/anthropic-api-key")
	}
	if c.Delivery.WebhookURL == "" {
		return eris.New("no Slack webhook: set SLACK_WEBHOOK_URL, delivery.webhook_url, or .secrets/slack-webhook-url")
	}
	return nil
}
