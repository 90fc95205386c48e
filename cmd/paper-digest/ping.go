// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/deliver"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Post a test message to the Slack webhook",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := deliver.NewSlack(cfg.Delivery).SendTest(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Test message posted.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
