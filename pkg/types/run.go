// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunStatus is the outcome of one digest run.
type RunStatus string

const (
	RunOK     RunStatus = "ok"
	RunFailed RunStatus = "failed"
)

// Selection is one ranked document chosen by a run.
type Selection struct {
	Rank    int     `json:"rank" yaml:"rank"`
	PaperID string  `json:"paper_id" yaml:"paper_id"`
	Title   string  `json:"title" yaml:"title"`
	Score   float64 `json:"score" yaml:"score"`
}

// RunRecord summarizes one digest run for the history store.
type RunRecord struct {
	ID         string    `json:"id" yaml:"id"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	Status     RunStatus `json:"status" yaml:"status"`
	Error      string    `json:"error,omitempty" yaml:"error,omitempty"`

	Fetched   int     `json:"fetched" yaml:"fetched"`
	Tier      int     `json:"tier" yaml:"tier"`
	Threshold float64 `json:"threshold" yaml:"threshold"`

	// Selections are the documents handed to the summarizer, in rank order.
	Selections []Selection `json:"selections,omitempty" yaml:"selections,omitempty"`

	// Report is the trend report computed over the full batch, when the
	// run got that far.
	Report *TrendReport `json:"report,omitempty" yaml:"report,omitempty"`
}
