// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Count pairs a label with a non-negative occurrence count.
type Count struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// CategoryTrend summarizes one trend category across a batch.
type CategoryTrend struct {
	Name    string `json:"name" yaml:"name"`
	Display string `json:"display" yaml:"display"`

	// Leader is the keyword with the highest count in this category.
	Leader      string `json:"leader" yaml:"leader"`
	LeaderCount int    `json:"leader_count" yaml:"leader_count"`

	// Total is the sum of all keyword counts in this category.
	Total int `json:"total" yaml:"total"`
}

// TrendReport is the aggregate view of one document batch. Every Count
// slice is ordered by count descending, then by first-seen order.
type TrendReport struct {
	TopKeywords      []Count         `json:"top_keywords" yaml:"top_keywords"`
	Categories       []CategoryTrend `json:"categories" yaml:"categories"`
	Emerging         []Count         `json:"emerging" yaml:"emerging"`
	Institutions     []Count         `json:"institutions" yaml:"institutions"`
	SourceCategories []Count         `json:"source_categories" yaml:"source_categories"`
	TotalDocuments   int             `json:"total_documents" yaml:"total_documents"`
	GeneratedAt      time.Time       `json:"generated_at" yaml:"generated_at"`
}

// ChangeKind classifies a keyword's movement between two reports.
type ChangeKind string

const (
	ChangeNew  ChangeKind = "new"
	ChangeUp   ChangeKind = "up"
	ChangeDown ChangeKind = "down"
)

// KeywordChange records how a current top keyword moved against a prior report.
type KeywordChange struct {
	Keyword string     `json:"keyword" yaml:"keyword"`
	Kind    ChangeKind `json:"kind" yaml:"kind"`

	// Amount is the absolute count difference; zero for ChangeNew.
	Amount int `json:"amount" yaml:"amount"`
}
