// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-digest pipeline:
// fetched documents, the keyword tables that drive scoring and trend
// aggregation, trend reports, and stage configuration.
package types

// Document is one fetched paper, normalized by the feed stage.
type Document struct {
	// ID is the arXiv identifier without a version suffix (e.g. "2301.07041").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title with embedded newlines collapsed.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract with embedded newlines collapsed.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists author display names in byline order.
	Authors []string `json:"authors" yaml:"authors"`

	// PublishedAt is the publication timestamp as received (e.g. "2024-05-01T17:59:59Z").
	PublishedAt string `json:"published_at" yaml:"published_at"`

	// UpdatedAt is the last-updated timestamp as received.
	UpdatedAt string `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`

	// Categories lists the subject-area tags (e.g. "cs.SE").
	Categories []string `json:"categories" yaml:"categories"`

	// Link is the abstract page URL.
	Link string `json:"link" yaml:"link"`

	// PDFLink is the PDF URL, if the feed provided one.
	PDFLink string `json:"pdf_link,omitempty" yaml:"pdf_link,omitempty"`

	// RelevanceScore is assigned by the relevance scorer. Only meaningful
	// when Scored is true; rescoring overwrites it.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// Scored reports whether RelevanceScore has been assigned.
	Scored bool `json:"scored" yaml:"scored"`
}
