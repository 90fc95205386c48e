// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed fetches recently submitted papers from the arXiv Atom API
// and normalizes them into documents.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed/atom"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pdiddy/paper-digest/internal/httputil"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// Defaults applied when the configuration leaves a field unset.
const (
	DefaultBaseURL    = "http://export.arxiv.org/api/query"
	DefaultMaxResults = 50
	DefaultDaysBack   = 1
	DefaultUserAgent  = "paper-digest/0.1"
)

// DefaultCategories are the arXiv categories OR-ed into the query.
var DefaultCategories = []string{"cs.AI", "cs.LG", "cs.CL", "cs.CV", "cs.NE"}

// ArxivFetcher queries the arXiv API for the most recent submissions.
type ArxivFetcher struct {
	Client *http.Client
	Config types.FeedConfig

	// Now returns the end of the submission window. Defaults to time.Now.
	Now func() time.Time
}

// NewArxivFetcher returns a fetcher for cfg with an HTTP client honouring
// cfg.Timeout.
func NewArxivFetcher(cfg types.FeedConfig) *ArxivFetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ArxivFetcher{
		Client: &http.Client{Timeout: timeout},
		Config: cfg,
	}
}

// Fetch returns the documents submitted within the configured window,
// newest first.
func (f *ArxivFetcher) Fetch(ctx context.Context) ([]types.Document, error) {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	u := f.queryURL(now().UTC())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, eris.Wrap(err, "feed: create request")
	}
	ua := f.Config.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := httputil.DoWithRetry(ctx, client, req, f.Config.MaxRetries)
	if err != nil {
		return nil, eris.Wrap(err, "feed: arXiv request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("feed: arXiv returned HTTP %d", resp.StatusCode)
	}

	parsed, err := (&atom.Parser{}).Parse(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "feed: parse arXiv response")
	}

	docs := make([]types.Document, 0, len(parsed.Entries))
	for _, entry := range parsed.Entries {
		doc, ok := toDocument(entry)
		if !ok {
			zap.L().Debug("feed: skipping entry without arXiv id", zap.String("id", entry.ID))
			continue
		}
		docs = append(docs, doc)
	}

	zap.L().Info("feed: fetched papers", zap.Int("entries", len(parsed.Entries)), zap.Int("documents", len(docs)))
	return docs, nil
}

// queryURL builds the arXiv query for the window ending at end.
func (f *ArxivFetcher) queryURL(end time.Time) string {
	base := f.Config.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	maxResults := f.Config.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	params := url.Values{}
	params.Set("search_query", SearchQuery(f.Config.Categories, f.Config.DaysBack, end))
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")
	return base + "?" + params.Encode()
}

// SearchQuery returns the search_query value: the categories OR-ed
// together and AND-ed with a submittedDate window of daysBack days ending
// at end.
func SearchQuery(categories []string, daysBack int, end time.Time) string {
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	if daysBack <= 0 {
		daysBack = DefaultDaysBack
	}

	cats := make([]string, len(categories))
	for i, c := range categories {
		cats[i] = "cat:" + c
	}
	start := end.AddDate(0, 0, -daysBack)
	return fmt.Sprintf("(%s) AND submittedDate:[%s* TO %s*]",
		strings.Join(cats, " OR "), start.Format("20060102"), end.Format("20060102"))
}

func toDocument(entry *atom.Entry) (types.Document, bool) {
	id := extractArxivID(entry.ID)
	if id == "" {
		return types.Document{}, false
	}

	doc := types.Document{
		ID:          id,
		Title:       normalizeSpace(entry.Title),
		Abstract:    normalizeSpace(entry.Summary),
		PublishedAt: entry.Published,
		UpdatedAt:   entry.Updated,
	}
	if doc.UpdatedAt == "" {
		doc.UpdatedAt = doc.PublishedAt
	}
	for _, a := range entry.Authors {
		if a == nil {
			continue
		}
		if name := normalizeSpace(a.Name); name != "" {
			doc.Authors = append(doc.Authors, name)
		}
	}
	for _, c := range entry.Categories {
		if c != nil && c.Term != "" {
			doc.Categories = append(doc.Categories, c.Term)
		}
	}
	for _, l := range entry.Links {
		if l == nil {
			continue
		}
		switch {
		case l.Type == "application/pdf" && doc.PDFLink == "":
			doc.PDFLink = l.Href
		case (l.Rel == "" || l.Rel == "alternate") && doc.Link == "":
			doc.Link = l.Href
		}
	}
	if doc.Link == "" {
		doc.Link = entry.ID
	}
	return doc, true
}

// normalizeSpace collapses runs of whitespace, including the line breaks
// arXiv wraps titles and abstracts with.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// extractArxivID pulls the identifier from an abs URL and strips the
// version suffix ("http://arxiv.org/abs/2301.07041v2" → "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
