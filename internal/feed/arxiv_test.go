// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-digest/internal/httputil"
	"github.com/pdiddy/paper-digest/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:arxiv="http://arxiv.org/schemas/atom">
  <title>ArXiv Query</title>
  <id>http://arxiv.org/api/query</id>
  <updated>2026-10-14T00:00:00-04:00</updated>
  <entry>
    <id>http://arxiv.org/abs/2610.01234v2</id>
    <updated>2026-10-13T18:00:00Z</updated>
    <published>2026-10-12T17:59:59Z</published>
    <title>A Copilot for
      Code Generation</title>
    <summary>  We build a coding
  assistant.
</summary>
    <author><name>Ada Lovelace</name></author>
    <author><name> Alan Turing </name></author>
    <link href="http://arxiv.org/abs/2610.01234v2" rel="alternate" type="text/html"/>
    <link title="pdf" href="http://arxiv.org/pdf/2610.01234v2" rel="related" type="application/pdf"/>
    <arxiv:primary_category term="cs.SE" scheme="http://arxiv.org/schemas/atom"/>
    <category term="cs.SE" scheme="http://arxiv.org/schemas/atom"/>
    <category term="cs.AI" scheme="http://arxiv.org/schemas/atom"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2610.05555v1</id>
    <published>2026-10-11T10:00:00Z</published>
    <title>No PDF Here</title>
    <summary>Short.</summary>
    <link href="http://arxiv.org/abs/2610.05555v1" rel="alternate" type="text/html"/>
    <category term="cs.LG" scheme="http://arxiv.org/schemas/atom"/>
  </entry>
  <entry>
    <id>urn:not-an-arxiv-entry</id>
    <title>Skipped</title>
  </entry>
</feed>`

var fixedNow = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

func TestFetch(t *testing.T) {
	var gotQuery url.Values
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer ts.Close()

	f := &ArxivFetcher{
		Client: ts.Client(),
		Config: types.FeedConfig{BaseURL: ts.URL, MaxResults: 10},
		Now:    func() time.Time { return fixedNow },
	}

	docs, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	d := docs[0]
	assert.Equal(t, "2610.01234", d.ID)
	assert.Equal(t, "A Copilot for Code Generation", d.Title)
	assert.Equal(t, "We build a coding assistant.", d.Abstract)
	assert.Equal(t, []string{"Ada Lovelace", "Alan Turing"}, d.Authors)
	assert.Equal(t, "2026-10-12T17:59:59Z", d.PublishedAt)
	assert.Equal(t, "2026-10-13T18:00:00Z", d.UpdatedAt)
	assert.Equal(t, []string{"cs.SE", "cs.AI"}, d.Categories)
	assert.Equal(t, "http://arxiv.org/abs/2610.01234v2", d.Link)
	assert.Equal(t, "http://arxiv.org/pdf/2610.01234v2", d.PDFLink)
	assert.False(t, d.Scored)

	assert.Equal(t, "2610.05555", docs[1].ID)
	assert.Empty(t, docs[1].PDFLink)
	assert.Equal(t, docs[1].PublishedAt, docs[1].UpdatedAt)

	assert.Equal(t, "10", gotQuery.Get("max_results"))
	assert.Equal(t, "submittedDate", gotQuery.Get("sortBy"))
	assert.Equal(t, "descending", gotQuery.Get("sortOrder"))
	assert.Equal(t, "0", gotQuery.Get("start"))
	assert.Contains(t, gotQuery.Get("search_query"), "cat:cs.AI OR cat:cs.LG")
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			wantErr: "HTTP 500",
		},
		{
			name:    "rate limited past retries",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTooManyRequests) },
			wantErr: "HTTP 429",
		},
		{
			name:    "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("not xml at all")) },
			wantErr: "feed: parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			f := &ArxivFetcher{
				Client: ts.Client(),
				Config: types.FeedConfig{BaseURL: ts.URL, MaxRetries: 1},
				Now:    func() time.Time { return fixedNow },
			}
			_, err := f.Fetch(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFetchEmptyFeed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<feed xmlns="http://www.w3.org/2005/Atom"><title>ArXiv Query</title></feed>`))
	}))
	defer ts.Close()

	f := NewArxivFetcher(types.FeedConfig{BaseURL: ts.URL})
	docs, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestSearchQuery(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		daysBack   int
		want       string
	}{
		{
			name: "defaults",
			want: "(cat:cs.AI OR cat:cs.LG OR cat:cs.CL OR cat:cs.CV OR cat:cs.NE) AND submittedDate:[20261013* TO 20261014*]",
		},
		{
			name:       "custom window",
			categories: []string{"cs.SE"},
			daysBack:   7,
			want:       "(cat:cs.SE) AND submittedDate:[20261007* TO 20261014*]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SearchQuery(tt.categories, tt.daysBack, fixedNow))
		})
	}
}

func TestQueryURLDefaults(t *testing.T) {
	f := &ArxivFetcher{}
	u := f.queryURL(fixedNow)
	assert.True(t, strings.HasPrefix(u, DefaultBaseURL+"?"))
	assert.Contains(t, u, "max_results=50")
}

func TestExtractArxivID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://arxiv.org/abs/2301.07041v1", "2301.07041"},
		{"http://arxiv.org/abs/2301.07041v12", "2301.07041"},
		{"http://arxiv.org/abs/2301.07041", "2301.07041"},
		{"http://arxiv.org/abs/hep-th/9901001v1", "hep-th/9901001"},
		{"http://arxiv.org/abs/cs/0112017v1", "cs/0112017"},
		{"urn:other", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractArxivID(tt.in), tt.in)
	}
}

func TestNormalizeSpace(t *testing.T) {
	assert.Equal(t, "a b c", normalizeSpace("  a\n  b\tc \n"))
	assert.Equal(t, "", normalizeSpace(" \n "))
}
