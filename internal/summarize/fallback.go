// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"fmt"
	"strings"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Fallback formats a summary from the document's own metadata, used when
// the backend cannot produce one. The abstract is cut to excerpt runes.
func Fallback(doc types.Document, excerpt int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*:page_facing_up: %s*\n\n", doc.Title)
	fmt.Fprintf(&b, "*:busts_in_silhouette: Authors:* %s\n", authorLine(doc.Authors))
	fmt.Fprintf(&b, "*:label: Categories:* %s\n\n", strings.Join(doc.Categories, ", "))
	fmt.Fprintf(&b, "*:memo: Abstract:*\n%s\n\n", cut(doc.Abstract, excerpt))
	fmt.Fprintf(&b, "*:paperclip: Paper:* %s\n\n", doc.Link)
	b.WriteString("_(summary generation failed, showing the original abstract)_")
	return b.String()
}

func cut(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
