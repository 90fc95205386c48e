// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"strings"
	"time"
)

const divider = "---"

const footer = `:microscope: _An automated digest of the latest AI research._
:email: _Questions or requests? Reach out to the maintainer._`

// Message holds the parts of one digest post.
type Message struct {
	Date      time.Time
	Summaries []string

	// Trends and Delta are rendered trend sections; empty parts are omitted.
	Trends string
	Delta  string
}

// Compose assembles the Slack text: a dated header, the summaries, the
// trend sections, and a footer, separated by dividers.
func Compose(m Message) string {
	var b strings.Builder

	b.WriteString(":robot_face: *Daily AI paper digest, ")
	b.WriteString(m.Date.Format("January 2, 2006"))
	b.WriteString("*\n\nToday's notable AI papers.\n\n")
	b.WriteString(divider)
	b.WriteString("\n\n")

	b.WriteString(strings.Join(m.Summaries, "\n\n"))
	b.WriteString("\n")

	for _, section := range []string{m.Trends, m.Delta} {
		if strings.TrimSpace(section) == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(divider)
		b.WriteString("\n")
		b.WriteString(section)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n")
	b.WriteString(footer)
	b.WriteString("\n")
	return b.String()
}
