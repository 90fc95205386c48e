// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"strings"
	"text/template"

	"github.com/rotisserie/eris"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// systemPrompt frames the model as a research explainer.
const systemPrompt = "You are an AI research expert who explains papers clearly and conveys why they matter to working software engineers."

var summaryPromptTmpl = template.Must(template.New("summary").Parse(`Summarize the following AI paper clearly, including the technical content, using the structure below.

Title: {{.Title}}
Authors: {{.Authors}}
Categories: {{.Categories}}

Abstract:
{{.Abstract}}

Use exactly this format:
*:page_facing_up: {{.Title}}*

*:dart: Problem:*
(the research goal or problem in 1-2 lines)

*:bulb: Approach:*
(the key ideas and method in 2-3 lines)

*:bar_chart: Results:*
(experimental results or improvements in 1-2 lines)

*:rocket: Why it matters:*
(the significance and impact in 1-2 lines)

*:paperclip: Paper:* {{.Link}}
`))

type promptData struct {
	Title      string
	Authors    string
	Categories string
	Abstract   string
	Link       string
}

func renderPrompt(doc types.Document) (string, error) {
	var b strings.Builder
	err := summaryPromptTmpl.Execute(&b, promptData{
		Title:      doc.Title,
		Authors:    authorLine(doc.Authors),
		Categories: strings.Join(doc.Categories, ", "),
		Abstract:   doc.Abstract,
		Link:       doc.Link,
	})
	if err != nil {
		return "", eris.Wrap(err, "summarize: render prompt")
	}
	return b.String(), nil
}

// authorLine lists the first three authors, adding "et al." when there are
// more.
func authorLine(authors []string) string {
	if len(authors) <= 3 {
		return strings.Join(authors, ", ")
	}
	return strings.Join(authors[:3], ", ") + " et al."
}
