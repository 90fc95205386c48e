// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Defaults for the Anthropic backend.
const (
	DefaultModel       = "claude-haiku-4-5-20251001"
	DefaultMaxTokens   = 1000
	DefaultTemperature = 0.3
)

// Anthropic implements Backend with the Messages API.
type Anthropic struct {
	client      sdk.Client
	model       string
	maxTokens   int64
	temperature float64
}

// NewAnthropic returns a backend configured from cfg. Extra options are
// appended after the API key (tests pass option.WithBaseURL).
func NewAnthropic(cfg types.SummaryConfig, opts ...option.RequestOption) *Anthropic {
	reqOpts := append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)

	a := &Anthropic{
		client:      sdk.NewClient(reqOpts...),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
	if a.model == "" {
		a.model = DefaultModel
	}
	if a.maxTokens <= 0 {
		a.maxTokens = DefaultMaxTokens
	}
	return a
}

// Complete sends one user message and returns the concatenated text blocks
// of the reply, trimmed.
func (a *Anthropic) Complete(ctx context.Context, system, prompt string) (string, error) {
	params := sdk.MessageNewParams{
		Model:       sdk.Model(a.model),
		MaxTokens:   a.maxTokens,
		Messages:    []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(prompt))},
		Temperature: sdk.Float(a.temperature),
	}
	if system != "" {
		params.System = []sdk.TextBlockParam{{Text: system}}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", eris.Wrap(err, "summarize: anthropic create message")
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(b.String()), nil
}
