package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// FeedConfig holds settings for the arXiv fetch stage.
type FeedConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the arXiv API query endpoint.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Categories are OR-ed into the search query (e.g. "cs.AI").
	Categories []string `json:"categories" yaml:"categories" mapstructure:"categories"`

	// DaysBack is the submission window, ending now (default 1).
	DaysBack int `json:"days_back" yaml:"days_back" mapstructure:"days_back"`

	// MaxResults caps the number of entries requested (default 50).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// MaxRetries bounds retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// CascadeTier is one step of the threshold cascade. The tier is accepted
// when at least MinCount documents reach MinScore. Limit > 0 truncates
// the accepted result.
type CascadeTier struct {
	MinScore float64 `json:"min_score" yaml:"min_score" mapstructure:"min_score"`
	MinCount int     `json:"min_count" yaml:"min_count" mapstructure:"min_count"`
	Limit    int     `json:"limit" yaml:"limit" mapstructure:"limit"`
}

// SelectionConfig holds settings for relevance selection.
type SelectionConfig struct {
	// TopN is the number of selected documents handed to the summarizer (default 5).
	TopN int `json:"top_n" yaml:"top_n" mapstructure:"top_n"`

	// Tiers is the threshold cascade, strictest first.
	Tiers []CascadeTier `json:"tiers" yaml:"tiers" mapstructure:"tiers"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-haiku-4-5-20251001").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// SummaryConfig holds settings for the summarization stage.
type SummaryConfig struct {
	AIConfig `yaml:",inline" mapstructure:",squash"`

	// MaxTokens caps the length of each generated summary (default 1000).
	MaxTokens int64 `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`

	// Temperature is the sampling temperature (default 0.3).
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`

	// Concurrency bounds in-flight API calls (default 2).
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`

	// RequestsPerSecond paces API calls; zero disables pacing.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// AbstractExcerpt is the abstract length kept in fallback summaries (default 500).
	AbstractExcerpt int `json:"abstract_excerpt" yaml:"abstract_excerpt" mapstructure:"abstract_excerpt"`
}

// DeliveryConfig holds settings for the Slack delivery stage.
type DeliveryConfig struct {
	// WebhookURL is the Slack incoming-webhook URL.
	WebhookURL string `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty" mapstructure:"webhook_url"`

	// Channel optionally overrides the webhook's default channel.
	Channel string `json:"channel,omitempty" yaml:"channel,omitempty" mapstructure:"channel"`

	// Timeout is the HTTP request timeout (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// HistoryConfig holds settings for the run-history store.
type HistoryConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	DBPath  string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`
}

// ScheduleConfig holds settings for daemon mode.
type ScheduleConfig struct {
	// Cron is a cron expression for digest runs (default "0 9 * * 1-5").
	Cron string `json:"cron" yaml:"cron" mapstructure:"cron"`

	// MetricsAddr is the listen address for /metrics and /healthz; empty disables it.
	MetricsAddr string `json:"metrics_addr" yaml:"metrics_addr" mapstructure:"metrics_addr"`
}

// TablesConfig points at optional YAML overrides for the built-in tables.
type TablesConfig struct {
	ScoringFile string `json:"scoring_file,omitempty" yaml:"scoring_file,omitempty" mapstructure:"scoring_file"`
	TrendFile   string `json:"trend_file,omitempty" yaml:"trend_file,omitempty" mapstructure:"trend_file"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// DigestConfig groups all stage configurations for the pipeline.
type DigestConfig struct {
	Feed      FeedConfig      `json:"feed" yaml:"feed" mapstructure:"feed"`
	Selection SelectionConfig `json:"selection" yaml:"selection" mapstructure:"selection"`
	Summary   SummaryConfig   `json:"summary" yaml:"summary" mapstructure:"summary"`
	Delivery  DeliveryConfig  `json:"delivery" yaml:"delivery" mapstructure:"delivery"`
	History   HistoryConfig   `json:"history" yaml:"history" mapstructure:"history"`
	Schedule  ScheduleConfig  `json:"schedule" yaml:"schedule" mapstructure:"schedule"`
	Tables    TablesConfig    `json:"tables" yaml:"tables" mapstructure:"tables"`
	Log       LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
}
