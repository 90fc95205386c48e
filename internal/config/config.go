// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads the digest configuration from file, environment,
// and the secrets directory, and initializes the global logger.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/paper-digest/internal/feed"
	"github.com/pdiddy/paper-digest/internal/history"
	"github.com/pdiddy/paper-digest/internal/relevance"
	"github.com/pdiddy/paper-digest/internal/schedule"
	"github.com/pdiddy/paper-digest/internal/secrets"
	"github.com/pdiddy/paper-digest/internal/summarize"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// EnvPrefix prefixes every environment override (PAPER_DIGEST_FEED_DAYS_BACK).
const EnvPrefix = "PAPER_DIGEST"

// Load reads configuration from file (or paper-digest.yaml in . and
// ~/.config/paper-digest/ when file is empty) and the environment. A
// missing default file is not an error; a missing explicit file is. It
// returns the config file used, if any.
func Load(file string) (*types.DigestConfig, string, error) {
	v := viper.New()

	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return nil, "", eris.Wrap(err, "config: read file")
		}
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("paper-digest")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "paper-digest"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, "", eris.Wrap(err, "config: read file")
		}
	}

	var cfg types.DigestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", eris.Wrap(err, "config: unmarshal")
	}
	if len(cfg.Selection.Tiers) == 0 {
		cfg.Selection.Tiers = append([]types.CascadeTier(nil), relevance.DefaultTiers...)
	}

	if err := Validate(&cfg); err != nil {
		return nil, "", err
	}
	return &cfg, v.ConfigFileUsed(), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("feed.base_url", feed.DefaultBaseURL)
	v.SetDefault("feed.categories", feed.DefaultCategories)
	v.SetDefault("feed.days_back", feed.DefaultDaysBack)
	v.SetDefault("feed.max_results", feed.DefaultMaxResults)
	v.SetDefault("feed.timeout", "30s")
	v.SetDefault("feed.user_agent", feed.DefaultUserAgent)
	v.SetDefault("feed.max_retries", 5)

	v.SetDefault("selection.top_n", 5)

	v.SetDefault("summary.model", summarize.DefaultModel)
	v.SetDefault("summary.api_key", "")
	v.SetDefault("summary.max_retries", 2)
	v.SetDefault("summary.max_tokens", summarize.DefaultMaxTokens)
	v.SetDefault("summary.temperature", summarize.DefaultTemperature)
	v.SetDefault("summary.concurrency", 2)
	v.SetDefault("summary.requests_per_second", 1.0)
	v.SetDefault("summary.abstract_excerpt", 500)

	v.SetDefault("delivery.webhook_url", "")
	v.SetDefault("delivery.channel", "")
	v.SetDefault("delivery.timeout", "30s")

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.db_path", history.DefaultDBPath)

	v.SetDefault("schedule.cron", schedule.DefaultCron)
	v.SetDefault("schedule.metrics_addr", ":9090")

	v.SetDefault("tables.scoring_file", "")
	v.SetDefault("tables.trend_file", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// ApplySecrets fills credentials the configuration left empty from the
// ANTHROPIC_API_KEY and SLACK_WEBHOOK_URL environment variables, then from
// the secrets directory files.
func ApplySecrets(cfg *types.DigestConfig, s map[string]string) {
	if cfg.Summary.APIKey == "" {
		cfg.Summary.APIKey = secrets.Lookup(s, "ANTHROPIC_API_KEY", secrets.AnthropicAPIKey)
	}
	if cfg.Delivery.WebhookURL == "" {
		cfg.Delivery.WebhookURL = secrets.Lookup(s, "SLACK_WEBHOOK_URL", secrets.SlackWebhookURL)
	}
}

// Validate checks values that would otherwise fail deep inside a run.
func Validate(cfg *types.DigestConfig) error {
	var errs []string

	if cfg.Selection.TopN <= 0 {
		errs = append(errs, "selection.top_n must be > 0")
	}
	for i, t := range cfg.Selection.Tiers {
		if t.MinCount < 0 || t.Limit < 0 {
			errs = append(errs, fmt.Sprintf("selection.tiers[%d]: min_count and limit must be >= 0", i))
		}
	}
	if cfg.Feed.DaysBack < 0 || cfg.Feed.MaxResults < 0 {
		errs = append(errs, "feed.days_back and feed.max_results must be >= 0")
	}
	if cfg.Summary.Concurrency < 0 || cfg.Summary.RequestsPerSecond < 0 {
		errs = append(errs, "summary.concurrency and summary.requests_per_second must be >= 0")
	}
	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, "log.level: "+err.Error())
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg types.LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	levelName := cfg.Level
	if levelName == "" {
		levelName = "info"
	}
	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
