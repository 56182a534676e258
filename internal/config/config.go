// Package config defines the process configuration and its loading order.
//
// Configuration layers, lowest precedence first: built-in defaults, a YAML
// file named by GOLAZO_CONFIG, then GOLAZO_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/golazo-bot/golazo/internal/feed"
)

// Notifier channel names accepted in the notifier field.
const (
	NotifierTelegram = "telegram"
	NotifierTwitter  = "twitter"
	NotifierDryRun   = "dryrun"
)

// Config contains everything the process needs to run.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// FeedKey and FeedSecret authenticate against the LiveScore API.
	FeedKey    string `koanf:"feed_key"`
	FeedSecret string `koanf:"feed_secret"`

	// CompetitionID scopes every feed call to one competition.
	CompetitionID string `koanf:"competition_id"`

	// FeedBaseURL overrides the API base URL. Empty means the public API.
	FeedBaseURL string `koanf:"feed_base_url"`

	// Timezone interprets fixture kickoff times, e.g. America/Mexico_City.
	Timezone string `koanf:"timezone"`

	// PollInterval is the time between poll cycles.
	PollInterval time.Duration `koanf:"poll_interval"`

	// MaxBackoff caps the delay after consecutive feed failures.
	MaxBackoff time.Duration `koanf:"max_backoff"`

	// Retention is how long finished matches stay tracked.
	Retention time.Duration `koanf:"retention"`

	// Scope selects which fixtures to track: live, today, week, weekend
	// or round. Round names the round when scope is "round".
	Scope string `koanf:"scope"`
	Round string `koanf:"round"`

	// Notifier picks the delivery channel: telegram, twitter or dryrun.
	Notifier string `koanf:"notifier"`

	// Telegram credentials, used when the notifier is telegram.
	TelegramToken  string `koanf:"telegram_token"`
	TelegramChatID int64  `koanf:"telegram_chat_id"`

	// Twitter credentials, used when the notifier is twitter.
	TwitterConsumerKey    string `koanf:"twitter_consumer_key"`
	TwitterConsumerSecret string `koanf:"twitter_consumer_secret"`
	TwitterAccessToken    string `koanf:"twitter_access_token"`
	TwitterAccessSecret   string `koanf:"twitter_access_secret"`

	// MetricsAddr serves Prometheus metrics when non-empty, e.g. ":9091".
	MetricsAddr string `koanf:"metrics_addr"`
}

// New returns the built-in defaults. Competition 271 is Liga MX.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		CompetitionID: "271",
		Timezone:      "America/Mexico_City",
		PollInterval:  30 * time.Second,
		MaxBackoff:    5 * time.Minute,
		Retention:     6 * time.Hour,
		Scope:         feed.ScopeToday,
		Notifier:      NotifierDryRun,
	}
}

// Load builds a Config by layering defaults, an optional YAML file and
// environment variables.
//
// Environment keys map flat: GOLAZO_POLL_INTERVAL -> poll_interval.
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("GOLAZO_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("GOLAZO_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "golazo_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Notifier {
	case NotifierTelegram, NotifierTwitter, NotifierDryRun:
	default:
		return fmt.Errorf("unknown notifier %q", c.Notifier)
	}
	if _, err := feed.ResolveScope(c.Scope, c.Round, time.Now()); err != nil {
		return err
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive")
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}
