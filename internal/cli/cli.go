package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/golazo-bot/golazo/internal/config"
	"github.com/golazo-bot/golazo/internal/feed"
	"github.com/golazo-bot/golazo/internal/logger"
	"github.com/golazo-bot/golazo/internal/metrics"
	"github.com/golazo-bot/golazo/internal/notify"
	"github.com/golazo-bot/golazo/internal/store"
	"github.com/golazo-bot/golazo/internal/tracker"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagFormat  string
	flagVerbose bool
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "golazo",
		Short: "Track live football matches and push event notifications",
		Long: `Polls a live-score feed for one competition, detects match events
(goals, cards, substitutions, half time, full time) by diffing
snapshots, and pushes formatted notifications to Telegram or Twitter.

Configuration comes from GOLAZO_-prefixed environment variables or a
YAML file named by GOLAZO_CONFIG.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(newTrackCmd())
	cmd.AddCommand(newTableCmd())
	cmd.AddCommand(newScorersCmd())
	cmd.AddCommand(newSendTestCmd())

	return cmd
}

// setup loads configuration and builds the logger shared by all commands.
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, os.Stderr)
	logger.SetDefault(log)

	return cfg, log, nil
}

// newFeedClient builds the feed client from configuration.
func newFeedClient(cfg *config.Config, log *logger.Logger) (*feed.Client, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("resolving timezone: %w", err)
	}

	opts := []feed.Option{feed.WithLocation(loc)}
	if cfg.FeedBaseURL != "" {
		opts = append(opts, feed.WithBaseURL(cfg.FeedBaseURL))
	}
	return feed.NewClient(cfg.FeedKey, cfg.FeedSecret, cfg.CompetitionID, log, opts...)
}

// newSender builds the delivery channel named by the configuration.
func newSender(cfg *config.Config) (notify.Sender, error) {
	switch cfg.Notifier {
	case config.NotifierTelegram:
		return notify.NewTelegramSender(cfg.TelegramToken, cfg.TelegramChatID)
	case config.NotifierTwitter:
		return notify.NewTwitterSender(notify.TwitterCredentials{
			APIKey:       cfg.TwitterConsumerKey,
			APISecret:    cfg.TwitterConsumerSecret,
			AccessToken:  cfg.TwitterAccessToken,
			AccessSecret: cfg.TwitterAccessSecret,
		})
	case config.NotifierDryRun:
		return notify.NewDryRunSender(os.Stdout), nil
	}
	return nil, fmt.Errorf("unknown notifier %q", cfg.Notifier)
}

func newTrackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "track",
		Short: "Run the match tracker until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			src, err := newFeedClient(cfg, log)
			if err != nil {
				return err
			}
			sender, err := newSender(cfg)
			if err != nil {
				return err
			}

			scope, err := feed.ResolveScope(cfg.Scope, cfg.Round, time.Now())
			if err != nil {
				return err
			}

			m := metrics.New("golazo")
			dispatcher := notify.NewDispatcher(sender, log)
			tr := tracker.New(src, store.New(), dispatcher, log, m, tracker.Config{
				Interval:   cfg.PollInterval,
				MaxBackoff: cfg.MaxBackoff,
				Retention:  cfg.Retention,
				Scope:      scope,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.MetricsAddr != "" {
				srv := &http.Server{Addr: cfg.MetricsAddr, Handler: m.Handler()}
				go func() {
					log.Info("metrics listening", logger.Fields{"addr": cfg.MetricsAddr})
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						log.Error("metrics server failed", nil, err)
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					srv.Shutdown(shutdownCtx)
				}()
			}

			log.Info("tracking competition", logger.Fields{
				"competition_id": cfg.CompetitionID,
				"scope":          cfg.Scope,
				"notifier":       cfg.Notifier,
			})
			tr.Run(ctx)
			return nil
		},
	}
}

func newTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the competition standings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			client, err := newFeedClient(cfg, log)
			if err != nil {
				return err
			}

			rows, err := client.LeagueTable(cmd.Context())
			if err != nil {
				return err
			}
			return WriteTable(os.Stdout, rows, OutputFormat(flagFormat))
		},
	}
}

func newScorersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scorers",
		Short: "Print the competition's top scorers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			client, err := newFeedClient(cfg, log)
			if err != nil {
				return err
			}

			scorers, err := client.TopScorers(cmd.Context())
			if err != nil {
				return err
			}
			return WriteScorers(os.Stdout, scorers, OutputFormat(flagFormat))
		},
	}
}

func newSendTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send-test",
		Short: "Send a test message through the configured notifier",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			sender, err := newSender(cfg)
			if err != nil {
				return err
			}

			msg := fmt.Sprintf("🤖 <b>golazo</b>: prueba de notificación (%s)",
				time.Now().Format("2006-01-02 15:04:05"))
			if err := sender.Send(cmd.Context(), msg); err != nil {
				return fmt.Errorf("sending test message: %w", err)
			}
			fmt.Println("Test message sent.")
			return nil
		},
	}
}
