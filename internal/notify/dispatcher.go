package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/golazo-bot/golazo/internal/logger"
	"github.com/golazo-bot/golazo/internal/match"
)

const (
	defaultMaxAttempts     = 4
	defaultInitialInterval = 1 * time.Second
	defaultMaxInterval     = 30 * time.Second
)

// Dispatcher formats events and submits them through a Sender with bounded
// retry on transient failures.
type Dispatcher struct {
	sender          Sender
	log             *logger.Logger
	maxAttempts     uint64
	initialInterval time.Duration
	maxInterval     time.Duration
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithMaxAttempts bounds delivery attempts per event (first try included).
func WithMaxAttempts(n uint64) DispatcherOption {
	return func(d *Dispatcher) { d.maxAttempts = n }
}

// WithRetryIntervals sets the initial and maximum backoff intervals.
func WithRetryIntervals(initial, max time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		d.initialInterval = initial
		d.maxInterval = max
	}
}

// NewDispatcher creates a dispatcher delivering through sender.
func NewDispatcher(sender Sender, log *logger.Logger, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		sender:          sender,
		log:             log,
		maxAttempts:     defaultMaxAttempts,
		initialInterval: defaultInitialInterval,
		maxInterval:     defaultMaxInterval,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch formats ev and submits it, retrying transient failures with
// exponential backoff up to the attempt ceiling. A non-nil return means the
// event was not delivered; the caller keeps its fingerprint marked reported
// regardless, so the failure can never turn into a double notification.
func (d *Dispatcher) Dispatch(ctx context.Context, ev match.Event) error {
	text := FormatEvent(ev)

	attempt := 0
	op := func() error {
		attempt++
		err := d.sender.Send(ctx, text)
		if err == nil {
			return nil
		}
		if IsPermanent(err) {
			return backoff.Permanent(err)
		}
		d.log.Warn("delivery attempt failed", logger.Fields{
			"match_id": ev.MatchID,
			"kind":     string(ev.Kind),
			"attempt":  attempt,
			"error":    err.Error(),
		})
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = d.initialInterval
	bo.MaxInterval = d.maxInterval

	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, d.maxAttempts-1), ctx))
	if err != nil {
		return fmt.Errorf("dispatching %s for match %s: %w", ev.Kind, ev.MatchID, err)
	}
	return nil
}
