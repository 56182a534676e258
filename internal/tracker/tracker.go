// Package tracker runs the polling loop: fetch snapshots from the feed,
// diff them against stored state, and hand new events to the dispatcher.
//
// One tracker owns one store. Detection and store mutation happen on the
// scheduling goroutine only; delivery fans out per match so a slow channel
// never delays the next poll of other matches.
package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golazo-bot/golazo/internal/feed"
	"github.com/golazo-bot/golazo/internal/logger"
	"github.com/golazo-bot/golazo/internal/match"
	"github.com/golazo-bot/golazo/internal/metrics"
	"github.com/golazo-bot/golazo/internal/store"
)

const (
	defaultInterval       = 30 * time.Second
	defaultMaxBackoff     = 5 * time.Minute
	defaultRetention      = 6 * time.Hour
	defaultPreMatchLead   = time.Hour
	defaultPreMatchWindow = 10 * time.Minute
)

// Dispatcher delivers one formatted event. A non-nil return means the event
// was not delivered after all retries.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev match.Event) error
}

// Config carries the tracker's scheduling knobs. Zero fields take defaults.
type Config struct {
	// Interval between poll cycles.
	Interval time.Duration
	// MaxBackoff caps the delay after consecutive fetch failures.
	MaxBackoff time.Duration
	// Retention is how long finished matches stay in the store.
	Retention time.Duration
	// PreMatchLead is how far before kickoff the reminder fires.
	PreMatchLead time.Duration
	// PreMatchWindow is the tolerance around the lead. With a lead of one
	// hour and a window of ten minutes the reminder fires when kickoff is
	// between 50 and 60 minutes away.
	PreMatchWindow time.Duration
	// Scope selects which fixtures each cycle covers.
	Scope feed.Scope
}

func (c *Config) applyDefaults() {
	if c.Interval <= 0 {
		c.Interval = defaultInterval
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = defaultMaxBackoff
	}
	if c.Retention <= 0 {
		c.Retention = defaultRetention
	}
	if c.PreMatchLead <= 0 {
		c.PreMatchLead = defaultPreMatchLead
	}
	if c.PreMatchWindow <= 0 {
		c.PreMatchWindow = defaultPreMatchWindow
	}
}

// Tracker polls the feed and turns snapshot changes into notifications.
type Tracker struct {
	feed       feed.Source
	store      *store.Store
	dispatcher Dispatcher
	log        *logger.Logger
	metrics    *metrics.Metrics
	cfg        Config

	now      func() time.Time
	failures int
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock substitutes the time source. Tests drive a virtual clock.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// New creates a tracker. The store is owned by the tracker from here on.
func New(src feed.Source, st *store.Store, d Dispatcher, log *logger.Logger, m *metrics.Metrics, cfg Config, opts ...Option) *Tracker {
	cfg.applyDefaults()
	t := &Tracker{
		feed:       src,
		store:      st,
		dispatcher: d,
		log:        log,
		metrics:    m,
		cfg:        cfg,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run polls until ctx is cancelled. An in-flight cycle always finishes;
// cancellation only stops the wait between cycles and any pending delivery
// retries.
func (t *Tracker) Run(ctx context.Context) {
	t.log.Info("tracker started", logger.Fields{"interval": t.cfg.Interval.String()})
	for {
		if err := t.RunCycle(ctx); err != nil {
			t.log.Warn("poll cycle failed", logger.Fields{
				"error":    err.Error(),
				"failures": t.failures,
			})
		}

		wait := t.cfg.Interval
		if t.failures > 0 {
			wait = retryDelay(t.cfg.Interval, t.cfg.MaxBackoff, t.failures)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			t.log.Info("tracker stopped", nil)
			return
		case <-timer.C:
		}
	}
}

// RunCycle executes one poll: fetch, detect, dispatch, evict. It blocks
// until all deliveries started in this cycle have finished, so cycles never
// overlap.
func (t *Tracker) RunCycle(ctx context.Context) error {
	t.metrics.PollAttempts.Inc()
	now := t.now()

	snaps, err := t.feed.FetchMatches(ctx, t.cfg.Scope)
	if err != nil {
		t.metrics.PollFailures.Inc()
		t.failures++
		return err
	}
	t.failures = 0

	var wg sync.WaitGroup
	for _, snap := range snaps {
		t.processMatch(ctx, snap, now, &wg)
	}
	wg.Wait()

	if evicted := t.store.EvictStale(now, t.cfg.Retention); evicted > 0 {
		t.log.Debug("evicted finished matches", logger.Fields{"count": evicted})
	}
	t.metrics.TrackedMatches.Set(float64(t.store.Len()))
	return nil
}

// processMatch diffs one snapshot against stored state and schedules
// delivery of anything new. A panic while processing one match drops that
// match's entry and never takes down the loop.
func (t *Tracker) processMatch(ctx context.Context, snap match.Snapshot, now time.Time, wg *sync.WaitGroup) {
	defer func() {
		if r := recover(); r != nil {
			t.log.Error("match state corrupted, resetting entry", logger.Fields{
				"match_id": snap.MatchID,
			}, fmt.Errorf("panic: %v", r))
			t.store.Drop(snap.MatchID)
		}
	}()

	var prev *match.Snapshot
	if tm := t.store.Get(snap.MatchID); tm != nil {
		prev = tm.LastSnapshot
	}

	res := match.Detect(prev, snap, now)
	if res.Anomaly {
		t.log.Warn("anomalous status transition, resetting match state", logger.Fields{
			"match_id": snap.MatchID,
			"status":   string(snap.Status),
		})
		t.store.Reset(snap.MatchID)
		res = match.Detect(nil, snap, now)
	}

	events := res.Events
	if t.inPreMatchWindow(snap, now) {
		events = append([]match.Event{match.PreMatchEvent(snap, now)}, events...)
	}

	// Fingerprints are marked before dispatch and stay marked on failure:
	// a delivery problem must never become a duplicate notification.
	toSend := events[:0]
	for _, ev := range events {
		if t.store.IsReported(snap.MatchID, ev.Fingerprint) {
			continue
		}
		t.store.MarkReported(snap.MatchID, ev.Fingerprint)
		t.metrics.EventsDetected.Inc()
		toSend = append(toSend, ev)
	}

	t.store.Upsert(snap.MatchID, snap, now)

	if len(toSend) == 0 {
		return
	}

	// Deliveries for different matches run concurrently; within a match
	// they stay in detection order.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, ev := range toSend {
			if err := t.dispatcher.Dispatch(ctx, ev); err != nil {
				t.metrics.EventsUndelivered.Inc()
				t.log.Error("event undelivered", logger.Fields{
					"match_id": ev.MatchID,
					"kind":     string(ev.Kind),
				}, err)
				continue
			}
			t.metrics.EventsDispatched.Inc()
		}
	}()
}

// inPreMatchWindow reports whether the reminder for a scheduled fixture
// should fire now.
func (t *Tracker) inPreMatchWindow(snap match.Snapshot, now time.Time) bool {
	if snap.Status != match.StatusScheduled || snap.Kickoff.IsZero() {
		return false
	}
	until := snap.Kickoff.Sub(now)
	return until > t.cfg.PreMatchLead-t.cfg.PreMatchWindow && until <= t.cfg.PreMatchLead
}

// retryDelay computes the wait after n consecutive fetch failures: the base
// interval doubled per failure, capped at max. Pure so it can be tested
// without a clock.
func retryDelay(base, max time.Duration, n int) time.Duration {
	d := base
	for i := 1; i < n; i++ {
		d *= 2
		if d >= max {
			return max
		}
	}
	if d > max {
		return max
	}
	return d
}
