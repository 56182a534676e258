package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/golazo-bot/golazo/internal/logger"
	"github.com/golazo-bot/golazo/internal/match"
)

const (
	defaultBaseURL = "https://livescore-api.com/api-client"
	defaultTimeout = 15 * time.Second
	userAgent      = "golazo/1.0 (github.com/golazo-bot/golazo)"
)

// FetchError wraps any network or payload failure from the feed. The
// tracker treats it as transient: back off, log, try again next tick.
type FetchError struct {
	Endpoint string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("feed fetch %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Source is the feed boundary the tracker depends on.
type Source interface {
	FetchMatches(ctx context.Context, scope Scope) ([]match.Snapshot, error)
}

// Client is the LiveScore API client. It is stateless apart from
// configuration; every call is a plain authenticated GET.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	key           string
	secret        string
	competitionID string
	loc           *time.Location
	log           *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Tests point this at httptest.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLocation sets the timezone used to interpret fixture kickoff times.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) { c.loc = loc }
}

// NewClient creates a feed client for one competition.
func NewClient(key, secret, competitionID string, log *logger.Logger, opts ...Option) (*Client, error) {
	if key == "" || secret == "" {
		return nil, fmt.Errorf("feed API key and secret are required")
	}
	c := &Client{
		httpClient:    &http.Client{Timeout: defaultTimeout},
		baseURL:       defaultBaseURL,
		key:           key,
		secret:        secret,
		competitionID: competitionID,
		loc:           time.UTC,
		log:           log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// get performs one authenticated API call and returns the data payload.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("key", c.key)
	q.Set("secret", c.secret)
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &FetchError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Endpoint: endpoint, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Endpoint: endpoint, Err: fmt.Errorf("status %d: %s", resp.StatusCode, body)}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &FetchError{Endpoint: endpoint, Err: fmt.Errorf("parsing response: %w", err)}
	}
	if !env.Success {
		return nil, &FetchError{Endpoint: endpoint, Err: fmt.Errorf("API error: %s", env.Error)}
	}
	return env.Data, nil
}

// FetchMatches returns the current snapshots for the scope: all live
// matches of the competition, merged with upcoming fixtures when the scope
// carries a window. Live data wins a merge. Live matches are enriched with
// incident and statistics detail; enrichment failures degrade to the bare
// snapshot.
func (c *Client) FetchMatches(ctx context.Context, scope Scope) ([]match.Snapshot, error) {
	live, err := c.liveMatches(ctx)
	if err != nil {
		return nil, err
	}

	var fixtures []match.Snapshot
	if !scope.LiveOnly() {
		fixtures, err = c.fixtures(ctx, scope)
		if err != nil {
			return nil, err
		}
	}

	seen := make(map[string]struct{}, len(live))
	out := make([]match.Snapshot, 0, len(live)+len(fixtures))

	for _, snap := range live {
		c.enrich(ctx, &snap)
		out = append(out, snap)
		seen[snap.MatchID] = struct{}{}
	}
	for _, snap := range fixtures {
		if _, ok := seen[snap.MatchID]; ok {
			continue
		}
		out = append(out, snap)
	}
	return out, nil
}

func (c *Client) liveMatches(ctx context.Context) ([]match.Snapshot, error) {
	params := url.Values{}
	if c.competitionID != "" {
		params.Set("competition_id", c.competitionID)
	}
	data, err := c.get(ctx, "/scores/live.json", params)
	if err != nil {
		return nil, err
	}

	var payload liveData
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &FetchError{Endpoint: "/scores/live.json", Err: err}
	}
	return c.convertAll(payload.Match), nil
}

func (c *Client) fixtures(ctx context.Context, scope Scope) ([]match.Snapshot, error) {
	params := url.Values{}
	if c.competitionID != "" {
		params.Set("competition_id", c.competitionID)
	}
	if scope.Round != "" {
		params.Set("round", scope.Round)
	}
	if !scope.From.IsZero() {
		params.Set("from", scope.From.Format("2006-01-02"))
	}
	if !scope.To.IsZero() {
		params.Set("to", scope.To.Format("2006-01-02"))
	}

	data, err := c.get(ctx, "/fixtures/matches.json", params)
	if err != nil {
		return nil, err
	}

	var payload fixturesData
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &FetchError{Endpoint: "/fixtures/matches.json", Err: err}
	}
	return c.convertAll(payload.Fixtures), nil
}

// convertAll converts raw matches, skipping (and logging) invalid ones so
// one malformed entry never fails a whole poll.
func (c *Client) convertAll(raws []rawMatch) []match.Snapshot {
	snaps := make([]match.Snapshot, 0, len(raws))
	for _, raw := range raws {
		snap, err := convertMatch(raw, c.loc)
		if err != nil {
			c.log.Warn("skipping invalid feed match", logger.Fields{"reason": err.Error()})
			continue
		}
		snaps = append(snaps, snap)
	}
	return snaps
}

// enrich attaches incident and statistics detail to a live snapshot.
func (c *Client) enrich(ctx context.Context, snap *match.Snapshot) {
	if snap.Status == match.StatusScheduled {
		return
	}

	incidents, err := c.matchEvents(ctx, snap.MatchID)
	if err != nil {
		c.log.Warn("match events unavailable", logger.Fields{"match_id": snap.MatchID, "error": err.Error()})
	} else {
		snap.Incidents = incidents
	}

	stats, err := c.matchStatistics(ctx, snap.MatchID)
	if err != nil {
		c.log.Warn("match statistics unavailable", logger.Fields{"match_id": snap.MatchID, "error": err.Error()})
	} else {
		snap.Stats = stats
	}
}

func (c *Client) matchEvents(ctx context.Context, matchID string) ([]match.Incident, error) {
	data, err := c.get(ctx, "/scores/events.json", url.Values{"id": {matchID}})
	if err != nil {
		return nil, err
	}

	var payload eventsData
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &FetchError{Endpoint: "/scores/events.json", Err: err}
	}

	incidents := make([]match.Incident, 0, len(payload.Event))
	for _, raw := range payload.Event {
		if inc, ok := convertIncident(raw); ok {
			incidents = append(incidents, inc)
		}
	}
	return incidents, nil
}

func (c *Client) matchStatistics(ctx context.Context, matchID string) (*match.Statistics, error) {
	data, err := c.get(ctx, "/scores/statistics.json", url.Values{"id": {matchID}})
	if err != nil {
		return nil, err
	}

	var payload rawStatistics
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &FetchError{Endpoint: "/scores/statistics.json", Err: err}
	}
	return convertStatistics(payload), nil
}

// LeagueTable returns the competition standings.
func (c *Client) LeagueTable(ctx context.Context) ([]TableRow, error) {
	params := url.Values{}
	if c.competitionID != "" {
		params.Set("competition_id", c.competitionID)
	}
	data, err := c.get(ctx, "/leagues/table.json", params)
	if err != nil {
		return nil, err
	}

	var payload tableData
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &FetchError{Endpoint: "/leagues/table.json", Err: err}
	}
	return payload.Table, nil
}

// TopScorers returns the competition's top scorers.
func (c *Client) TopScorers(ctx context.Context) ([]TopScorer, error) {
	params := url.Values{}
	if c.competitionID != "" {
		params.Set("competition_id", c.competitionID)
	}
	data, err := c.get(ctx, "/competitions/topscorers.json", params)
	if err != nil {
		return nil, err
	}

	var payload topScorersData
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &FetchError{Endpoint: "/competitions/topscorers.json", Err: err}
	}
	return payload.TopScorers, nil
}
