package nhl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-redis/redis_rate/v10"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/text/encoding/charmap"

	"stormlightlabs.org/hockey/internal/cache"
	"stormlightlabs.org/hockey/internal/core"
)

const (
	defaultAPIBaseURL  = "https://api-web.nhle.com/v1"
	defaultHTMLBaseURL = "https://www.nhl.com/scores/htmlreports"

	// The report servers reject default Go user agents.
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) " +
		"Version/17.4.1 Safari/605.1.15"

	defaultConnectTimeout = 3 * time.Second
	defaultReadTimeout    = 10 * time.Second
	defaultMaxRetries     = 7
	defaultBackoffBase    = 2 * time.Second
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// retryStatuses are the HTTP statuses worth retrying. The low codes cover
// the report servers' nonstandard failure responses.
var retryStatuses = map[int]bool{
	54: true, 60: true, 401: true, 403: true, 404: true, 408: true,
	429: true, 500: true, 502: true, 503: true, 504: true,
}

// ClientConfig configures the upstream client. Zero values fall back to the
// defaults above.
type ClientConfig struct {
	APIBaseURL     string
	HTMLBaseURL    string
	HTTPClient     *http.Client
	MaxRetries     int
	BackoffBase    time.Duration
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	RequestsPerSec int // shared across workers via the rate limiter
	Logger         *log.Logger
	Cache          *cache.Client
	Limiter        *redis_rate.Limiter
}

// Client fetches NHL payloads with retry, backoff, shared rate limiting,
// and payload caching. It is safe for concurrent use across game workers.
type Client struct {
	apiBaseURL  string
	htmlBaseURL string
	httpClient  *http.Client
	maxRetries  int
	backoffBase time.Duration
	rps         int
	logger      *log.Logger
	cache       *cache.Client
	limiter     *redis_rate.Limiter
}

// NewClient builds a Client from cfg.
func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}
	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: connectTimeout}).DialContext,
				ResponseHeaderTimeout: readTimeout,
				MaxIdleConnsPerHost:   8,
			},
		}
	}

	apiBase := cfg.APIBaseURL
	if apiBase == "" {
		apiBase = defaultAPIBaseURL
	}
	htmlBase := cfg.HTMLBaseURL
	if htmlBase == "" {
		htmlBase = defaultHTMLBaseURL
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	backoffBase := cfg.BackoffBase
	if backoffBase <= 0 {
		backoffBase = defaultBackoffBase
	}

	return &Client{
		apiBaseURL:  apiBase,
		htmlBaseURL: htmlBase,
		httpClient:  httpClient,
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
		rps:         cfg.RequestsPerSec,
		logger:      logger,
		cache:       cfg.Cache,
		limiter:     cfg.Limiter,
	}
}

// get fetches url with the retry policy, returning the response body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	var lastStatus int
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.backoffBase * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		if err := c.waitForSlot(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			lastErr = err
			c.logger.Debug("request failed", "url", url, "attempt", attempt, "err", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK && err == nil {
			return body, nil
		}

		lastStatus = resp.StatusCode
		lastErr = err
		if !retryStatuses[resp.StatusCode] && err == nil {
			return nil, &TransportError{URL: url, Status: resp.StatusCode}
		}
		c.logger.Debug("retryable response", "url", url, "attempt", attempt, "status", resp.StatusCode)
	}

	if lastStatus == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	return nil, &TransportError{URL: url, Status: lastStatus, Err: fmt.Errorf("%w: %v", ErrRetriesExhausted, lastErr)}
}

// waitForSlot blocks until the shared rate limiter grants a request slot.
// Without a limiter every request proceeds immediately.
func (c *Client) waitForSlot(ctx context.Context) error {
	if c.limiter == nil || c.rps <= 0 {
		return nil
	}

	for {
		res, err := c.limiter.Allow(ctx, "nhl:requests", redis_rate.PerSecond(c.rps))
		if err != nil {
			return nil // a broken limiter never blocks scraping
		}
		if res.Allowed > 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(res.RetryAfter):
		}
	}
}

// getJSON fetches and decodes a JSON payload, via the payload cache.
func getJSON[T any](ctx context.Context, c *Client, key string, kind cache.Kind, url string) (*T, error) {
	body, err := c.cache.Fetch(ctx, key, kind, func() ([]byte, error) {
		return c.get(ctx, url)
	})
	if err != nil {
		return nil, err
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("nhl: decode %s: %w", url, err)
	}
	return &out, nil
}

// getHTML fetches an HTML report and decodes it from ISO-8859-1.
func (c *Client) getHTML(ctx context.Context, key string, kind cache.Kind, url string) (string, error) {
	body, err := c.cache.Fetch(ctx, key, kind, func() ([]byte, error) {
		return c.get(ctx, url)
	})
	if err != nil {
		return "", err
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("nhl: decode %s: %w", url, err)
	}
	return string(decoded), nil
}

// Gamecenter fetches the play-by-play JSON feed for a game.
func (c *Client) Gamecenter(ctx context.Context, gameID core.GameID) (*GamecenterResponse, error) {
	url := fmt.Sprintf("%s/gamecenter/%d/play-by-play", c.apiBaseURL, gameID)
	return getJSON[GamecenterResponse](ctx, c, c.cache.GameKey(cache.KindGamecenter, gameID), cache.KindGamecenter, url)
}

// Landing fetches the supplementary landing feed for a game.
func (c *Client) Landing(ctx context.Context, gameID core.GameID) ([]byte, error) {
	url := fmt.Sprintf("%s/gamecenter/%d/landing", c.apiBaseURL, gameID)
	return c.cache.Fetch(ctx, c.cache.GameKey(cache.KindLanding, gameID), cache.KindLanding, func() ([]byte, error) {
		return c.get(ctx, url)
	})
}

// reportURL builds an HTML report URL from the game ID.
func (c *Client) reportURL(prefix string, gameID core.GameID) string {
	return fmt.Sprintf("%s/%d/%s%s.HTM", c.htmlBaseURL, gameID.Season(), prefix, gameID.HTMLReportID())
}

// RosterReport fetches the RO roster report.
func (c *Client) RosterReport(ctx context.Context, gameID core.GameID) (string, error) {
	return c.getHTML(ctx, c.cache.GameKey(cache.KindRosters, gameID), cache.KindRosters, c.reportURL("RO", gameID))
}

// PlayByPlayReport fetches the PL play-by-play report.
func (c *Client) PlayByPlayReport(ctx context.Context, gameID core.GameID) (string, error) {
	return c.getHTML(ctx, c.cache.GameKey(cache.KindPlays, gameID), cache.KindPlays, c.reportURL("PL", gameID))
}

// HomeShiftReport fetches the TH home shift report.
func (c *Client) HomeShiftReport(ctx context.Context, gameID core.GameID) (string, error) {
	return c.getHTML(ctx, c.cache.GameKey(cache.KindHomeShifts, gameID), cache.KindHomeShifts, c.reportURL("TH", gameID))
}

// AwayShiftReport fetches the TV away shift report.
func (c *Client) AwayShiftReport(ctx context.Context, gameID core.GameID) (string, error) {
	return c.getHTML(ctx, c.cache.GameKey(cache.KindAwayShifts, gameID), cache.KindAwayShifts, c.reportURL("TV", gameID))
}

// ClubScheduleSeason fetches a team's season schedule.
func (c *Client) ClubScheduleSeason(ctx context.Context, team core.TeamCode, season core.Season) (*ScheduleResponse, error) {
	url := fmt.Sprintf("%s/club-schedule-season/%s/%d", c.apiBaseURL, team, season)
	key := c.cache.LeagueKey(cache.KindSchedule, fmt.Sprintf("%s:%d", team, season))
	return getJSON[ScheduleResponse](ctx, c, key, cache.KindSchedule, url)
}

// Standings fetches the standings for a date ("now" for current).
func (c *Client) Standings(ctx context.Context, date string) (*StandingsResponse, error) {
	if date == "" {
		date = "now"
	}
	url := fmt.Sprintf("%s/standings/%s", c.apiBaseURL, date)
	key := c.cache.LeagueKey(cache.KindStandings, date)
	return getJSON[StandingsResponse](ctx, c, key, cache.KindStandings, url)
}
