// Package hssaa implements the SportsClient port by scraping the HSSAA
// (high school athletic association) website.
package hssaa

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/gagesite/internal/domain/model"
	"github.com/ericfisherdev/gagesite/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SportsClient = (*Client)(nil)

const (
	// DefaultBaseURL is the association website.
	DefaultBaseURL = "https://www.hssaa.ca"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36"

	requestTimeout = 15 * time.Second
	maxAttempts    = 3
	maxPageBytes   = 8 << 20
)

// Client scrapes standings and scores pages.
type Client struct {
	http      *http.Client
	baseURL   string
	retryWait time.Duration
	logger    *slog.Logger
}

// NewClient creates a Client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. http.DefaultTransport
//
// Each request times out after 15 seconds and is attempted up to 3 times.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Transport: httpcache.NewMemoryCacheTransport(),
			Timeout:   requestTimeout,
		},
		baseURL:   baseURL,
		retryWait: 2 * time.Second,
		logger:    logger,
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and
// retry wait. Intended for tests.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string, retryWait time.Duration, logger *slog.Logger) *Client {
	return &Client{http: httpClient, baseURL: baseURL, retryWait: retryWait, logger: logger}
}

// FetchStandings returns the standings tiers of a league.
func (c *Client) FetchStandings(ctx context.Context, leagueID int) ([]model.StandingTable, error) {
	q := url.Values{"leagueid": {strconv.Itoa(leagueID)}}
	page, err := c.fetch(ctx, c.baseURL+"/displayStandings.php?"+q.Encode())
	if err != nil || page == nil {
		return []model.StandingTable{}, err
	}

	standings, err := parseStandings(bytes.NewReader(page))
	if err != nil {
		c.logger.Warn("standings page unparsable", "league_id", leagueID, "error", err)
		return []model.StandingTable{}, nil
	}
	return standings, nil
}

// FetchScores returns the score rows of a league filtered by school.
func (c *Client) FetchScores(ctx context.Context, leagueID, schoolID int) ([][]string, error) {
	q := url.Values{
		"leagueid": {strconv.Itoa(leagueID)},
		"schoolid": {strconv.Itoa(schoolID)},
	}
	page, err := c.fetch(ctx, c.baseURL+"/viewScores.php?"+q.Encode())
	if err != nil || page == nil {
		return [][]string{}, err
	}

	scores, err := parseScores(bytes.NewReader(page))
	if err != nil {
		c.logger.Warn("scores page unparsable", "league_id", leagueID, "error", err)
		return [][]string{}, nil
	}
	return scores, nil
}

// fetch downloads target, retrying failed attempts. When every attempt fails
// it returns a nil page and a nil error, unless ctx was canceled.
func (c *Client) fetch(ctx context.Context, target string) ([]byte, error) {
	var (
		page    []byte
		attempt int
	)

	operation := func() error {
		attempt++
		body, err := c.get(ctx, target)
		if err != nil {
			c.logger.Warn("fetch attempt failed", "url", target, "attempt", attempt, "error", err)
			return err
		}
		page = body
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryWait), maxAttempts-1),
		ctx,
	)

	if err := backoff.Retry(operation, policy); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("giving up on page", "url", target, "attempts", attempt, "error", err)
		return nil, nil
	}
	return page, nil
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
