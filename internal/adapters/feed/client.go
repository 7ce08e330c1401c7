// Package feed imports department RSS and Atom feeds as notices
package feed

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	perr "pbl/internal/platform/errors"
	"pbl/internal/platform/logger"

	"github.com/mmcdole/gofeed"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUA        = "pbl-feed-importer"
	defaultMaxRetry  = 3
	defaultRetryBase = 500 * time.Millisecond
	maxBody          = 5 << 20
)

// Options configures the Client
type Options struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	RetryBase  time.Duration
}

// Conditional carries the validators of the previous fetch
type Conditional struct {
	ETag         string
	LastModified string
}

// Result is one fetch. Feed is nil when NotModified
type Result struct {
	Feed        *gofeed.Feed
	Validators  Conditional
	NotModified bool
}

// Client fetches feeds with conditional requests and retries on transient
// failures
type Client struct {
	http   *http.Client
	opts   Options
	parser *gofeed.Parser
	log    *logger.Logger
	sleep  func(context.Context, time.Duration) error
}

// NewClient creates a Client; hc may be nil. A client without its own
// timeout gets a copy carrying o.Timeout
func NewClient(hc *http.Client, o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	} else if o.MaxRetries == 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	switch {
	case hc == nil:
		hc = &http.Client{Timeout: o.Timeout}
	case hc.Timeout <= 0:
		cp := *hc
		cp.Timeout = o.Timeout
		hc = &cp
	}
	return &Client{http: hc, opts: o, parser: gofeed.NewParser(), log: logger.Named("feed"), sleep: sleepCtx}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Fetch gets and parses url, sending the validators in cond
func (c *Client) Fetch(ctx context.Context, url string, cond Conditional) (Result, error) {
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return Result{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "feed url %q", url)
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.5")
		if cond.ETag != "" {
			req.Header.Set("If-None-Match", cond.ETag)
		}
		if cond.LastModified != "" {
			req.Header.Set("If-Modified-Since", cond.LastModified)
		}

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil || attempt >= c.opts.MaxRetries {
				return Result{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "fetch feed")
			}
			if err := c.retry(ctx, url, attempt, 0); err != nil {
				return Result{}, err
			}
			continue
		}
		c.log.Debug().Str("url", url).Int("status", resp.StatusCode).Int("attempt", attempt).
			Dur("latency", time.Since(start)).Msg("feed response")

		switch {
		case resp.StatusCode == http.StatusNotModified:
			_ = drainAndClose(resp.Body)
			return Result{NotModified: true, Validators: cond}, nil
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return c.parse(resp)
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			wait := retryAfter(resp.Header.Get("Retry-After"))
			_ = drainAndClose(resp.Body)
			if attempt >= c.opts.MaxRetries {
				code := perr.ErrorCodeUnavailable
				if resp.StatusCode == http.StatusTooManyRequests {
					code = perr.ErrorCodeTooManyRequests
				}
				return Result{}, perr.Newf(code, "feed %s: status %d", url, resp.StatusCode)
			}
			if err := c.retry(ctx, url, attempt, wait); err != nil {
				return Result{}, err
			}
		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return Result{}, perr.Newf(perr.ErrorCodeUnknown, "feed %s: status %d body %s",
				url, resp.StatusCode, strings.TrimSpace(string(body)))
		}
	}
}

func (c *Client) parse(resp *http.Response) (Result, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return Result{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "read feed")
	}
	f, err := c.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return Result{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "parse feed")
	}
	return Result{
		Feed: f,
		Validators: Conditional{
			ETag:         strings.TrimSpace(resp.Header.Get("ETag")),
			LastModified: strings.TrimSpace(resp.Header.Get("Last-Modified")),
		},
	}, nil
}

func (c *Client) retry(ctx context.Context, url string, attempt int, wait time.Duration) error {
	if wait <= 0 {
		wait = c.backoff(attempt)
	}
	c.log.Warn().Str("url", url).Dur("retry_in", wait).Int("attempt", attempt).Msg("feed fetch retrying")
	return c.sleep(ctx, wait)
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << uint(attempt)
	if d <= 0 || d > 30*time.Second {
		d = 30 * time.Second
	}
	return d
}

// retryAfter reads delta seconds; HTTP dates are left to the backoff
func retryAfter(v string) time.Duration {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
