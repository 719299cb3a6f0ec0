// Package fetch retrieves remote schema documents over HTTP with DNS
// caching, retry, and per-host circuit breaking. Schema sources are small
// and fetched rarely, usually once at startup, but they often live behind
// flaky corporate gateways; the client absorbs transient failures instead
// of surfacing them to the admin bootstrap.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net"
	"net/http"
	neturl "net/url"
	"sync"
	"time"

	"github.com/cenk/backoff"
	"github.com/rs/dnscache"
	circuit "github.com/rubyist/circuitbreaker"
)

var (
	ErrNotFound     = errors.New("schema document not found")
	ErrRateLimited  = errors.New("rate limited by schema host")
	ErrUpstreamDown = errors.New("schema host unavailable")
)

// Document is a fetched schema source.
type Document struct {
	Body        []byte
	ContentType string
	ETag        string
}

// Client downloads schema documents. Responses are buffered in full, capped
// at maxBody bytes, so callers never hold a live connection while parsing.
type Client struct {
	client     *http.Client
	userAgent  string
	maxRetries int
	baseDelay  time.Duration
	maxBody    int64

	mu       sync.RWMutex
	breakers map[string]*circuit.Breaker
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client, replacing the DNS-cached default.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Client) { f.client = c }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Client) { f.userAgent = ua }
}

// WithMaxRetries sets the maximum retry attempts.
func WithMaxRetries(n int) Option {
	return func(f *Client) { f.maxRetries = n }
}

// WithBaseDelay sets the base delay for exponential backoff.
func WithBaseDelay(d time.Duration) Option {
	return func(f *Client) { f.baseDelay = d }
}

// WithMaxBodySize caps how many bytes of a schema document are read.
func WithMaxBodySize(n int64) Option {
	return func(f *Client) { f.maxBody = n }
}

// NewClient creates a Client with the given options.
func NewClient(opts ...Option) *Client {
	resolver := &dnscache.Resolver{}
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			resolver.Refresh(true)
		}
	}()

	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	f := &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
					host, port, err := net.SplitHostPort(addr)
					if err != nil {
						return nil, err
					}
					ips, err := resolver.LookupHost(ctx, host)
					if err != nil {
						return nil, err
					}
					for _, ip := range ips {
						conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
						if err == nil {
							return conn, nil
						}
					}
					return nil, fmt.Errorf("failed to dial any resolved IP")
				},
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		userAgent:  "go-formmapper/1.0",
		maxRetries: 3,
		baseDelay:  500 * time.Millisecond,
		maxBody:    8 << 20,
		breakers:   make(map[string]*circuit.Breaker),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Get downloads the schema document at url. The per-host circuit breaker is
// consulted first; when it is open the call fails immediately with
// ErrUpstreamDown so a broken schema host cannot stall admin bootstrap.
func (f *Client) Get(ctx context.Context, url string) (*Document, error) {
	host := hostOf(url)
	breaker := f.breaker(host)

	if !breaker.Ready() {
		return nil, fmt.Errorf("circuit breaker open for host %s: %w", host, ErrUpstreamDown)
	}

	var doc *Document
	err := breaker.Call(func() error {
		var fetchErr error
		doc, fetchErr = f.getWithRetry(ctx, url)
		return fetchErr
	}, 0)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// BreakerStates reports each known host's breaker state, for diagnostics.
func (f *Client) BreakerStates() map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	states := make(map[string]string, len(f.breakers))
	for host, breaker := range f.breakers {
		if breaker.Tripped() {
			states[host] = "open"
		} else {
			states[host] = "closed"
		}
	}
	return states
}

func (f *Client) getWithRetry(ctx context.Context, url string) (*Document, error) {
	var lastErr error

	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with 10% jitter.
			delay := f.baseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
			delay += time.Duration(float64(delay) * (rand.Float64() * 0.1))

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		doc, err := f.doGet(ctx, url)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUpstreamDown) {
			continue
		}
		return nil, err
	}

	return nil, lastErr
}

func (f *Client) doGet(ctx context.Context, url string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json, application/yaml, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching schema: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
		if err != nil {
			return nil, fmt.Errorf("reading schema body: %w", err)
		}
		if int64(len(body)) > f.maxBody {
			return nil, fmt.Errorf("schema document exceeds %d bytes", f.maxBody)
		}
		return &Document{
			Body:        body,
			ContentType: resp.Header.Get("Content-Type"),
			ETag:        resp.Header.Get("ETag"),
		}, nil

	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound

	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited

	case resp.StatusCode >= 500:
		return nil, ErrUpstreamDown

	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}

// breaker returns or creates the circuit breaker for a host. Breakers trip
// after 5 consecutive failures and reset on an exponential schedule.
func (f *Client) breaker(host string) *circuit.Breaker {
	f.mu.RLock()
	breaker, exists := f.breakers[host]
	f.mu.RUnlock()
	if exists {
		return breaker
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if breaker, exists := f.breakers[host]; exists {
		return breaker
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 30 * time.Second
	expBackoff.MaxInterval = 5 * time.Minute
	expBackoff.Multiplier = 2.0
	expBackoff.Reset()

	breaker = circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ThresholdTripFunc(5),
	})
	f.breakers[host] = breaker
	return breaker
}

func hostOf(rawURL string) string {
	parsed, err := neturl.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		if len(rawURL) > 50 {
			return rawURL[:50]
		}
		return rawURL
	}
	return parsed.Host
}
