package schema

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-formmapper/internal/fetch"
)

// Loader reads schema documents from files, fs.FS entries, or HTTP sources.
type Loader struct {
	client *fetch.Client
}

// LoaderOption configures a Loader.
type LoaderOption func(*loaderConfig)

type loaderConfig struct {
	fetchOpts []fetch.Option
}

// WithHTTPClient replaces the transport used for URL sources. The default
// client caches DNS lookups and retries transient upstream failures.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(c *loaderConfig) {
		c.fetchOpts = append(c.fetchOpts, fetch.WithHTTPClient(client))
	}
}

// WithUserAgent sets the User-Agent header sent for URL sources.
func WithUserAgent(agent string) LoaderOption {
	return func(c *loaderConfig) {
		c.fetchOpts = append(c.fetchOpts, fetch.WithUserAgent(agent))
	}
}

// NewLoader builds a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	var cfg loaderConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Loader{client: fetch.NewClient(cfg.fetchOpts...)}
}

// Load reads the source, a path or an http(s) URL, and parses it into a
// catalog.
func (l *Loader) Load(ctx context.Context, source string) (*Catalog, error) {
	if source == "" {
		return nil, fmt.Errorf("schema: source is required")
	}
	if isURL(source) {
		return l.LoadSource(ctx, SourceFromURL(source))
	}
	return l.LoadSource(ctx, SourceFromFile(source))
}

// LoadSource reads the given source and parses it into a catalog.
func (l *Loader) LoadSource(ctx context.Context, src Source) (*Catalog, error) {
	if src == nil {
		return nil, fmt.Errorf("schema: source is required")
	}
	data, err := src.read(ctx, l)
	if err != nil {
		return nil, err
	}
	return Parse(ctx, data)
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
