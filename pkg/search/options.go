package search

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/phil65/searchly-go/pkg/httputil"
)

// ClientOption customizes collaborator injection at client construction.
type ClientOption func(*clientOptions)

type clientOptions struct {
	httpClient  *http.Client
	logger      *zerolog.Logger
	countTokens func(string) int
	headers     map[string]string
}

// WithHTTPClient injects the HTTP transport used for all requests. When not
// set, clients build a default transport with their documented timeout.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithLogger attaches a logger. Clients log at debug level and never log
// credentials. Without it logging is a no-op.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = &logger
	}
}

// WithTokenCounter overrides the token counter used for context budgeting
// (Tavily's search context helper). Defaults to the tiktoken-based counter.
func WithTokenCounter(count func(text string) int) ClientOption {
	return func(o *clientOptions) {
		o.countTokens = count
	}
}

// WithHeaders merges extra headers over the provider's defaults on every
// request, e.g. for proxies or request tracing.
func WithHeaders(headers map[string]string) ClientOption {
	return func(o *clientOptions) {
		o.headers = headers
	}
}

func resolveOptions(opts []ClientOption) clientOptions {
	var out clientOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&out)
		}
	}
	return out
}

func (o clientOptions) mergeHeaders(base map[string]string) map[string]string {
	return httputil.MergeHeaders(base, o.headers)
}

func (o clientOptions) providerLogger(provider string) zerolog.Logger {
	base := zerolog.Nop()
	if o.logger != nil {
		base = *o.logger
	}
	return base.With().Str("component", "search").Str("provider", provider).Logger()
}
