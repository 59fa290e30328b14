package search

import (
	"context"
	"errors"
	"strings"
)

// SearchWeb tries the given provider configurations in order and returns the
// first successful response. Unconfigured providers are skipped; a provider
// failure falls through to the next configuration.
func SearchWeb(ctx context.Context, query string, opts *Options, configs ...ProviderConfig) (*WebResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Field: "query", Reason: "must not be empty"}
	}
	var lastErr error
	for _, cfg := range configs {
		if cfg == nil || !cfg.IsConfigured() {
			continue
		}
		provider, err := cfg.Searcher()
		if err != nil {
			lastErr = err
			continue
		}
		resp, err := provider.WebSearch(ctx, query, opts)
		if err != nil {
			lastErr = err
			continue
		}
		return resp, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, errors.New("no search providers configured")
}

// SearchNews is the news-search counterpart of SearchWeb.
func SearchNews(ctx context.Context, query string, opts *Options, configs ...NewsProviderConfig) (*NewsResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Field: "query", Reason: "must not be empty"}
	}
	var lastErr error
	for _, cfg := range configs {
		if cfg == nil || !cfg.IsConfigured() {
			continue
		}
		provider, err := cfg.NewsSearcher()
		if err != nil {
			lastErr = err
			continue
		}
		resp, err := provider.NewsSearch(ctx, query, opts)
		if err != nil {
			lastErr = err
			continue
		}
		return resp, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, errors.New("no search providers configured")
}
