package search

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/phil65/searchly-go/pkg/httputil"
)

// DefaultSearch1BaseURL is the production Search1API endpoint.
const DefaultSearch1BaseURL = "https://api.search1api.com"

// Search1Client talks to the Search1API. Web search via Google or Bing with
// language filtering; country filters are silently dropped.
type Search1Client struct {
	baseURL string
	headers map[string]string
	http    *http.Client
	log     zerolog.Logger
}

var _ WebSearcher = (*Search1Client)(nil)

// NewSearch1Client resolves credentials from the config or SEARCH1API_KEY.
func NewSearch1Client(cfg Search1Config, opts ...ClientOption) (*Search1Client, error) {
	key, ok := resolveSecret(cfg.APIKey, EnvSearch1APIKey)
	if !ok {
		return nil, &MissingCredentialsError{Provider: ProviderSearch1, EnvVar: EnvSearch1APIKey}
	}
	o := resolveOptions(opts)
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultSearch1BaseURL
	}
	return &Search1Client{
		baseURL: baseURL,
		headers: o.mergeHeaders(map[string]string{
			"Authorization": "Bearer " + key,
			"Content-Type":  "application/json",
		}),
		http: o.httpClient,
		log:  o.providerLogger(ProviderSearch1),
	}, nil
}

func (c *Search1Client) Name() string { return ProviderSearch1 }

// WebSearch implements WebSearcher. search_service and time_range can be set
// through Options.Extra; the service defaults to google.
func (c *Search1Client) WebSearch(ctx context.Context, query string, opts *Options) (*WebResponse, error) {
	o := opts.withDefaults()
	payload := map[string]any{
		"query":          query,
		"search_service": "google",
		"max_results":    o.MaxResults,
	}
	if o.Language != "" {
		payload["language"] = o.Language.Lower()
	}
	mergeExtra(payload, o.Extra)

	data, status, err := httputil.PostJSON(ctx, c.http, joinURL(c.baseURL, "/search"), c.headers, payload)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(ProviderSearch1, status, data); err != nil {
		return nil, err
	}

	var resp struct {
		Results []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"results"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}

	out := &WebResponse{}
	for _, entry := range resp.Results {
		if entry.Link == "" {
			out.Dropped++
			continue
		}
		out.Results = append(out.Results, WebResult{
			Title:   entry.Title,
			URL:     entry.Link,
			Snippet: entry.Snippet,
		})
	}
	out.Results = truncateWeb(out.Results, o.MaxResults)
	c.log.Debug().Str("query", query).Int("results", len(out.Results)).Msg("web search done")
	return out, nil
}
