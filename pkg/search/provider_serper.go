package search

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/phil65/searchly-go/pkg/httputil"
)

// DefaultSerperBaseURL is the production Serper.dev API endpoint.
const DefaultSerperBaseURL = "https://google.serper.dev"

// SerperClient talks to the Serper.dev API, a Google SERP proxy with separate
// web and news endpoints.
type SerperClient struct {
	baseURL string
	headers map[string]string
	http    *http.Client
	log     zerolog.Logger
}

var (
	_ WebSearcher  = (*SerperClient)(nil)
	_ NewsSearcher = (*SerperClient)(nil)
)

// NewSerperClient resolves credentials from the config or SERPER_API_KEY.
func NewSerperClient(cfg SerperConfig, opts ...ClientOption) (*SerperClient, error) {
	key, ok := resolveSecret(cfg.APIKey, EnvSerperAPIKey)
	if !ok {
		return nil, &MissingCredentialsError{Provider: ProviderSerper, EnvVar: EnvSerperAPIKey}
	}
	o := resolveOptions(opts)
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultSerperBaseURL
	}
	return &SerperClient{
		baseURL: baseURL,
		headers: o.mergeHeaders(map[string]string{
			"X-API-KEY":    key,
			"Content-Type": "application/json",
		}),
		http: o.httpClient,
		log:  o.providerLogger(ProviderSerper),
	}, nil
}

func (c *SerperClient) Name() string { return ProviderSerper }

func (c *SerperClient) payload(query string, o Options) map[string]any {
	payload := map[string]any{
		"q":   query,
		"num": o.MaxResults,
	}
	if o.Country != "" {
		payload["gl"] = o.Country.Lower()
	}
	if o.Language != "" {
		payload["hl"] = o.Language.Lower()
	}
	return mergeExtra(payload, o.Extra)
}

// WebSearch implements WebSearcher.
func (c *SerperClient) WebSearch(ctx context.Context, query string, opts *Options) (*WebResponse, error) {
	o := opts.withDefaults()
	data, status, err := httputil.PostJSON(ctx, c.http, joinURL(c.baseURL, "/search"), c.headers, c.payload(query, o))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(ProviderSerper, status, data); err != nil {
		return nil, err
	}

	var resp struct {
		Organic []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}

	out := &WebResponse{}
	for _, entry := range resp.Organic {
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

// NewsSearch implements NewsSearcher via the dedicated news endpoint.
func (c *SerperClient) NewsSearch(ctx context.Context, query string, opts *Options) (*NewsResponse, error) {
	o := opts.withDefaults()
	data, status, err := httputil.PostJSON(ctx, c.http, joinURL(c.baseURL, "/news"), c.headers, c.payload(query, o))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(ProviderSerper, status, data); err != nil {
		return nil, err
	}

	var resp struct {
		News []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
			Date    string `json:"date"`
			Source  string `json:"source"`
		} `json:"news"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}

	out := &NewsResponse{}
	for _, entry := range resp.News {
		if entry.Link == "" {
			out.Dropped++
			continue
		}
		out.Results = append(out.Results, NewsResult{
			Title:     entry.Title,
			URL:       entry.Link,
			Snippet:   entry.Snippet,
			Published: entry.Date,
		})
	}
	out.Results = truncateNews(out.Results, o.MaxResults)
	return out, nil
}
