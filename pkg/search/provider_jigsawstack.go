package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/phil65/searchly-go/pkg/httputil"
)

// DefaultJigsawStackBaseURL is the production JigsawStack API endpoint.
const DefaultJigsawStackBaseURL = "https://api.jigsawstack.com/v1"

// JigsawStackClient talks to the JigsawStack web search API. Web search only;
// country and language filters are silently dropped.
type JigsawStackClient struct {
	baseURL string
	headers map[string]string
	http    *http.Client
	log     zerolog.Logger
}

var _ WebSearcher = (*JigsawStackClient)(nil)

// NewJigsawStackClient resolves credentials from the config or
// JIGSAWSTACK_API_KEY.
func NewJigsawStackClient(cfg JigsawStackConfig, opts ...ClientOption) (*JigsawStackClient, error) {
	key, ok := resolveSecret(cfg.APIKey, EnvJigsawStackAPIKey)
	if !ok {
		return nil, &MissingCredentialsError{Provider: ProviderJigsawStack, EnvVar: EnvJigsawStackAPIKey}
	}
	o := resolveOptions(opts)
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultJigsawStackBaseURL
	}
	return &JigsawStackClient{
		baseURL: baseURL,
		headers: o.mergeHeaders(map[string]string{"x-api-key": key}),
		http:    o.httpClient,
		log:     o.providerLogger(ProviderJigsawStack),
	}, nil
}

func (c *JigsawStackClient) Name() string { return ProviderJigsawStack }

// WebSearch implements WebSearcher.
func (c *JigsawStackClient) WebSearch(ctx context.Context, query string, opts *Options) (*WebResponse, error) {
	o := opts.withDefaults()
	values := url.Values{}
	values.Set("query", query)
	values.Set("max_results", strconv.Itoa(o.MaxResults))
	extraToQuery(values, o.Extra)

	data, status, err := httputil.GetJSON(ctx, c.http, joinURL(c.baseURL, "/web/search"), c.headers, values)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(ProviderJigsawStack, status, data); err != nil {
		return nil, err
	}

	var resp struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
			Content     string `json:"content"`
		} `json:"results"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}

	out := &WebResponse{}
	for _, entry := range resp.Results {
		if entry.URL == "" {
			out.Dropped++
			continue
		}
		snippet := entry.Description
		if snippet == "" {
			snippet = entry.Content
		}
		out.Results = append(out.Results, WebResult{
			Title:   entry.Title,
			URL:     entry.URL,
			Snippet: snippet,
		})
	}
	out.Results = truncateWeb(out.Results, o.MaxResults)
	c.log.Debug().Str("query", query).Int("results", len(out.Results)).Msg("web search done")
	return out, nil
}
