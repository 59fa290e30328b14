package search

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/phil65/searchly-go/pkg/httputil"
)

// DefaultLinkUpBaseURL is the production LinkUp API endpoint.
const DefaultLinkUpBaseURL = "https://api.linkup.so/v1"

// LinkUpDepth selects the LinkUp search depth.
type LinkUpDepth string

const (
	LinkUpDepthStandard LinkUpDepth = "standard"
	LinkUpDepthDeep     LinkUpDepth = "deep"
)

// LinkUpClient talks to the LinkUp search API. Web search only; country and
// language filters are silently dropped.
type LinkUpClient struct {
	baseURL string
	headers map[string]string
	http    *http.Client
	log     zerolog.Logger
}

var _ WebSearcher = (*LinkUpClient)(nil)

// NewLinkUpClient resolves credentials from the config or LINKUP_API_KEY.
func NewLinkUpClient(cfg LinkUpConfig, opts ...ClientOption) (*LinkUpClient, error) {
	key, ok := resolveSecret(cfg.APIKey, EnvLinkUpAPIKey)
	if !ok {
		return nil, &MissingCredentialsError{Provider: ProviderLinkUp, EnvVar: EnvLinkUpAPIKey}
	}
	o := resolveOptions(opts)
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultLinkUpBaseURL
	}
	return &LinkUpClient{
		baseURL: baseURL,
		headers: o.mergeHeaders(map[string]string{
			"Authorization": "Bearer " + key,
			"Content-Type":  "application/json",
		}),
		http: o.httpClient,
		log:  o.providerLogger(ProviderLinkUp),
	}, nil
}

func (c *LinkUpClient) Name() string { return ProviderLinkUp }

// WebSearch implements WebSearcher using searchResults output at standard
// depth. Pass depth through Options.Extra to override.
func (c *LinkUpClient) WebSearch(ctx context.Context, query string, opts *Options) (*WebResponse, error) {
	o := opts.withDefaults()
	payload := map[string]any{
		"q":          query,
		"depth":      string(LinkUpDepthStandard),
		"outputType": "searchResults",
	}
	mergeExtra(payload, o.Extra)

	data, status, err := httputil.PostJSON(ctx, c.http, joinURL(c.baseURL, "/search"), c.headers, payload)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(ProviderLinkUp, status, data); err != nil {
		return nil, err
	}

	var resp struct {
		Results []struct {
			Type    string `json:"type"`
			Name    string `json:"name"`
			URL     string `json:"url"`
			Content string `json:"content"`
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
		out.Results = append(out.Results, WebResult{
			Title:   entry.Name,
			URL:     entry.URL,
			Snippet: entry.Content,
		})
	}
	out.Results = truncateWeb(out.Results, o.MaxResults)
	c.log.Debug().Str("query", query).Int("results", len(out.Results)).Msg("web search done")
	return out, nil
}
