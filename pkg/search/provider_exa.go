package search

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"go.mau.fi/util/ptr"

	"github.com/phil65/searchly-go/pkg/httputil"
)

// DefaultExaBaseURL is the production Exa API endpoint.
const DefaultExaBaseURL = "https://api.exa.ai"

const exaSnippetCharacters = 500

// ExaSearchOptions are the Exa-specific search parameters.
type ExaSearchOptions struct {
	NumResults int
	// MaxCharacters limits returned text content. Nil requests full text.
	MaxCharacters      *int
	IncludeDomains     []string
	ExcludeDomains     []string
	StartPublishedDate string
	EndPublishedDate   string
	// SearchType is one of auto, keyword, neural, deep.
	SearchType string
	Category   string
	// Summary requests an AI summary: a bool, or a structured schema object
	// passed through verbatim.
	Summary any
}

// ExaSearchResult is a single Exa result.
type ExaSearchResult struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Text          string  `json:"text"`
	Summary       string  `json:"summary"`
	Author        string  `json:"author"`
	PublishedDate string  `json:"publishedDate"`
	Score         float64 `json:"score"`
}

// ExaSearchResponse is the native Exa search response.
type ExaSearchResponse struct {
	Results            []ExaSearchResult `json:"results"`
	ResolvedSearchType string            `json:"resolvedSearchType"`
	CostDollars        float64           `json:"-"`
}

// ExaClient talks to the Exa neural search API. Exa has no news endpoint and
// ignores country/language filters.
type ExaClient struct {
	baseURL string
	headers map[string]string
	http    *http.Client
	log     zerolog.Logger
}

var _ WebSearcher = (*ExaClient)(nil)

// NewExaClient resolves credentials from the config or EXA_API_KEY.
func NewExaClient(cfg ExaConfig, opts ...ClientOption) (*ExaClient, error) {
	key, ok := resolveSecret(cfg.APIKey, EnvExaAPIKey)
	if !ok {
		return nil, &MissingCredentialsError{Provider: ProviderExa, EnvVar: EnvExaAPIKey}
	}
	o := resolveOptions(opts)
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultExaBaseURL
	}
	return &ExaClient{
		baseURL: baseURL,
		headers: o.mergeHeaders(map[string]string{
			"x-api-key": key,
			"accept":    "application/json",
		}),
		http: o.httpClient,
		log:  o.providerLogger(ProviderExa),
	}, nil
}

func (c *ExaClient) Name() string { return ProviderExa }

// Search executes a native Exa query with content retrieval.
func (c *ExaClient) Search(ctx context.Context, query string, opts *ExaSearchOptions) (*ExaSearchResponse, error) {
	var o ExaSearchOptions
	if opts != nil {
		o = *opts
	}
	if o.NumResults <= 0 {
		o.NumResults = DefaultMaxResults
	}
	if o.SearchType == "" {
		o.SearchType = "auto"
	}

	var text any = true
	if o.MaxCharacters != nil {
		text = map[string]any{"maxCharacters": *o.MaxCharacters}
	}
	contents := map[string]any{"text": text}
	if o.Summary != nil {
		contents["summary"] = o.Summary
	}

	payload := map[string]any{
		"query":      query,
		"type":       o.SearchType,
		"numResults": o.NumResults,
		"contents":   contents,
	}
	if len(o.IncludeDomains) > 0 {
		payload["includeDomains"] = o.IncludeDomains
	}
	if len(o.ExcludeDomains) > 0 {
		payload["excludeDomains"] = o.ExcludeDomains
	}
	if o.StartPublishedDate != "" {
		payload["startPublishedDate"] = o.StartPublishedDate
	}
	if o.EndPublishedDate != "" {
		payload["endPublishedDate"] = o.EndPublishedDate
	}
	if o.Category != "" {
		payload["category"] = o.Category
	}

	data, status, err := httputil.PostJSON(ctx, c.http, joinURL(c.baseURL, "/search"), c.headers, payload)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(ProviderExa, status, data); err != nil {
		return nil, err
	}

	var resp struct {
		Results            []ExaSearchResult `json:"results"`
		ResolvedSearchType string            `json:"resolvedSearchType"`
		CostDollars        struct {
			Total float64 `json:"total"`
		} `json:"costDollars"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return &ExaSearchResponse{
		Results:            resp.Results,
		ResolvedSearchType: resp.ResolvedSearchType,
		CostDollars:        resp.CostDollars.Total,
	}, nil
}

// WebSearch implements WebSearcher. Country and language are silently dropped
// since Exa does not support them; snippets come from truncated text content.
func (c *ExaClient) WebSearch(ctx context.Context, query string, opts *Options) (*WebResponse, error) {
	o := opts.withDefaults()
	resp, err := c.Search(ctx, query, &ExaSearchOptions{
		NumResults:    o.MaxResults,
		MaxCharacters: ptr.Ptr(exaSnippetCharacters),
	})
	if err != nil {
		return nil, err
	}
	out := &WebResponse{}
	for _, entry := range resp.Results {
		if entry.URL == "" {
			out.Dropped++
			continue
		}
		snippet := entry.Summary
		if snippet == "" {
			snippet = entry.Text
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
