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

// DefaultSerpAPIBaseURL is the production SerpAPI endpoint.
const DefaultSerpAPIBaseURL = "https://serpapi.com"

// SerpAPISearchType selects the underlying Google engine.
type SerpAPISearchType string

const (
	SerpAPISearchTypeWeb    SerpAPISearchType = "search"
	SerpAPISearchTypeNews   SerpAPISearchType = "news"
	SerpAPISearchTypeImages SerpAPISearchType = "images"
	SerpAPISearchTypeVideos SerpAPISearchType = "videos"
)

var serpAPIEngines = map[SerpAPISearchType]string{
	SerpAPISearchTypeWeb:    "google",
	SerpAPISearchTypeNews:   "google_news",
	SerpAPISearchTypeImages: "google_images",
	SerpAPISearchTypeVideos: "google_videos",
}

// SerpAPISearchOptions are the SerpAPI-specific search parameters.
type SerpAPISearchOptions struct {
	SearchType SerpAPISearchType
	Country    CountryCode
	Language   LanguageCode
	// Location is a free-form location string, e.g. "Austin, Texas".
	Location string
	// Safe enables safe search; SerpAPI expects the string "active".
	Safe       bool
	MaxResults int
	Extra      map[string]any
}

// SerpAPIResult is a single native SerpAPI result.
type SerpAPIResult struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
	Position int    `json:"position"`
	Source   string `json:"source"`
	Date     string `json:"date"`
}

// SerpAPIResponse is the native SerpAPI search response.
type SerpAPIResponse struct {
	SearchParameters map[string]any  `json:"search_parameters"`
	SearchMetadata   map[string]any  `json:"search_metadata"`
	OrganicResults   []SerpAPIResult `json:"organic_results"`
	NewsResults      []SerpAPIResult `json:"news_results"`
}

// SerpAPIClient talks to SerpAPI. The API key travels as a query parameter,
// not a header.
type SerpAPIClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     zerolog.Logger
}

var (
	_ WebSearcher  = (*SerpAPIClient)(nil)
	_ NewsSearcher = (*SerpAPIClient)(nil)
)

// NewSerpAPIClient resolves credentials from the config or SERPAPI_KEY.
func NewSerpAPIClient(cfg SerpAPIConfig, opts ...ClientOption) (*SerpAPIClient, error) {
	key, ok := resolveSecret(cfg.APIKey, EnvSerpAPIKey)
	if !ok {
		return nil, &MissingCredentialsError{Provider: ProviderSerpAPI, EnvVar: EnvSerpAPIKey}
	}
	o := resolveOptions(opts)
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultSerpAPIBaseURL
	}
	return &SerpAPIClient{
		baseURL: baseURL,
		apiKey:  key,
		http:    o.httpClient,
		log:     o.providerLogger(ProviderSerpAPI),
	}, nil
}

func (c *SerpAPIClient) Name() string { return ProviderSerpAPI }

// Search executes a native SerpAPI query.
func (c *SerpAPIClient) Search(ctx context.Context, query string, opts *SerpAPISearchOptions) (*SerpAPIResponse, error) {
	var o SerpAPISearchOptions
	if opts != nil {
		o = *opts
	}
	if o.SearchType == "" {
		o.SearchType = SerpAPISearchTypeWeb
	}
	engine, ok := serpAPIEngines[o.SearchType]
	if !ok {
		return nil, &ValidationError{Field: "search_type", Reason: "must be one of search, news, images, videos"}
	}
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}

	values := url.Values{}
	values.Set("api_key", c.apiKey)
	values.Set("engine", engine)
	values.Set("q", query)
	values.Set("num", strconv.Itoa(o.MaxResults))
	if o.Country != "" {
		values.Set("gl", o.Country.Lower())
	}
	if o.Language != "" {
		values.Set("hl", o.Language.Lower())
	}
	if o.Location != "" {
		values.Set("location", o.Location)
	}
	if o.Safe {
		values.Set("safe", "active")
	}
	extraToQuery(values, o.Extra)

	data, status, err := httputil.GetJSON(ctx, c.http, joinURL(c.baseURL, "/search"), nil, values)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(ProviderSerpAPI, status, data); err != nil {
		return nil, err
	}

	var resp SerpAPIResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// WebSearch implements WebSearcher using the google engine's organic results.
func (c *SerpAPIClient) WebSearch(ctx context.Context, query string, opts *Options) (*WebResponse, error) {
	o := opts.withDefaults()
	resp, err := c.Search(ctx, query, &SerpAPISearchOptions{
		SearchType: SerpAPISearchTypeWeb,
		Country:    o.Country,
		Language:   o.Language,
		Safe:       true,
		MaxResults: o.MaxResults,
		Extra:      o.Extra,
	})
	if err != nil {
		return nil, err
	}
	out := &WebResponse{}
	for _, entry := range resp.OrganicResults {
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

// NewsSearch implements NewsSearcher using the google_news engine.
func (c *SerpAPIClient) NewsSearch(ctx context.Context, query string, opts *Options) (*NewsResponse, error) {
	o := opts.withDefaults()
	resp, err := c.Search(ctx, query, &SerpAPISearchOptions{
		SearchType: SerpAPISearchTypeNews,
		Country:    o.Country,
		Language:   o.Language,
		Safe:       true,
		MaxResults: o.MaxResults,
		Extra:      o.Extra,
	})
	if err != nil {
		return nil, err
	}
	out := &NewsResponse{}
	for _, entry := range resp.NewsResults {
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
