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

// DefaultYouBaseURL is the production You.com search endpoint.
const DefaultYouBaseURL = "https://api.ydc-index.io"

// YouLiveNewsURL is the fixed live news endpoint. It is not affected by
// BaseURL overrides.
const YouLiveNewsURL = "https://api.ydc-index.io/livenews"

// YouSafeSearch is the You.com content moderation level.
type YouSafeSearch string

const (
	YouSafeSearchOff      YouSafeSearch = "off"
	YouSafeSearchModerate YouSafeSearch = "moderate"
	YouSafeSearchStrict   YouSafeSearch = "strict"
)

// YouSearchOptions are the You.com-specific search parameters.
type YouSearchOptions struct {
	// Count is the max results per section (web and news each).
	Count int
	// Offset pages through results in steps of Count. Must be 0 through 9.
	Offset     int
	Country    CountryCode
	Language   LanguageCode
	SafeSearch YouSafeSearch
	// Freshness is "day", "week", "month", "year", or a
	// "YYYY-MM-DDtoYYYY-MM-DD" range.
	Freshness string
	// Livecrawl selects sections to fetch full page content for
	// ("web", "news", or "all").
	Livecrawl string
	// LivecrawlFormats is "html" or "markdown".
	LivecrawlFormats string
	Extra            map[string]any
}

// YouWebResult is one web section entry from unified search.
type YouWebResult struct {
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Snippets     []string `json:"snippets,omitempty"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	PageAge      string   `json:"page_age,omitempty"`
	Authors      []string `json:"authors,omitempty"`
	FaviconURL   string   `json:"favicon_url,omitempty"`
}

// YouNewsResult is one news section entry from unified search.
type YouNewsResult struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	PageAge      string `json:"page_age,omitempty"`
}

// YouSearchResponse is the unified search response. The query classifier
// decides how results split across the web and news sections.
type YouSearchResponse struct {
	Results struct {
		Web  []YouWebResult  `json:"web"`
		News []YouNewsResult `json:"news"`
	} `json:"results"`
	Metadata struct {
		RequestUUID string  `json:"request_uuid,omitempty"`
		Query       string  `json:"query,omitempty"`
		Latency     float64 `json:"latency,omitempty"`
	} `json:"metadata"`
}

// YouLiveNewsItem is one live news result.
type YouLiveNewsItem struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Age         string `json:"age,omitempty"`
	PageAge     string `json:"page_age,omitempty"`
	SourceName  string `json:"source_name,omitempty"`
	Type        string `json:"type,omitempty"`
	Thumbnail   *struct {
		Src string `json:"src,omitempty"`
	} `json:"thumbnail,omitempty"`
	MetaURL *struct {
		Hostname string `json:"hostname,omitempty"`
		Netloc   string `json:"netloc,omitempty"`
		Path     string `json:"path,omitempty"`
		Scheme   string `json:"scheme,omitempty"`
	} `json:"meta_url,omitempty"`
	ArticleID string `json:"article_id,omitempty"`
}

// YouLiveNewsResponse is the live news endpoint response.
type YouLiveNewsResponse struct {
	News struct {
		Query *struct {
			Original      string `json:"original,omitempty"`
			SpellcheckOff bool   `json:"spellcheck_off,omitempty"`
		} `json:"query,omitempty"`
		Results  []YouLiveNewsItem `json:"results"`
		Type     string            `json:"type,omitempty"`
		Metadata *struct {
			RequestUUID string `json:"request_uuid,omitempty"`
		} `json:"metadata,omitempty"`
	} `json:"news"`
}

// YouClient talks to the You.com search and live news APIs.
type YouClient struct {
	baseURL string
	headers map[string]string
	http    *http.Client
	log     zerolog.Logger
}

var (
	_ WebSearcher  = (*YouClient)(nil)
	_ NewsSearcher = (*YouClient)(nil)
)

// NewYouClient resolves credentials from the config or YOU_API_KEY.
func NewYouClient(cfg YouConfig, opts ...ClientOption) (*YouClient, error) {
	key, ok := resolveSecret(cfg.APIKey, EnvYouAPIKey)
	if !ok {
		return nil, &MissingCredentialsError{Provider: ProviderYou, EnvVar: EnvYouAPIKey}
	}
	o := resolveOptions(opts)
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultYouBaseURL
	}
	return &YouClient{
		baseURL: baseURL,
		headers: o.mergeHeaders(map[string]string{"X-API-Key": key}),
		http:    o.httpClient,
		log:     o.providerLogger(ProviderYou),
	}, nil
}

func (c *YouClient) Name() string { return ProviderYou }

// Search executes a unified query. Offsets outside 0 through 9 fail
// validation before any request goes out.
func (c *YouClient) Search(ctx context.Context, query string, opts *YouSearchOptions) (*YouSearchResponse, error) {
	var o YouSearchOptions
	if opts != nil {
		o = *opts
	}
	if o.Count <= 0 {
		o.Count = 10
	}
	if o.SafeSearch == "" {
		o.SafeSearch = YouSafeSearchModerate
	}
	if o.Offset < 0 || o.Offset > 9 {
		return nil, &ValidationError{Field: "offset", Reason: "must be between 0 and 9"}
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("count", strconv.Itoa(o.Count))
	params.Set("offset", strconv.Itoa(o.Offset))
	params.Set("safesearch", string(o.SafeSearch))
	if o.Country != "" {
		params.Set("country", string(o.Country))
	}
	if o.Language != "" {
		params.Set("language", string(o.Language))
	}
	if o.Freshness != "" {
		params.Set("freshness", o.Freshness)
	}
	if o.Livecrawl != "" {
		params.Set("livecrawl", o.Livecrawl)
	}
	if o.LivecrawlFormats != "" {
		params.Set("livecrawl_formats", o.LivecrawlFormats)
	}
	extraToQuery(params, o.Extra)

	data, status, err := httputil.GetJSON(ctx, c.http, joinURL(c.baseURL, "/v1/search"), c.headers, params)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(ProviderYou, status, data); err != nil {
		return nil, err
	}
	var resp YouSearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	c.log.Debug().Str("query", query).
		Int("web", len(resp.Results.Web)).
		Int("news", len(resp.Results.News)).
		Msg("unified search done")
	return &resp, nil
}

// News queries the live news endpoint. count zero means provider default.
func (c *YouClient) News(ctx context.Context, query string, count int) (*YouLiveNewsResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	if count > 0 {
		params.Set("count", strconv.Itoa(count))
	}

	data, status, err := httputil.GetJSON(ctx, c.http, YouLiveNewsURL, c.headers, params)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(ProviderYou, status, data); err != nil {
		return nil, err
	}
	var resp YouLiveNewsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// WebSearch implements WebSearcher over the web section of unified search.
func (c *YouClient) WebSearch(ctx context.Context, query string, opts *Options) (*WebResponse, error) {
	o := opts.withDefaults()
	resp, err := c.Search(ctx, query, &YouSearchOptions{
		Count:    o.MaxResults,
		Country:  o.Country,
		Language: o.Language,
		Extra:    o.Extra,
	})
	if err != nil {
		return nil, err
	}
	out := &WebResponse{}
	for _, entry := range resp.Results.Web {
		if entry.URL == "" {
			out.Dropped++
			continue
		}
		snippet := entry.Description
		if snippet == "" && len(entry.Snippets) > 0 {
			snippet = entry.Snippets[0]
		}
		out.Results = append(out.Results, WebResult{
			Title:   entry.Title,
			URL:     entry.URL,
			Snippet: snippet,
		})
	}
	out.Results = truncateWeb(out.Results, o.MaxResults)
	return out, nil
}

// NewsSearch implements NewsSearcher using the live news endpoint.
func (c *YouClient) NewsSearch(ctx context.Context, query string, opts *Options) (*NewsResponse, error) {
	o := opts.withDefaults()
	resp, err := c.News(ctx, query, o.MaxResults)
	if err != nil {
		return nil, err
	}
	out := &NewsResponse{}
	for _, entry := range resp.News.Results {
		if entry.URL == "" {
			out.Dropped++
			continue
		}
		published := entry.PageAge
		if published == "" {
			published = entry.Age
		}
		out.Results = append(out.Results, NewsResult{
			Title:     entry.Title,
			URL:       entry.URL,
			Snippet:   entry.Description,
			Published: published,
		})
	}
	out.Results = truncateNews(out.Results, o.MaxResults)
	return out, nil
}
