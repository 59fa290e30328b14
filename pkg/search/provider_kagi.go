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

// DefaultKagiBaseURL is the production Kagi API endpoint.
const DefaultKagiBaseURL = "https://kagi.com/api/v0"

// KagiSummaryType selects the Universal Summarizer output style.
type KagiSummaryType string

const (
	KagiSummaryTypeSummary  KagiSummaryType = "summary"
	KagiSummaryTypeTakeaway KagiSummaryType = "takeaway"
)

// KagiClient talks to the Kagi API. Web and news search plus the Universal
// Summarizer.
type KagiClient struct {
	baseURL string
	headers map[string]string
	http    *http.Client
	log     zerolog.Logger
}

var (
	_ WebSearcher  = (*KagiClient)(nil)
	_ NewsSearcher = (*KagiClient)(nil)
)

// NewKagiClient resolves credentials from the config or KAGI_API_KEY.
func NewKagiClient(cfg KagiConfig, opts ...ClientOption) (*KagiClient, error) {
	key, ok := resolveSecret(cfg.APIKey, EnvKagiAPIKey)
	if !ok {
		return nil, &MissingCredentialsError{Provider: ProviderKagi, EnvVar: EnvKagiAPIKey}
	}
	o := resolveOptions(opts)
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultKagiBaseURL
	}
	return &KagiClient{
		baseURL: baseURL,
		headers: o.mergeHeaders(map[string]string{
			"Authorization": "Bot " + key,
			"Content-Type":  "application/json",
		}),
		http: o.httpClient,
		log:  o.providerLogger(ProviderKagi),
	}, nil
}

func (c *KagiClient) Name() string { return ProviderKagi }

type kagiItem struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Snippet   string `json:"snippet"`
	Published string `json:"published"`
}

func (c *KagiClient) search(ctx context.Context, values url.Values) ([]kagiItem, error) {
	data, status, err := httputil.GetJSON(ctx, c.http, joinURL(c.baseURL, "/search"), c.headers, values)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(ProviderKagi, status, data); err != nil {
		return nil, err
	}
	var resp struct {
		Data []kagiItem `json:"data"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// WebSearch implements WebSearcher. Country maps to a lowercase region
// parameter; language is sent verbatim.
func (c *KagiClient) WebSearch(ctx context.Context, query string, opts *Options) (*WebResponse, error) {
	o := opts.withDefaults()
	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", strconv.Itoa(o.MaxResults))
	if o.Country != "" {
		values.Set("region", o.Country.Lower())
	}
	if o.Language != "" {
		values.Set("language", string(o.Language))
	}
	extraToQuery(values, o.Extra)

	items, err := c.search(ctx, values)
	if err != nil {
		return nil, err
	}
	out := &WebResponse{}
	for _, item := range items {
		if item.URL == "" {
			out.Dropped++
			continue
		}
		out.Results = append(out.Results, WebResult{
			Title:   item.Title,
			URL:     item.URL,
			Snippet: item.Snippet,
		})
	}
	out.Results = truncateWeb(out.Results, o.MaxResults)
	return out, nil
}

// NewsSearch implements NewsSearcher using the news engine on the same
// endpoint.
func (c *KagiClient) NewsSearch(ctx context.Context, query string, opts *Options) (*NewsResponse, error) {
	o := opts.withDefaults()
	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", strconv.Itoa(o.MaxResults))
	values.Set("engine", "news")
	if o.Country != "" {
		values.Set("region", o.Country.Lower())
	}
	if o.Language != "" {
		values.Set("language", string(o.Language))
	}
	extraToQuery(values, o.Extra)

	items, err := c.search(ctx, values)
	if err != nil {
		return nil, err
	}
	out := &NewsResponse{}
	for _, item := range items {
		if item.URL == "" {
			out.Dropped++
			continue
		}
		out.Results = append(out.Results, NewsResult{
			Title:     item.Title,
			URL:       item.URL,
			Snippet:   item.Snippet,
			Published: item.Published,
		})
	}
	out.Results = truncateNews(out.Results, o.MaxResults)
	return out, nil
}

// Summarize fetches an AI-generated summary of a URL from the Kagi Universal
// Summarizer. targetLanguage may be empty to keep the source language.
func (c *KagiClient) Summarize(ctx context.Context, pageURL string, targetLanguage string, summaryType KagiSummaryType) (string, error) {
	if summaryType == "" {
		summaryType = KagiSummaryTypeSummary
	}
	values := url.Values{}
	values.Set("url", pageURL)
	values.Set("summary_type", string(summaryType))
	if targetLanguage != "" {
		values.Set("target_language", targetLanguage)
	}

	data, status, err := httputil.GetJSON(ctx, c.http, joinURL(c.baseURL, "/summarize"), c.headers, values)
	if err != nil {
		return "", err
	}
	if err := checkStatus(ProviderKagi, status, data); err != nil {
		return "", err
	}
	var resp struct {
		Data struct {
			Output string `json:"output"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", err
	}
	return resp.Data.Output, nil
}
