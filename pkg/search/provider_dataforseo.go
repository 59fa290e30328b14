package search

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/phil65/searchly-go/pkg/httputil"
)

// DefaultDataForSEOBaseURL is the production DataForSEO API endpoint.
const DefaultDataForSEOBaseURL = "https://api.dataforseo.com/v3"

// DataForSEO identifies countries by location code. Country codes for whole
// countries are the ISO 3166-1 numeric code plus 2000.
var dataForSEOLocations = map[CountryCode]int{
	CountryAR: 2032, CountryAU: 2036, CountryAT: 2040, CountryBE: 2056,
	CountryBR: 2076, CountryCA: 2124, CountryCH: 2756, CountryCL: 2152,
	CountryCN: 2156, CountryDE: 2276, CountryDK: 2208, CountryES: 2724,
	CountryFI: 2246, CountryFR: 2250, CountryGB: 2826, CountryHK: 2344,
	CountryID: 2360, CountryIN: 2356, CountryIT: 2380, CountryJP: 2392,
	CountryKR: 2410, CountryMX: 2484, CountryMY: 2458, CountryNL: 2528,
	CountryNO: 2578, CountryNZ: 2554, CountryPL: 2616, CountryPT: 2620,
	CountryRU: 2643, CountrySE: 2752, CountrySG: 2702, CountryTR: 2792,
	CountryTW: 2158, CountryUS: 2840, CountryZA: 2710,
}

const defaultDataForSEOLocation = 2840 // United States

// DataForSEOClient talks to the DataForSEO SERP API using live Google tasks.
type DataForSEOClient struct {
	baseURL string
	headers map[string]string
	http    *http.Client
	log     zerolog.Logger
}

var (
	_ WebSearcher  = (*DataForSEOClient)(nil)
	_ NewsSearcher = (*DataForSEOClient)(nil)
)

// NewDataForSEOClient resolves the login/password pair from the config or the
// DATAFORSEO_LOGIN / DATAFORSEO_PASSWORD environment variables.
func NewDataForSEOClient(cfg DataForSEOConfig, opts ...ClientOption) (*DataForSEOClient, error) {
	login, ok := resolveSecret(cfg.Login, EnvDataForSEOLogin)
	if !ok {
		return nil, &MissingCredentialsError{Provider: ProviderDataForSEO, EnvVar: EnvDataForSEOLogin}
	}
	password, ok := resolveSecret(cfg.Password, EnvDataForSEOPassword)
	if !ok {
		return nil, &MissingCredentialsError{Provider: ProviderDataForSEO, EnvVar: EnvDataForSEOPassword}
	}
	o := resolveOptions(opts)
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultDataForSEOBaseURL
	}
	basic := base64.StdEncoding.EncodeToString([]byte(login + ":" + password))
	return &DataForSEOClient{
		baseURL: baseURL,
		headers: o.mergeHeaders(map[string]string{
			"Authorization": "Basic " + basic,
			"Content-Type":  "application/json",
		}),
		http: o.httpClient,
		log:  o.providerLogger(ProviderDataForSEO),
	}, nil
}

func (c *DataForSEOClient) Name() string { return ProviderDataForSEO }

type dataForSEOItem struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Snippet     string `json:"snippet"`
	Timestamp   string `json:"timestamp"`
}

func (c *DataForSEOClient) task(query string, o Options) map[string]any {
	location := defaultDataForSEOLocation
	if code, ok := dataForSEOLocations[CountryCode(o.Country.Upper())]; ok {
		location = code
	}
	task := map[string]any{
		"keyword":       query,
		"location_code": location,
		"depth":         o.MaxResults,
	}
	if o.Language != "" {
		task["language_code"] = o.Language.Lower()
	} else {
		task["language_code"] = "en"
	}
	return mergeExtra(task, o.Extra)
}

// post sends a single-task array and unwraps tasks[].result[].items[].
func (c *DataForSEOClient) post(ctx context.Context, path string, task map[string]any) ([]dataForSEOItem, error) {
	data, status, err := httputil.PostJSON(ctx, c.http, joinURL(c.baseURL, path), c.headers, []any{task})
	if err != nil {
		return nil, err
	}
	if err := checkStatus(ProviderDataForSEO, status, data); err != nil {
		return nil, err
	}
	var resp struct {
		Tasks []struct {
			Result []struct {
				Items []dataForSEOItem `json:"items"`
			} `json:"result"`
		} `json:"tasks"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	var items []dataForSEOItem
	for _, task := range resp.Tasks {
		for _, result := range task.Result {
			items = append(items, result.Items...)
		}
	}
	return items, nil
}

// WebSearch implements WebSearcher via a live Google organic task.
func (c *DataForSEOClient) WebSearch(ctx context.Context, query string, opts *Options) (*WebResponse, error) {
	o := opts.withDefaults()
	items, err := c.post(ctx, "/serp/google/organic/live/advanced", c.task(query, o))
	if err != nil {
		return nil, err
	}
	out := &WebResponse{}
	for _, item := range items {
		if item.Type != "" && item.Type != "organic" {
			continue
		}
		if item.URL == "" {
			out.Dropped++
			continue
		}
		snippet := item.Description
		if snippet == "" {
			snippet = item.Snippet
		}
		out.Results = append(out.Results, WebResult{
			Title:   item.Title,
			URL:     item.URL,
			Snippet: snippet,
		})
	}
	out.Results = truncateWeb(out.Results, o.MaxResults)
	c.log.Debug().Str("query", query).Int("results", len(out.Results)).Msg("web search done")
	return out, nil
}

// NewsSearch implements NewsSearcher via a live Google news task.
func (c *DataForSEOClient) NewsSearch(ctx context.Context, query string, opts *Options) (*NewsResponse, error) {
	o := opts.withDefaults()
	items, err := c.post(ctx, "/serp/google/news/live/advanced", c.task(query, o))
	if err != nil {
		return nil, err
	}
	out := &NewsResponse{}
	for _, item := range items {
		if item.URL == "" {
			out.Dropped++
			continue
		}
		snippet := item.Snippet
		if snippet == "" {
			snippet = item.Description
		}
		out.Results = append(out.Results, NewsResult{
			Title:     item.Title,
			URL:       item.URL,
			Snippet:   snippet,
			Published: item.Timestamp,
		})
	}
	out.Results = truncateNews(out.Results, o.MaxResults)
	return out, nil
}
