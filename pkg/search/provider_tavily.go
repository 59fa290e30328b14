package search

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/phil65/searchly-go/pkg/httputil"
	"github.com/phil65/searchly-go/pkg/tokens"
)

// DefaultTavilyBaseURL is the production Tavily API endpoint.
const DefaultTavilyBaseURL = "https://api.tavily.com"

// TavilyTimeout is the fixed request timeout Tavily applies to its transport.
const TavilyTimeout = 180 * time.Second

// DefaultTavilyMaxTokens is the default context budget for GetSearchContext.
const DefaultTavilyMaxTokens = 4000

var defaultCompanyInfoTopics = []string{"news", "general", "finance"}

// TavilySearchDepth selects basic or advanced search.
type TavilySearchDepth string

const (
	TavilyDepthBasic    TavilySearchDepth = "basic"
	TavilyDepthAdvanced TavilySearchDepth = "advanced"
)

// TavilySearchOptions are the Tavily-specific search parameters.
type TavilySearchOptions struct {
	SearchDepth TavilySearchDepth
	// Topic is "general" or "news".
	Topic string
	// Days is the max article age for the news topic.
	Days              int
	MaxResults        int
	IncludeDomains    []string
	ExcludeDomains    []string
	IncludeAnswer     bool
	IncludeRawContent bool
	IncludeImages     bool
	Extra             map[string]any
}

func (o *TavilySearchOptions) withDefaults() TavilySearchOptions {
	var out TavilySearchOptions
	if o != nil {
		out = *o
	}
	if out.SearchDepth == "" {
		out.SearchDepth = TavilyDepthBasic
	}
	if out.Topic == "" {
		out.Topic = "general"
	}
	if out.Days <= 0 {
		out.Days = 3
	}
	if out.MaxResults <= 0 {
		out.MaxResults = 5
	}
	return out
}

// TavilyResult is a single native Tavily search result.
type TavilyResult struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	Score         float64 `json:"score"`
	RawContent    string  `json:"raw_content,omitempty"`
	PublishedDate string  `json:"published_date,omitempty"`
}

// TavilySearchResponse is the native Tavily search response.
type TavilySearchResponse struct {
	Query        string         `json:"query"`
	Answer       string         `json:"answer,omitempty"`
	Results      []TavilyResult `json:"results"`
	ResponseTime float64        `json:"response_time"`
}

// TavilyExtractResult is one successfully extracted page.
type TavilyExtractResult struct {
	URL        string `json:"url"`
	RawContent string `json:"raw_content"`
}

// TavilyFailedResult is one page Tavily could not extract.
type TavilyFailedResult struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// TavilyExtractResponse is the native Tavily extract response.
type TavilyExtractResponse struct {
	Results       []TavilyExtractResult `json:"results"`
	FailedResults []TavilyFailedResult  `json:"failed_results"`
	ResponseTime  float64               `json:"response_time"`
}

// TavilyClient talks to the Tavily API. Web and news search plus extraction,
// context budgeting, Q&A, and a company-info fan-out helper.
type TavilyClient struct {
	baseURL     string
	headers     map[string]string
	http        *http.Client
	log         zerolog.Logger
	countTokens func(string) int
	topics      []string
}

var (
	_ WebSearcher  = (*TavilyClient)(nil)
	_ NewsSearcher = (*TavilyClient)(nil)
)

// NewTavilyClient resolves credentials from the config or TAVILY_API_KEY.
// The transport uses a fixed 180-second timeout unless a client is injected.
func NewTavilyClient(cfg TavilyConfig, opts ...ClientOption) (*TavilyClient, error) {
	key, ok := resolveSecret(cfg.APIKey, EnvTavilyAPIKey)
	if !ok {
		return nil, &MissingCredentialsError{Provider: ProviderTavily, EnvVar: EnvTavilyAPIKey}
	}
	o := resolveOptions(opts)
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultTavilyBaseURL
	}
	client := o.httpClient
	if client == nil {
		client = httputil.DefaultClient(TavilyTimeout)
	}
	counter := o.countTokens
	if counter == nil {
		counter = defaultTokenCounter
	}
	topics := cfg.CompanyInfoTopics
	if len(topics) == 0 {
		topics = defaultCompanyInfoTopics
	}
	return &TavilyClient{
		baseURL: baseURL,
		headers: o.mergeHeaders(map[string]string{
			"Content-Type":  "application/json",
			"Authorization": "Bearer " + key,
		}),
		http:        client,
		log:         o.providerLogger(ProviderTavily),
		countTokens: counter,
		topics:      topics,
	}, nil
}

// defaultTokenCounter measures text with the OpenAI token compute used for
// context budgets. Falls back to a character heuristic if the encoding
// cannot be loaded.
func defaultTokenCounter(text string) int {
	count, err := tokens.Count(text, tokens.DefaultModel)
	if err != nil {
		return len(text) / 4
	}
	return count
}

func (c *TavilyClient) Name() string { return ProviderTavily }

// search posts to /search and applies the documented status mapping.
func (c *TavilyClient) search(ctx context.Context, o TavilySearchOptions, query string) (*TavilySearchResponse, error) {
	payload := map[string]any{
		"query":               query,
		"search_depth":        string(o.SearchDepth),
		"topic":               o.Topic,
		"days":                o.Days,
		"include_answer":      o.IncludeAnswer,
		"include_raw_content": o.IncludeRawContent,
		"max_results":         o.MaxResults,
		"include_domains":     o.IncludeDomains,
		"exclude_domains":     o.ExcludeDomains,
		"include_images":      o.IncludeImages,
	}
	mergeExtra(payload, o.Extra)

	data, status, err := httputil.PostJSON(ctx, c.http, joinURL(c.baseURL, "/search"), c.headers, payload)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(ProviderTavily, status, data); err != nil {
		return nil, err
	}
	var resp TavilySearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Search executes a native Tavily query.
func (c *TavilyClient) Search(ctx context.Context, query string, opts *TavilySearchOptions) (*TavilySearchResponse, error) {
	return c.search(ctx, opts.withDefaults(), query)
}

// Extract fetches page contents for the given URLs. A 400 response surfaces
// as a bad-request error with the provider's detail message when present.
func (c *TavilyClient) Extract(ctx context.Context, urls []string) (*TavilyExtractResponse, error) {
	payload := map[string]any{"urls": urls}

	data, status, err := httputil.PostJSON(ctx, c.http, joinURL(c.baseURL, "/extract"), c.headers, payload)
	if err != nil {
		return nil, err
	}
	if status == http.StatusBadRequest {
		return nil, &BadRequestError{Provider: ProviderTavily, Detail: errorDetail(data)}
	}
	if err := checkStatus(ProviderTavily, status, data); err != nil {
		return nil, err
	}
	var resp TavilyExtractResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type tavilyContextItem struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

// GetSearchContext searches and returns a JSON-serialized list of
// {url, content} source items whose cumulative token count stays within
// maxTokens. The selection is a greedy prefix of the sources in response
// order: accumulation stops at the first item that would exceed the budget.
func (c *TavilyClient) GetSearchContext(ctx context.Context, query string, opts *TavilySearchOptions, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = DefaultTavilyMaxTokens
	}
	o := opts.withDefaults()
	o.IncludeAnswer = false
	o.IncludeRawContent = false
	o.IncludeImages = false

	resp, err := c.search(ctx, o, query)
	if err != nil {
		return "", err
	}

	selected := make([]tavilyContextItem, 0, len(resp.Results))
	currentTokens := 0
	for _, source := range resp.Results {
		item := tavilyContextItem{URL: source.URL, Content: source.Content}
		encoded, err := json.Marshal(item)
		if err != nil {
			return "", err
		}
		newTotal := currentTokens + c.countTokens(string(encoded))
		if newTotal > maxTokens {
			break
		}
		selected = append(selected, item)
		currentTokens = newTotal
	}

	out, err := json.Marshal(selected)
	if err != nil {
		return "", err
	}
	c.log.Debug().Int("sources", len(selected)).Int("tokens", currentTokens).Msg("search context built")
	return string(out), nil
}

// QNASearch requests an inline answer. Search depth defaults to advanced to
// get the best answer.
func (c *TavilyClient) QNASearch(ctx context.Context, query string, opts *TavilySearchOptions) (string, error) {
	o := opts.withDefaults()
	if opts == nil || opts.SearchDepth == "" {
		o.SearchDepth = TavilyDepthAdvanced
	}
	o.IncludeAnswer = true
	o.IncludeRawContent = false
	o.IncludeImages = false

	resp, err := c.search(ctx, o, query)
	if err != nil {
		return "", err
	}
	return resp.Answer, nil
}

// GetCompanyInfo fans out one advanced search per configured topic (default
// news, general, finance), joins all of them, merges the result lists, and
// returns them sorted by descending score, truncated to maxResults. A failure
// in any topic fails the whole call.
func (c *TavilyClient) GetCompanyInfo(ctx context.Context, query string, maxResults int) ([]TavilyResult, error) {
	if maxResults <= 0 {
		maxResults = 5
	}

	perTopic := make([][]TavilyResult, len(c.topics))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, topic := range c.topics {
		group.Go(func() error {
			resp, err := c.search(groupCtx, TavilySearchOptions{
				SearchDepth: TavilyDepthAdvanced,
				Topic:       topic,
				Days:        3,
				MaxResults:  maxResults,
			}, query)
			if err != nil {
				return err
			}
			perTopic[i] = resp.Results
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var all []TavilyResult
	for _, results := range perTopic {
		all = append(all, results...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Score > all[j].Score
	})
	if len(all) > maxResults {
		all = all[:maxResults]
	}
	return all, nil
}

// WebSearch implements WebSearcher. Country and language are not supported by
// Tavily's search body and are silently dropped.
func (c *TavilyClient) WebSearch(ctx context.Context, query string, opts *Options) (*WebResponse, error) {
	o := opts.withDefaults()
	resp, err := c.search(ctx, TavilySearchOptions{
		SearchDepth: TavilyDepthBasic,
		Topic:       "general",
		Days:        3,
		MaxResults:  o.MaxResults,
		Extra:       o.Extra,
	}, query)
	if err != nil {
		return nil, err
	}
	out := &WebResponse{}
	for _, entry := range resp.Results {
		if entry.URL == "" {
			out.Dropped++
			continue
		}
		out.Results = append(out.Results, WebResult{
			Title:   entry.Title,
			URL:     entry.URL,
			Snippet: entry.Content,
		})
	}
	out.Results = truncateWeb(out.Results, o.MaxResults)
	c.log.Debug().Str("query", query).Int("results", len(out.Results)).Msg("web search done")
	return out, nil
}

// NewsSearch implements NewsSearcher using the news topic.
func (c *TavilyClient) NewsSearch(ctx context.Context, query string, opts *Options) (*NewsResponse, error) {
	o := opts.withDefaults()
	resp, err := c.search(ctx, TavilySearchOptions{
		SearchDepth: TavilyDepthBasic,
		Topic:       "news",
		Days:        7,
		MaxResults:  o.MaxResults,
		Extra:       o.Extra,
	}, query)
	if err != nil {
		return nil, err
	}
	out := &NewsResponse{}
	for _, entry := range resp.Results {
		if entry.URL == "" {
			out.Dropped++
			continue
		}
		out.Results = append(out.Results, NewsResult{
			Title:     entry.Title,
			URL:       entry.URL,
			Snippet:   entry.Content,
			Published: entry.PublishedDate,
		})
	}
	out.Results = truncateNews(out.Results, o.MaxResults)
	return out, nil
}
