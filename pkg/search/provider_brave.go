package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/phil65/searchly-go/pkg/httputil"
)

// DefaultBraveBaseURL is the production Brave Search API endpoint.
const DefaultBraveBaseURL = "https://api.search.brave.com/res/v1"

const defaultBraveWait = 2 * time.Second

// BraveClient talks to the Brave Search API. It supports web and news search
// and performs a bounded number of retries on rate-limit responses when
// configured to.
type BraveClient struct {
	baseURL string
	headers map[string]string
	http    *http.Client
	log     zerolog.Logger
	retries int
	wait    time.Duration
}

var (
	_ WebSearcher  = (*BraveClient)(nil)
	_ NewsSearcher = (*BraveClient)(nil)
)

// NewBraveClient resolves credentials from the config or BRAVE_API_KEY and
// builds the client. Fails immediately when no key is available.
func NewBraveClient(cfg BraveConfig, opts ...ClientOption) (*BraveClient, error) {
	key, ok := resolveSecret(cfg.APIKey, EnvBraveAPIKey)
	if !ok {
		return nil, &MissingCredentialsError{Provider: ProviderBrave, EnvVar: EnvBraveAPIKey}
	}
	o := resolveOptions(opts)
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBraveBaseURL
	}
	wait := time.Duration(cfg.WaitSeconds) * time.Second
	if wait <= 0 {
		wait = defaultBraveWait
	}
	return &BraveClient{
		baseURL: baseURL,
		headers: o.mergeHeaders(map[string]string{
			"Accept":               "application/json",
			"X-Subscription-Token": key,
		}),
		http:    o.httpClient,
		log:     o.providerLogger(ProviderBrave),
		retries: max(cfg.Retries, 0),
		wait:    wait,
	}, nil
}

func (c *BraveClient) Name() string { return ProviderBrave }

// WebSearch implements WebSearcher. Country is sent verbatim, language as a
// lowercase search_lang.
func (c *BraveClient) WebSearch(ctx context.Context, query string, opts *Options) (*WebResponse, error) {
	o := opts.withDefaults()
	values := url.Values{}
	values.Set("q", query)
	values.Set("count", strconv.Itoa(o.MaxResults))
	if o.Country != "" {
		values.Set("country", string(o.Country))
	}
	if o.Language != "" {
		values.Set("search_lang", o.Language.Lower())
	}
	extraToQuery(values, o.Extra)

	data, err := c.get(ctx, "/web/search", values)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}

	out := &WebResponse{}
	for _, entry := range resp.Web.Results {
		if entry.URL == "" {
			out.Dropped++
			continue
		}
		out.Results = append(out.Results, WebResult{
			Title:   entry.Title,
			URL:     entry.URL,
			Snippet: entry.Description,
		})
	}
	out.Results = truncateWeb(out.Results, o.MaxResults)
	c.log.Debug().Str("query", query).Int("results", len(out.Results)).Msg("web search done")
	return out, nil
}

// NewsSearch implements NewsSearcher via the dedicated news endpoint.
func (c *BraveClient) NewsSearch(ctx context.Context, query string, opts *Options) (*NewsResponse, error) {
	o := opts.withDefaults()
	values := url.Values{}
	values.Set("q", query)
	values.Set("count", strconv.Itoa(o.MaxResults))
	if o.Country != "" {
		values.Set("country", string(o.Country))
	}
	if o.Language != "" {
		values.Set("search_lang", o.Language.Lower())
	}
	extraToQuery(values, o.Extra)

	data, err := c.get(ctx, "/news/search", values)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
			Age         string `json:"age"`
			PageAge     string `json:"page_age"`
		} `json:"results"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}

	out := &NewsResponse{}
	for _, entry := range resp.Results {
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

// get issues the request, retrying rate-limited responses up to the
// configured budget with a fixed wait between attempts.
func (c *BraveClient) get(ctx context.Context, path string, values url.Values) ([]byte, error) {
	log := c.log.With().Str("request_id", xid.New().String()).Logger()
	for attempt := 0; ; attempt++ {
		data, status, err := httputil.GetJSON(ctx, c.http, joinURL(c.baseURL, path), c.headers, values)
		if err != nil {
			return nil, err
		}
		err = checkStatus(ProviderBrave, status, data)
		if err == nil {
			return data, nil
		}
		if attempt < c.retries && errors.Is(err, ErrUsageLimitExceeded) {
			log.Debug().Int("attempt", attempt+1).Dur("wait", c.wait).Msg("rate limited, retrying")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.wait):
			}
			continue
		}
		return nil, err
	}
}
