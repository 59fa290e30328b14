package search

// DefaultMaxResults is used when a caller does not set Options.MaxResults.
const DefaultMaxResults = 10

// WebResult is a normalized web search result.
type WebResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// WebResponse is a normalized web search response. Results never exceed the
// requested maximum and every entry has a non-empty URL.
type WebResponse struct {
	Results []WebResult `json:"results"`
	// Dropped counts source items excluded during normalization because
	// they were missing a URL.
	Dropped int `json:"dropped,omitempty"`
}

// NewsResult is a normalized news search result. Published is the provider's
// publication timestamp passed through unmodified; empty when the provider
// did not supply one.
type NewsResult struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Snippet   string `json:"snippet"`
	Published string `json:"published"`
}

// NewsResponse is a normalized news search response.
type NewsResponse struct {
	Results []NewsResult `json:"results"`
	Dropped int          `json:"dropped,omitempty"`
}

// Options carries the unified argument set shared by all providers.
type Options struct {
	// MaxResults caps the number of returned results. Zero means
	// DefaultMaxResults.
	MaxResults int
	// Country restricts results to a region where the provider supports it.
	Country CountryCode
	// Language restricts result language where the provider supports it.
	Language LanguageCode
	// Extra holds provider-specific parameters merged verbatim into the
	// native request. Providers that take a JSON body merge these as body
	// fields; query-based providers stringify the values.
	Extra map[string]any
}

func (o *Options) withDefaults() Options {
	var out Options
	if o != nil {
		out = *o
	}
	if out.MaxResults <= 0 {
		out.MaxResults = DefaultMaxResults
	}
	return out
}

func truncateWeb(results []WebResult, limit int) []WebResult {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}

func truncateNews(results []NewsResult, limit int) []NewsResult {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
