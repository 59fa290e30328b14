package search

// Provider discriminant values. These are the exact strings used in the
// "type" field of serialized configurations.
const (
	ProviderBrave       = "brave"
	ProviderDataForSEO  = "dataforseo"
	ProviderExa         = "exa"
	ProviderJigsawStack = "jigsawstack"
	ProviderKagi        = "kagi"
	ProviderLinkUp      = "linkup"
	ProviderSearch1     = "search1"
	ProviderSerpAPI     = "serpapi"
	ProviderSerper      = "serper"
	ProviderTavily      = "tavily"
	ProviderYou         = "you"
)

// ProviderConfig is one variant of the provider configuration union.
// IsConfigured is side-effect-free and performs no network I/O; Searcher is a
// pure factory resolving credentials at construction time. It never caches:
// callers needing reuse hold onto the returned client themselves.
type ProviderConfig interface {
	// Type returns the discriminant string identifying the variant.
	Type() string
	// IsConfigured reports whether required credentials are resolvable from
	// either explicit fields or the documented environment variables.
	IsConfigured() bool
	// Searcher constructs the provider client.
	Searcher(opts ...ClientOption) (WebSearcher, error)
}

// NewsProviderConfig is implemented by the config variants whose provider
// supports news search (brave, dataforseo, kagi, serpapi, serper, tavily, you).
type NewsProviderConfig interface {
	ProviderConfig
	NewsSearcher(opts ...ClientOption) (NewsSearcher, error)
}

// BraveConfig configures the Brave Search provider. Web and news search with
// country and language filtering, plus optional bounded retries on rate
// limits.
type BraveConfig struct {
	// APIKey defaults to the BRAVE_API_KEY environment variable.
	APIKey Secret `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	// Retries is the number of retries for rate-limited requests.
	Retries int `json:"retries,omitempty" yaml:"retries,omitempty"`
	// WaitSeconds is the fixed delay between retries.
	WaitSeconds int `json:"wait_time,omitempty" yaml:"wait_time,omitempty"`
	// BaseURL overrides the production endpoint.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

func (c *BraveConfig) Type() string { return ProviderBrave }

func (c *BraveConfig) IsConfigured() bool {
	return hasCredential(c.APIKey, EnvBraveAPIKey)
}

func (c *BraveConfig) Searcher(opts ...ClientOption) (WebSearcher, error) {
	return NewBraveClient(*c, opts...)
}

func (c *BraveConfig) NewsSearcher(opts ...ClientOption) (NewsSearcher, error) {
	return NewBraveClient(*c, opts...)
}

// DataForSEOConfig configures the DataForSEO provider. Web and news search
// via Google SERP tasks; authenticated with a login/password pair.
type DataForSEOConfig struct {
	// Login defaults to the DATAFORSEO_LOGIN environment variable.
	Login Secret `json:"login,omitempty" yaml:"login,omitempty"`
	// Password defaults to the DATAFORSEO_PASSWORD environment variable.
	Password Secret `json:"password,omitempty" yaml:"password,omitempty"`
	BaseURL  string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

func (c *DataForSEOConfig) Type() string { return ProviderDataForSEO }

func (c *DataForSEOConfig) IsConfigured() bool {
	return hasCredential(c.Login, EnvDataForSEOLogin) &&
		hasCredential(c.Password, EnvDataForSEOPassword)
}

func (c *DataForSEOConfig) Searcher(opts ...ClientOption) (WebSearcher, error) {
	return NewDataForSEOClient(*c, opts...)
}

func (c *DataForSEOConfig) NewsSearcher(opts ...ClientOption) (NewsSearcher, error) {
	return NewDataForSEOClient(*c, opts...)
}

// ExaConfig configures the Exa provider. Neural/semantic web search with
// domain filtering and date ranges; no country/language support.
type ExaConfig struct {
	// APIKey defaults to the EXA_API_KEY environment variable.
	APIKey  Secret `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

func (c *ExaConfig) Type() string { return ProviderExa }

func (c *ExaConfig) IsConfigured() bool {
	return hasCredential(c.APIKey, EnvExaAPIKey)
}

func (c *ExaConfig) Searcher(opts ...ClientOption) (WebSearcher, error) {
	return NewExaClient(*c, opts...)
}

// JigsawStackConfig configures the JigsawStack provider. Web search with AI
// overview; limited filtering options.
type JigsawStackConfig struct {
	// APIKey defaults to the JIGSAWSTACK_API_KEY environment variable.
	APIKey  Secret `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

func (c *JigsawStackConfig) Type() string { return ProviderJigsawStack }

func (c *JigsawStackConfig) IsConfigured() bool {
	return hasCredential(c.APIKey, EnvJigsawStackAPIKey)
}

func (c *JigsawStackConfig) Searcher(opts ...ClientOption) (WebSearcher, error) {
	return NewJigsawStackClient(*c, opts...)
}

// KagiConfig configures the Kagi provider. Web and news search, plus the
// Universal Summarizer.
type KagiConfig struct {
	// APIKey defaults to the KAGI_API_KEY environment variable.
	APIKey  Secret `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

func (c *KagiConfig) Type() string { return ProviderKagi }

func (c *KagiConfig) IsConfigured() bool {
	return hasCredential(c.APIKey, EnvKagiAPIKey)
}

func (c *KagiConfig) Searcher(opts ...ClientOption) (WebSearcher, error) {
	return NewKagiClient(*c, opts...)
}

func (c *KagiConfig) NewsSearcher(opts ...ClientOption) (NewsSearcher, error) {
	return NewKagiClient(*c, opts...)
}

// LinkUpConfig configures the LinkUp provider. Web search with sourced
// answers; limited filtering options.
type LinkUpConfig struct {
	// APIKey defaults to the LINKUP_API_KEY environment variable.
	APIKey  Secret `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

func (c *LinkUpConfig) Type() string { return ProviderLinkUp }

func (c *LinkUpConfig) IsConfigured() bool {
	return hasCredential(c.APIKey, EnvLinkUpAPIKey)
}

func (c *LinkUpConfig) Searcher(opts ...ClientOption) (WebSearcher, error) {
	return NewLinkUpClient(*c, opts...)
}

// Search1Config configures the Search1API provider. Web search via Google or
// Bing with language filtering and time ranges.
type Search1Config struct {
	// APIKey defaults to the SEARCH1API_KEY environment variable.
	APIKey  Secret `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

func (c *Search1Config) Type() string { return ProviderSearch1 }

func (c *Search1Config) IsConfigured() bool {
	return hasCredential(c.APIKey, EnvSearch1APIKey)
}

func (c *Search1Config) Searcher(opts ...ClientOption) (WebSearcher, error) {
	return NewSearch1Client(*c, opts...)
}

// SerpAPIConfig configures the SerpAPI provider. Web and news search via
// Google with full country, language, and location filtering.
type SerpAPIConfig struct {
	// APIKey defaults to the SERPAPI_KEY environment variable.
	APIKey  Secret `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

func (c *SerpAPIConfig) Type() string { return ProviderSerpAPI }

func (c *SerpAPIConfig) IsConfigured() bool {
	return hasCredential(c.APIKey, EnvSerpAPIKey)
}

func (c *SerpAPIConfig) Searcher(opts ...ClientOption) (WebSearcher, error) {
	return NewSerpAPIClient(*c, opts...)
}

func (c *SerpAPIConfig) NewsSearcher(opts ...ClientOption) (NewsSearcher, error) {
	return NewSerpAPIClient(*c, opts...)
}

// SerperConfig configures the Serper.dev provider. Web and news search via
// Google with country and language filtering.
type SerperConfig struct {
	// APIKey defaults to the SERPER_API_KEY environment variable.
	APIKey  Secret `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

func (c *SerperConfig) Type() string { return ProviderSerper }

func (c *SerperConfig) IsConfigured() bool {
	return hasCredential(c.APIKey, EnvSerperAPIKey)
}

func (c *SerperConfig) Searcher(opts ...ClientOption) (WebSearcher, error) {
	return NewSerperClient(*c, opts...)
}

func (c *SerperConfig) NewsSearcher(opts ...ClientOption) (NewsSearcher, error) {
	return NewSerperClient(*c, opts...)
}

// TavilyConfig configures the Tavily provider. Web and news search with
// domain filtering and search depth options, plus extraction and context
// helpers.
type TavilyConfig struct {
	// APIKey defaults to the TAVILY_API_KEY environment variable.
	APIKey  Secret `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	// CompanyInfoTopics overrides the topics GetCompanyInfo aggregates.
	// Defaults to news, general, and finance.
	CompanyInfoTopics []string `json:"company_info_topics,omitempty" yaml:"company_info_topics,omitempty"`
}

func (c *TavilyConfig) Type() string { return ProviderTavily }

func (c *TavilyConfig) IsConfigured() bool {
	return hasCredential(c.APIKey, EnvTavilyAPIKey)
}

func (c *TavilyConfig) Searcher(opts ...ClientOption) (WebSearcher, error) {
	return NewTavilyClient(*c, opts...)
}

func (c *TavilyConfig) NewsSearcher(opts ...ClientOption) (NewsSearcher, error) {
	return NewTavilyClient(*c, opts...)
}

// YouConfig configures the You.com provider. Web and news search with
// country, language, and freshness filtering.
type YouConfig struct {
	// APIKey defaults to the YOU_API_KEY environment variable.
	APIKey  Secret `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

func (c *YouConfig) Type() string { return ProviderYou }

func (c *YouConfig) IsConfigured() bool {
	return hasCredential(c.APIKey, EnvYouAPIKey)
}

func (c *YouConfig) Searcher(opts ...ClientOption) (WebSearcher, error) {
	return NewYouClient(*c, opts...)
}

func (c *YouConfig) NewsSearcher(opts ...ClientOption) (NewsSearcher, error) {
	return NewYouClient(*c, opts...)
}

// Compile-time checks that every variant satisfies the union and that the
// news-capable subset is exactly the documented one.
var (
	_ ProviderConfig = (*BraveConfig)(nil)
	_ ProviderConfig = (*DataForSEOConfig)(nil)
	_ ProviderConfig = (*ExaConfig)(nil)
	_ ProviderConfig = (*JigsawStackConfig)(nil)
	_ ProviderConfig = (*KagiConfig)(nil)
	_ ProviderConfig = (*LinkUpConfig)(nil)
	_ ProviderConfig = (*Search1Config)(nil)
	_ ProviderConfig = (*SerpAPIConfig)(nil)
	_ ProviderConfig = (*SerperConfig)(nil)
	_ ProviderConfig = (*TavilyConfig)(nil)
	_ ProviderConfig = (*YouConfig)(nil)

	_ NewsProviderConfig = (*BraveConfig)(nil)
	_ NewsProviderConfig = (*DataForSEOConfig)(nil)
	_ NewsProviderConfig = (*KagiConfig)(nil)
	_ NewsProviderConfig = (*SerpAPIConfig)(nil)
	_ NewsProviderConfig = (*SerperConfig)(nil)
	_ NewsProviderConfig = (*TavilyConfig)(nil)
	_ NewsProviderConfig = (*YouConfig)(nil)
)
