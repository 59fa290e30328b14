package search

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables consulted as credential fallbacks.
const (
	EnvBraveAPIKey        = "BRAVE_API_KEY"
	EnvDataForSEOLogin    = "DATAFORSEO_LOGIN"
	EnvDataForSEOPassword = "DATAFORSEO_PASSWORD"
	EnvExaAPIKey          = "EXA_API_KEY"
	EnvJigsawStackAPIKey  = "JIGSAWSTACK_API_KEY"
	EnvKagiAPIKey         = "KAGI_API_KEY"
	EnvLinkUpAPIKey       = "LINKUP_API_KEY"
	EnvSearch1APIKey      = "SEARCH1API_KEY"
	EnvSerpAPIKey         = "SERPAPI_KEY"
	EnvSerperAPIKey       = "SERPER_API_KEY"
	EnvTavilyAPIKey       = "TAVILY_API_KEY"
	EnvYouAPIKey          = "YOU_API_KEY"
)

// resolveSecret returns the explicit value when set, else the environment
// variable. The boolean reports whether anything was found.
func resolveSecret(explicit Secret, envVar string) (string, bool) {
	if !explicit.IsZero() {
		return explicit.Reveal(), true
	}
	if value := strings.TrimSpace(os.Getenv(envVar)); value != "" {
		return value, true
	}
	return "", false
}

func hasCredential(explicit Secret, envVar string) bool {
	_, ok := resolveSecret(explicit, envVar)
	return ok
}

// ConfigFromEnv builds an empty config variant for the given provider type.
// Credentials stay unset in the variant and are resolved from the environment
// when the client is constructed.
func ConfigFromEnv(typeName string) (ProviderConfig, error) {
	cfg, err := newConfigForType(strings.TrimSpace(typeName))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func newConfigForType(typeName string) (ProviderConfig, error) {
	switch typeName {
	case ProviderBrave:
		return &BraveConfig{}, nil
	case ProviderDataForSEO:
		return &DataForSEOConfig{}, nil
	case ProviderExa:
		return &ExaConfig{}, nil
	case ProviderJigsawStack:
		return &JigsawStackConfig{}, nil
	case ProviderKagi:
		return &KagiConfig{}, nil
	case ProviderLinkUp:
		return &LinkUpConfig{}, nil
	case ProviderSearch1:
		return &Search1Config{}, nil
	case ProviderSerpAPI:
		return &SerpAPIConfig{}, nil
	case ProviderSerper:
		return &SerperConfig{}, nil
	case ProviderTavily:
		return &TavilyConfig{}, nil
	case ProviderYou:
		return &YouConfig{}, nil
	default:
		return nil, fmt.Errorf("unknown provider type %q", typeName)
	}
}
